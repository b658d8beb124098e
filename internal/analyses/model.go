package analyses

import (
	"time"

	"cvscore-backend/internal/ats"
)

// Sources record what an analysis was run against.
const (
	SourceText     = "text"
	SourceDocument = "document"
	SourceBatch    = "batch"
)

// Analysis is a persisted scoring run.
type Analysis struct {
	ID             string
	UserID         string
	DocumentID     string
	Source         string
	Profile        string
	JobDescription string
	OverallScore   int
	Rating         string
	Result         ats.Result
	CreatedAt      time.Time
}
