package analyses

import (
	"time"

	"cvscore-backend/internal/ats"
)

type analyzeRequest struct {
	Text           string `json:"text"`
	JobDescription string `json:"jobDescription"`
	Profile        string `json:"profile"`
}

type analyzeDocumentRequest struct {
	JobDescription string `json:"jobDescription"`
	Profile        string `json:"profile"`
}

type batchRequest struct {
	Items []struct {
		Label string `json:"label"`
		Text  string `json:"text"`
	} `json:"items"`
	JobDescription string `json:"jobDescription"`
	Profile        string `json:"profile"`
}

// AnalysisResponse is the outward-facing form of an analysis.
type AnalysisResponse struct {
	AnalysisID string     `json:"analysisId"`
	DocumentID string     `json:"documentId,omitempty"`
	Source     string     `json:"source"`
	CreatedAt  time.Time  `json:"createdAt"`
	Result     ats.Result `json:"result"`
}

// AnalysisSummary is a list entry without the full result.
type AnalysisSummary struct {
	AnalysisID   string    `json:"analysisId"`
	DocumentID   string    `json:"documentId,omitempty"`
	Source       string    `json:"source"`
	Profile      string    `json:"profile"`
	OverallScore int       `json:"overallScore"`
	Rating       string    `json:"rating"`
	CreatedAt    time.Time `json:"createdAt"`
}

type batchResultResponse struct {
	Index    int               `json:"index"`
	Label    string            `json:"label,omitempty"`
	Analysis *AnalysisResponse `json:"analysis,omitempty"`
	Error    *itemError        `json:"error,omitempty"`
}

type itemError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type profileResponse struct {
	Name    string      `json:"name"`
	Weights ats.Weights `json:"weights"`
	Default bool        `json:"default"`
}

func toResponse(a Analysis) AnalysisResponse {
	return AnalysisResponse{
		AnalysisID: a.ID,
		DocumentID: a.DocumentID,
		Source:     a.Source,
		CreatedAt:  a.CreatedAt,
		Result:     a.Result,
	}
}

func toSummary(a Analysis) AnalysisSummary {
	return AnalysisSummary{
		AnalysisID:   a.ID,
		DocumentID:   a.DocumentID,
		Source:       a.Source,
		Profile:      a.Profile,
		OverallScore: a.OverallScore,
		Rating:       a.Rating,
		CreatedAt:    a.CreatedAt,
	}
}
