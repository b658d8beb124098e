package documents

import "time"

// Document represents an uploaded CV owned by a user.
type Document struct {
	ID           string
	UserID       string
	FileName     string
	MimeType     string
	SizeBytes    int64
	StorageKey   string
	ExtractedKey string
	ExtractedAt  *time.Time
	CreatedAt    time.Time
}

// Extracted reports whether a plain-text copy has been stored.
func (d Document) Extracted() bool { return d.ExtractedKey != "" }
