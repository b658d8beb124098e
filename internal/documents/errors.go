package documents

import (
	"errors"

	"cvscore-backend/internal/extract"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupportedType aliases the extraction sentinel so callers can match either.
	ErrUnsupportedType = extract.ErrUnsupportedType
)
