package analyses

import "errors"

var (
	ErrNotFound       = errors.New("analysis not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrTextTooLarge   = errors.New("text too large")
	ErrUnknownProfile = errors.New("unknown scoring profile")
	ErrBatchTooLarge  = errors.New("batch too large")
)
