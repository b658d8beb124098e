package util

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxFileNameLen bounds the stored file name, extension included.
const MaxFileNameLen = 128

var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName flattens path separators, drops control characters and
// rejects traversal patterns. Long names are shortened keeping the extension.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	s := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	s = strings.TrimLeft(s, ".")
	if s == "" {
		return "", ErrInvalidFileName
	}
	if utf8.RuneCountInString(s) > MaxFileNameLen {
		ext := filepath.Ext(s)
		base := []rune(strings.TrimSuffix(s, ext))
		keep := MaxFileNameLen - utf8.RuneCountInString(ext)
		if keep < 1 {
			return string([]rune(s)[:MaxFileNameLen]), nil
		}
		s = string(base[:keep]) + ext
	}
	return s, nil
}
