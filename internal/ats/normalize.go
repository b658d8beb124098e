package ats

import "strings"

// Normalized is lowercased CV text plus its non-blank lines.
type Normalized struct {
	Text  string
	Lines []string
}

// Normalize lowercases and trims raw text and splits it into non-blank lines.
func Normalize(raw string) Normalized {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return Normalized{}
	}
	var lines []string
	for _, line := range strings.FieldsFunc(text, isLineBreak) {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return Normalized{Text: text, Lines: lines}
}

func isLineBreak(r rune) bool {
	return r == '\n' || r == '\r'
}
