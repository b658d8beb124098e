// Package jobdesc turns pasted job adverts, plain or HTML, into matchable text.
package jobdesc

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	markupPattern = regexp.MustCompile(`(?i)<\s*/?\s*[a-z][a-z0-9]*[^>]*>`)
	blockElements = "p, li, br, div, tr, h1, h2, h3, h4, h5, h6, section, article, ul, ol"
	noiseElements = "script, style, noscript, nav, footer, header, iframe, form"
)

// LooksLikeHTML reports whether raw contains element markup.
func LooksLikeHTML(raw string) bool {
	return markupPattern.MatchString(raw)
}

// Clean strips markup from a job description and collapses whitespace.
// Line structure is kept so list items stay separate.
func Clean(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	text := raw
	if LooksLikeHTML(raw) {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
		if err != nil {
			return "", fmt.Errorf("parse job description html: %w", err)
		}
		doc.Find(noiseElements).Remove()
		doc.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
			s.AppendHtml("\n")
		})
		text = doc.Text()
	}
	return collapse(text), nil
}

func collapse(text string) string {
	lines := strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' })
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if joined := strings.Join(strings.Fields(line), " "); joined != "" {
			out = append(out, joined)
		}
	}
	return strings.Join(out, "\n")
}
