package ats

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxMatchScore      = 90
	minJobTokenRunes   = 5
	maxMissingKeywords = 10
)

// JobMatch is the keyword-overlap comparison between a CV and a job description.
type JobMatch struct {
	MatchScore      int       `json:"matchScore"`
	JobRelevance    Relevance `json:"jobRelevance"`
	MissingKeywords []string  `json:"missingKeywords"`
}

// MatchJob scores job-description token overlap with normalized CV text. It
// returns nil when the description has no usable tokens.
func MatchJob(cv Normalized, jobDescription string) *JobMatch {
	tokens := jobTokens(jobDescription)
	if len(tokens) == 0 {
		return nil
	}
	hits := 0
	missing := []string{}
	for _, tok := range tokens {
		if strings.Contains(cv.Text, tok) {
			hits++
			continue
		}
		if len(missing) < maxMissingKeywords {
			missing = append(missing, tok)
		}
	}
	score := int(math.Round(100 * float64(hits) / float64(len(tokens))))
	if score > maxMatchScore {
		score = maxMatchScore
	}
	return &JobMatch{
		MatchScore:      score,
		JobRelevance:    JobRelevanceFor(score),
		MissingKeywords: missing,
	}
}

// jobTokens returns distinct significant tokens in first-seen order.
func jobTokens(jobDescription string) []string {
	text := strings.ToLower(strings.TrimSpace(jobDescription))
	if text == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, field := range strings.Fields(text) {
		tok := strings.TrimFunc(field, isEdgePunct)
		if utf8.RuneCountInString(tok) < minJobTokenRunes {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

func isEdgePunct(r rune) bool {
	switch r {
	case '+', '#':
		return false
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
