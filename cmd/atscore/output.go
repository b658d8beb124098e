package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cvscore-backend/internal/ats"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	weakStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func writeJSON(w io.Writer, results []fileResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func ratingStyle(r ats.Rating) lipgloss.Style {
	switch r {
	case ats.RatingExcellent, ats.RatingGood:
		return goodStyle
	case ats.RatingAverage:
		return okStyle
	default:
		return weakStyle
	}
}

func writeConsole(w io.Writer, results []fileResult, profile string) error {
	scored := 0
	for _, r := range results {
		if r.Result == nil {
			if _, err := fmt.Fprintf(w, "%s %s\n  %s\n\n", errorStyle.Render("✗"), headingStyle.Render(r.File), errorStyle.Render(r.Error)); err != nil {
				return err
			}
			continue
		}
		scored++
		if _, err := fmt.Fprintln(w, boxStyle.Render(renderResult(r.File, *r.Result))); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d of %d files scored with profile %s", scored, len(results), profile)))
	return err
}

func renderResult(file string, r ats.Result) string {
	var b strings.Builder
	style := ratingStyle(r.Rating)
	fmt.Fprintf(&b, "%s  %s\n", headingStyle.Render(file), style.Render(fmt.Sprintf("%d/100 %s", r.OverallScore, r.Rating)))
	fmt.Fprintf(&b, "%s\n", mutedStyle.Render(fmt.Sprintf("format %d · content %d · SA context %d (%s)",
		r.FormatScore, r.ContentScore, r.SAContextScore, r.SARelevance)))

	if r.JobMatch != nil {
		line := fmt.Sprintf("job match %d%% (%s)", r.JobMatch.MatchScore, r.JobMatch.JobRelevance)
		if len(r.JobMatch.MissingKeywords) > 0 {
			line += " missing: " + strings.Join(r.JobMatch.MissingKeywords, ", ")
		}
		fmt.Fprintf(&b, "%s\n", line)
	}
	if len(r.SkillsIdentified) > 0 {
		fmt.Fprintf(&b, "skills: %s\n", strings.Join(r.SkillsIdentified, ", "))
	}
	if len(r.SAKeywordsFound) > 0 {
		fmt.Fprintf(&b, "SA keywords: %s\n", strings.Join(r.SAKeywordsFound, ", "))
	}
	writeList(&b, "Strengths", r.Strengths)
	writeList(&b, "Improvements", r.Improvements)
	writeList(&b, "Format", r.FormatFeedback)
	return strings.TrimRight(b.String(), "\n")
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s\n", headingStyle.Render(title))
	for _, item := range items {
		fmt.Fprintf(b, "  • %s\n", item)
	}
}
