package ats

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	minGoodLineLength = 30
	maxGoodLineLength = 200
	longBulletRunes   = 150
)

// RegionalHit is the outcome of one regional-context category scan.
type RegionalHit struct {
	Count int      `json:"count"`
	Terms []string `json:"terms"`
}

// Flags holds every detector outcome for a single analysis call.
type Flags struct {
	HasSections          bool
	HasBulletPoints      bool
	HasContactInfo       bool
	HasDateRanges        bool
	HasDates             bool
	ActionVerbs          []string
	HasQuantifiedResults bool
	Skills               []string
	AvgLineLength        float64
	LongBulletLines      int
	CharCount            int
	Regional             map[Category]RegionalHit
}

// HasActionVerbs reports whether at least one achievement verb was found.
func (f Flags) HasActionVerbs() bool { return len(f.ActionVerbs) > 0 }

// HasKeySkills reports whether any vocabulary skill was found.
func (f Flags) HasKeySkills() bool { return len(f.Skills) > 0 }

// LineLengthOK reports whether the mean line length is neither terse nor dense.
func (f Flags) LineLengthOK() bool {
	return f.AvgLineLength >= minGoodLineLength && f.AvgLineLength <= maxGoodLineLength
}

// HasRegional reports whether the category produced any hit.
func (f Flags) HasRegional(c Category) bool { return f.Regional[c].Count > 0 }

// RegionalTerms returns every distinct regional term found, sorted.
func (f Flags) RegionalTerms() []string {
	var out []string
	for _, c := range Categories {
		out = append(out, f.Regional[c].Terms...)
	}
	sort.Strings(out)
	return dedupeSorted(out)
}

const monthPattern = `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?`

var dateRangeRe = regexp.MustCompile(
	`\b` + monthPattern + `\s+\d{4}\s*(?:-|–|—|to)\s*(?:` + monthPattern + `\s+\d{4}|present|current|now)\b` +
		`|\b(?:19|20)\d{2}\s*(?:-|–|—)\s*(?:(?:19|20)\d{2}|present|current|now)\b` +
		`|\bto\s+(?:(?:19|20)\d{2}|present|current|date)\b`,
)

var (
	sectionsRe    = wordsRegexp(sectionWords)
	bulletRe      = regexp.MustCompile(`(?m)[•●▪◦■►]|^\s*[-*]\s`)
	contactRe     = regexp.MustCompile(wordsPattern(contactWords) + `|[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`)
	yearRe        = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	actionVerbRe  = wordsRegexp(actionVerbs)
	quantifiedRe  = regexp.MustCompile(`\d+(?:[.,]\d+)?\s?(?:%|percent\b)|\b(?:increased|decreased|reduced|improved|grew|saved|cut|boosted)\b(?:\s+\S+){0,4}?\s+by\s+(?:r\s?|\$|£|€)?\d`)
	bulletLineRe  = regexp.MustCompile(`^(?:[•●▪◦■►]|[-*]\s)`)
	bbbeeRe       = regexp.MustCompile(`\b(?:b-?bbee|b-bee|broad[- ]based black economic empowerment|bee (?:level|status|certificate|certified|compliant)|employment equity)\b`)
	nqfRe         = regexp.MustCompile(`\bnqf\s*(?:level\s*)?\d{1,2}\b|\bnational qualifications? framework\b`)
	skillMatchers = newTermMatchers(skillVocabulary)
	locationTerm  = newTermMatchers(locationTerms)
	certTerm      = newTermMatchers(certificationTerms)
	languageTerm  = newTermMatchers(languageTerms)
)

// Detect runs every detector over normalized text.
func Detect(n Normalized) Flags {
	text := n.Text
	return Flags{
		HasSections:          sectionsRe.MatchString(text),
		HasBulletPoints:      bulletRe.MatchString(text),
		HasContactInfo:       contactRe.MatchString(text),
		HasDateRanges:        dateRangeRe.MatchString(text),
		HasDates:             yearRe.MatchString(text),
		ActionVerbs:          distinctMatches(actionVerbRe, text),
		HasQuantifiedResults: quantifiedRe.MatchString(text),
		Skills:               skillMatchers.find(text),
		AvgLineLength:        averageLineLength(n.Lines),
		LongBulletLines:      countLongBullets(n.Lines),
		CharCount:            utf8.RuneCountInString(text),
		Regional: map[Category]RegionalHit{
			CategoryLocation:      distinctHit(locationTerm.find(text)),
			CategoryBBBEE:         instanceHit(bbbeeRe, text),
			CategoryNQF:           instanceHit(nqfRe, text),
			CategoryCertification: distinctHit(certTerm.find(text)),
			CategoryLanguage:      distinctHit(languageTerm.find(text)),
		},
	}
}

func averageLineLength(lines []string) float64 {
	if len(lines) == 0 {
		return 0
	}
	total := 0
	for _, line := range lines {
		total += utf8.RuneCountInString(line)
	}
	return float64(total) / float64(len(lines))
}

func countLongBullets(lines []string) int {
	n := 0
	for _, line := range lines {
		if bulletLineRe.MatchString(line) && utf8.RuneCountInString(line) > longBulletRunes {
			n++
		}
	}
	return n
}

func instanceHit(re *regexp.Regexp, text string) RegionalHit {
	matches := re.FindAllString(text, -1)
	if len(matches) == 0 {
		return RegionalHit{}
	}
	terms := make([]string, 0, len(matches))
	for _, m := range matches {
		terms = append(terms, strings.Join(strings.Fields(m), " "))
	}
	sort.Strings(terms)
	return RegionalHit{Count: len(matches), Terms: dedupeSorted(terms)}
}

func distinctHit(terms []string) RegionalHit {
	return RegionalHit{Count: len(terms), Terms: terms}
}

func distinctMatches(re *regexp.Regexp, text string) []string {
	matches := re.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}
	sort.Strings(matches)
	return dedupeSorted(matches)
}

func dedupeSorted(items []string) []string {
	if len(items) < 2 {
		return items
	}
	out := items[:1]
	for _, item := range items[1:] {
		if item != out[len(out)-1] {
			out = append(out, item)
		}
	}
	return out
}

func wordsPattern(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return `\b(?:` + strings.Join(quoted, "|") + `)\b`
}

func wordsRegexp(words []string) *regexp.Regexp {
	return regexp.MustCompile(wordsPattern(words))
}

// termMatcher matches one vocabulary term as a whole word where + # and . count
// as word characters, so c++, c# and node.js are not split.
type termMatcher struct {
	term string
	re   *regexp.Regexp
}

type termMatchers []termMatcher

func newTermMatchers(terms []string) termMatchers {
	out := make(termMatchers, 0, len(terms))
	for _, term := range terms {
		pattern := `(?:^|[^a-z0-9+#.])` + regexp.QuoteMeta(term) + `(?:$|[^a-z0-9+#])`
		out = append(out, termMatcher{term: term, re: regexp.MustCompile(pattern)})
	}
	return out
}

// find returns matched terms in vocabulary order.
func (m termMatchers) find(text string) []string {
	if text == "" {
		return nil
	}
	var found []string
	for _, tm := range m {
		if tm.re.MatchString(text) {
			found = append(found, tm.term)
		}
	}
	return found
}
