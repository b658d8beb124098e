package ats

import "math/rand/v2"

const (
	minFeedbackItems = 3
	maxGoodCVChars   = 5000
	minGoodCVChars   = 1500
)

// Shuffler returns a uniform int in [0,n). It is the only source of
// randomness in an analysis and only affects list order.
type Shuffler func(n int) int

// DefaultShuffler draws from the process-level math/rand/v2 source, which is
// safe for concurrent use.
func DefaultShuffler() Shuffler { return rand.IntN }

// Feedback is the presentation output of an analysis.
type Feedback struct {
	Strengths      []string
	Improvements   []string
	FormatFeedback []string
}

type feedbackRule struct {
	key         string
	holds       func(Flags) bool
	strength    string
	improvement string
}

// feedbackRules is evaluated in declaration order.
var feedbackRules = []feedbackRule{
	{
		key:         "sections",
		holds:       func(f Flags) bool { return f.HasSections },
		strength:    "Clear section headings make your CV easy for ATS software to parse",
		improvement: "Add standard section headings such as Experience, Education and Skills",
	},
	{
		key:         "bullets",
		holds:       func(f Flags) bool { return f.HasBulletPoints },
		strength:    "Bullet points keep your achievements scannable",
		improvement: "Use bullet points to list responsibilities and achievements",
	},
	{
		key:         "contact",
		holds:       func(f Flags) bool { return f.HasContactInfo },
		strength:    "Contact details are easy to find",
		improvement: "Include your email address, cell number and LinkedIn profile",
	},
	{
		key:         "date_ranges",
		holds:       func(f Flags) bool { return f.HasDateRanges },
		strength:    "Employment periods are clearly dated",
		improvement: "Show start and end dates for each position, e.g. Jan 2020 - Present",
	},
	{
		key:      "dates",
		holds:    func(f Flags) bool { return f.HasDates },
		strength: "Your timeline is backed by specific years",
	},
	{
		key:         "action_verbs",
		holds:       Flags.HasActionVerbs,
		strength:    "Strong action verbs describe your contributions",
		improvement: "Start bullet points with action verbs like managed, developed or implemented",
	},
	{
		key:         "quantified_results",
		holds:       func(f Flags) bool { return f.HasQuantifiedResults },
		strength:    "Quantified results show the impact of your work",
		improvement: "Quantify achievements with numbers, e.g. increased sales by 25%",
	},
	{
		key:         "key_skills",
		holds:       Flags.HasKeySkills,
		strength:    "Relevant skills are listed and keyword-searchable",
		improvement: "List key technical and soft skills that match the roles you want",
	},
	{
		key:         "line_length",
		holds:       Flags.LineLengthOK,
		strength:    "Content is written at a readable density",
		improvement: "Balance line length: avoid one-word lines and very dense paragraphs",
	},
	{
		key:         "bbbee",
		holds:       func(f Flags) bool { return f.HasRegional(CategoryBBBEE) },
		strength:    "B-BBEE status is declared, which many South African employers look for",
		improvement: "Consider stating your B-BBEE or employment equity status if applicable",
	},
	{
		key:         "nqf",
		holds:       func(f Flags) bool { return f.HasRegional(CategoryNQF) },
		strength:    "Qualifications reference NQF levels, which SA recruiters recognise",
		improvement: "Add the NQF level of your qualifications, e.g. NQF Level 7",
	},
	{
		key:         "location",
		holds:       func(f Flags) bool { return f.HasRegional(CategoryLocation) },
		strength:    "Your South African location is clear to local recruiters",
		improvement: "Mention your city or province so recruiters can match you to local roles",
	},
	{
		key:         "language",
		holds:       func(f Flags) bool { return f.HasRegional(CategoryLanguage) },
		strength:    "Listing South African languages highlights your communication reach",
		improvement: "List the official languages you speak, e.g. English, Afrikaans or isiZulu",
	},
	{
		key:         "certification",
		holds:       func(f Flags) bool { return f.HasRegional(CategoryCertification) },
		strength:    "Professional body registrations add credibility",
		improvement: "Include registrations with SA professional bodies such as SAICA, ECSA or HPCSA",
	},
}

var fillerStrengths = []string{
	"Your CV contains plain text that ATS systems can read",
	"You have taken the first step by getting your CV reviewed",
	"Your CV provides a base you can tailor for each application",
}

var fillerImprovements = []string{
	"Tailor your CV to each job description you apply for",
	"Add a short professional summary at the top of your CV",
	"Ask a mentor or colleague to proofread your CV",
}

const (
	msgLongBullets     = "Some bullet points are too long; keep each to one or two lines"
	msgMissingContact  = "Add contact information at the top of your CV"
	msgTooLong         = "Your CV is long; aim for two to three pages"
	msgTooShort        = "Your CV is short; add more detail about your experience and achievements"
	msgMissingDates    = "Add dates to your work history and qualifications"
	msgFormattingClean = "Formatting looks clean and ATS-friendly"
)

// GenerateFeedback builds shuffled strengths, improvements and format feedback.
func GenerateFeedback(f Flags, shuffle Shuffler) Feedback {
	var strengths, improvements []string
	for _, rule := range feedbackRules {
		if rule.holds(f) {
			strengths = append(strengths, rule.strength)
			continue
		}
		if rule.improvement != "" {
			improvements = append(improvements, rule.improvement)
		}
	}
	strengths = fill(strengths, fillerStrengths, minFeedbackItems)
	improvements = fill(improvements, fillerImprovements, minFeedbackItems)

	out := Feedback{
		Strengths:      strengths,
		Improvements:   improvements,
		FormatFeedback: formatFeedback(f),
	}
	shuffleStrings(out.Strengths, shuffle)
	shuffleStrings(out.Improvements, shuffle)
	shuffleStrings(out.FormatFeedback, shuffle)
	return out
}

func formatFeedback(f Flags) []string {
	var out []string
	if f.LongBulletLines > 0 {
		out = append(out, msgLongBullets)
	}
	if !f.HasContactInfo {
		out = append(out, msgMissingContact)
	}
	switch {
	case f.CharCount > maxGoodCVChars:
		out = append(out, msgTooLong)
	case f.CharCount < minGoodCVChars:
		out = append(out, msgTooShort)
	}
	if !f.HasDates {
		out = append(out, msgMissingDates)
	}
	if len(out) == 0 {
		out = append(out, msgFormattingClean)
	}
	return out
}

func fill(items, fillers []string, want int) []string {
	for _, filler := range fillers {
		if len(items) >= want {
			break
		}
		if !contains(items, filler) {
			items = append(items, filler)
		}
	}
	return items
}

func contains(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}

// shuffleStrings is an in-place Fisher–Yates shuffle.
func shuffleStrings(items []string, intn Shuffler) {
	if intn == nil {
		intn = DefaultShuffler()
	}
	for i := len(items) - 1; i > 0; i-- {
		j := intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
