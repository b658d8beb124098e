// Package ats is a rule-based CV scorer tuned for the South African job market.
//
// An analysis normalizes plain CV text, runs independent detectors over it,
// aggregates their points into format, content and regional-context sub-scores,
// and maps the outcome to ratings and feedback. The only non-determinism is the
// order of the feedback lists.
package ats

// Result is the output contract of an analysis.
type Result struct {
	OverallScore     int       `json:"overallScore"`
	Rating           Rating    `json:"rating"`
	FormatScore      int       `json:"formatScore"`
	ContentScore     int       `json:"contentScore"`
	SAContextScore   int       `json:"saContextScore"`
	SARelevance      Relevance `json:"saRelevance"`
	Strengths        []string  `json:"strengths"`
	Improvements     []string  `json:"improvements"`
	FormatFeedback   []string  `json:"formatFeedback"`
	SkillsIdentified []string  `json:"skillsIdentified"`
	SAKeywordsFound  []string  `json:"saKeywordsFound"`
	JobMatch         *JobMatch `json:"jobMatch,omitempty"`
	Profile          string    `json:"profile"`
}

// Truncate caps the feedback lists and the skills list. A limit of zero keeps
// the list whole.
func (r Result) Truncate(feedback, skills int) Result {
	r.Strengths = head(r.Strengths, feedback)
	r.Improvements = head(r.Improvements, feedback)
	r.FormatFeedback = head(r.FormatFeedback, feedback)
	r.SkillsIdentified = head(r.SkillsIdentified, skills)
	return r
}

func head(items []string, n int) []string {
	if n <= 0 || len(items) <= n {
		return items
	}
	return items[:n]
}

// Analyzer runs analyses under one profile. The zero value is not usable; use New.
type Analyzer struct {
	profile Profile
	shuffle Shuffler
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithProfile selects the scoring profile.
func WithProfile(p Profile) Option {
	return func(a *Analyzer) { a.profile = p }
}

// WithShuffler replaces the random source used to order feedback. A
// deterministic source such as rand.New(rand.NewPCG(1, 2)).IntN is not safe for
// concurrent use.
func WithShuffler(s Shuffler) Option {
	return func(a *Analyzer) {
		if s != nil {
			a.shuffle = s
		}
	}
}

// New constructs an Analyzer using the standard profile and the process-level
// random source unless overridden.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		profile: StandardProfile(),
		shuffle: DefaultShuffler(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Profile returns the analyzer's scoring profile.
func (a *Analyzer) Profile() Profile { return a.profile }

// Analyze scores CV text and, when jobDescription is non-blank, its overlap with
// the job description. It never fails; empty text scores as all detectors false.
func (a *Analyzer) Analyze(text, jobDescription string) Result {
	n := Normalize(text)
	flags := Detect(n)
	scores := Score(flags, a.profile)
	fb := GenerateFeedback(flags, a.shuffle)

	skills := append([]string(nil), flags.Skills...)
	shuffleStrings(skills, a.shuffle)

	return Result{
		OverallScore:     scores.Overall,
		Rating:           RatingFor(scores.Overall),
		FormatScore:      scores.Format,
		ContentScore:     scores.Content,
		SAContextScore:   scores.Regional,
		SARelevance:      RelevanceFor(scores.Regional),
		Strengths:        fb.Strengths,
		Improvements:     fb.Improvements,
		FormatFeedback:   fb.FormatFeedback,
		SkillsIdentified: nonNil(skills),
		SAKeywordsFound:  nonNil(flags.RegionalTerms()),
		JobMatch:         MatchJob(n, jobDescription),
		Profile:          a.profile.Name,
	}
}

var defaultAnalyzer = New()

// Analyze runs the default analyzer.
func Analyze(text, jobDescription string) Result {
	return defaultAnalyzer.Analyze(text, jobDescription)
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
