package ats

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ProfileStandard = "standard"
	ProfileRecord   = "record"
)

// Weights splits the overall score across the three sub-scores.
type Weights struct {
	Format   float64 `yaml:"format" json:"format"`
	Content  float64 `yaml:"content" json:"content"`
	Regional float64 `yaml:"regional" json:"regional"`
}

// FormatPoints are the structural detector point values.
type FormatPoints struct {
	Sections   int `yaml:"sections" json:"sections"`
	Bullets    int `yaml:"bullets" json:"bullets"`
	Contact    int `yaml:"contact" json:"contact"`
	DateRanges int `yaml:"dateRanges" json:"dateRanges"`
	Dates      int `yaml:"dates" json:"dates"`
}

// ContentPoints are the content-quality detector point values.
type ContentPoints struct {
	ActionVerbs       int `yaml:"actionVerbs" json:"actionVerbs"`
	ManyActionVerbs   int `yaml:"manyActionVerbs" json:"manyActionVerbs"`
	QuantifiedResults int `yaml:"quantifiedResults" json:"quantifiedResults"`
	PerSkill          int `yaml:"perSkill" json:"perSkill"`
	SkillsCap         int `yaml:"skillsCap" json:"skillsCap"`
	LineLength        int `yaml:"lineLength" json:"lineLength"`
}

// CategoryPoints caps the points one regional category can contribute.
type CategoryPoints struct {
	PerHit int `yaml:"perHit" json:"perHit"`
	Cap    int `yaml:"cap" json:"cap"`
}

// Profile is one complete, named weighting and point table.
type Profile struct {
	Name     string                      `yaml:"name" json:"name"`
	Weights  Weights                     `yaml:"weights" json:"weights"`
	Format   FormatPoints                `yaml:"format" json:"format"`
	Content  ContentPoints               `yaml:"content" json:"content"`
	Regional map[Category]CategoryPoints `yaml:"regional" json:"regional"`
}

// manyActionVerbs is the distinct-verb count that earns the bonus.
const manyActionVerbs = 3

func canonicalFormat() FormatPoints {
	return FormatPoints{Sections: 25, Bullets: 20, Contact: 20, DateRanges: 20, Dates: 15}
}

func canonicalContent() ContentPoints {
	return ContentPoints{
		ActionVerbs:       20,
		ManyActionVerbs:   10,
		QuantifiedResults: 25,
		PerSkill:          5,
		SkillsCap:         30,
		LineLength:        15,
	}
}

func canonicalRegional() map[Category]CategoryPoints {
	return map[Category]CategoryPoints{
		CategoryBBBEE:         {PerHit: 15, Cap: 25},
		CategoryNQF:           {PerHit: 10, Cap: 20},
		CategoryLocation:      {PerHit: 10, Cap: 20},
		CategoryLanguage:      {PerHit: 10, Cap: 20},
		CategoryCertification: {PerHit: 10, Cap: 15},
	}
}

// StandardProfile is the default policy for pasted or uploaded CV text.
func StandardProfile() Profile {
	return Profile{
		Name:     ProfileStandard,
		Weights:  Weights{Format: 0.3, Content: 0.4, Regional: 0.3},
		Format:   canonicalFormat(),
		Content:  canonicalContent(),
		Regional: canonicalRegional(),
	}
}

// RecordProfile weights skills and format above regional context.
func RecordProfile() Profile {
	p := StandardProfile()
	p.Name = ProfileRecord
	p.Weights = Weights{Format: 0.4, Content: 0.4, Regional: 0.2}
	return p
}

// maxPoints bounds any single point value or cap; a sub-score cannot use more.
const maxPoints = 100

// Validate checks weights and point tables.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("profile name is required")
	}
	w := p.Weights
	for _, v := range []float64{w.Format, w.Content, w.Regional} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("profile %s: weights must be finite", p.Name)
		}
		if v < 0 {
			return fmt.Errorf("profile %s: weights must not be negative", p.Name)
		}
	}
	if sum := w.Format + w.Content + w.Regional; math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("profile %s: weights sum to %.4f, want 1", p.Name, sum)
	}
	f := p.Format
	c := p.Content
	for _, v := range []int{f.Sections, f.Bullets, f.Contact, f.DateRanges, f.Dates,
		c.ActionVerbs, c.ManyActionVerbs, c.QuantifiedResults, c.PerSkill, c.SkillsCap, c.LineLength} {
		if v < 0 || v > maxPoints {
			return fmt.Errorf("profile %s: points must be within 0..%d", p.Name, maxPoints)
		}
	}
	for cat, pts := range p.Regional {
		if pts.PerHit < 0 || pts.Cap < 0 || pts.PerHit > maxPoints || pts.Cap > maxPoints {
			return fmt.Errorf("profile %s: %s points must be within 0..%d", p.Name, cat, maxPoints)
		}
	}
	return nil
}

// ProfileSet resolves scoring profiles by name.
type ProfileSet struct {
	profiles map[string]Profile
}

// DefaultProfiles returns the built-in standard and record profiles.
func DefaultProfiles() *ProfileSet {
	return &ProfileSet{profiles: map[string]Profile{
		ProfileStandard: StandardProfile(),
		ProfileRecord:   RecordProfile(),
	}}
}

// Get returns the named profile. Blank and unknown names resolve to standard;
// ok is false only for a non-blank unknown name.
func (s *ProfileSet) Get(name string) (p Profile, ok bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if p, ok = s.profiles[key]; ok {
		return p, true
	}
	return s.profiles[ProfileStandard], key == ""
}

// Names lists profile names, sorted.
func (s *ProfileSet) Names() []string {
	out := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// All returns every profile ordered by name.
func (s *ProfileSet) All() []Profile {
	names := s.Names()
	out := make([]Profile, 0, len(names))
	for _, name := range names {
		out = append(out, s.profiles[name])
	}
	return out
}

type profileFile struct {
	Profiles []profileEntry `yaml:"profiles"`
}

type profileEntry struct {
	Name     string                      `yaml:"name"`
	Weights  *Weights                    `yaml:"weights"`
	Format   *FormatPoints               `yaml:"format"`
	Content  *ContentPoints              `yaml:"content"`
	Regional map[Category]CategoryPoints `yaml:"regional"`
}

// LoadProfiles reads YAML profiles on top of the built-in set. Omitted tables
// keep the canonical values; regional entries override per category.
func LoadProfiles(r io.Reader) (*ProfileSet, error) {
	var file profileFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	set := DefaultProfiles()
	for _, entry := range file.Profiles {
		name := strings.ToLower(strings.TrimSpace(entry.Name))
		p, ok := set.profiles[name]
		if !ok {
			p = StandardProfile()
		}
		p.Name = name
		if entry.Weights != nil {
			p.Weights = *entry.Weights
		}
		if entry.Format != nil {
			p.Format = *entry.Format
		}
		if entry.Content != nil {
			p.Content = *entry.Content
		}
		if len(entry.Regional) > 0 {
			regional := make(map[Category]CategoryPoints, len(p.Regional))
			for k, v := range p.Regional {
				regional[k] = v
			}
			for k, v := range entry.Regional {
				if !knownCategory(k) {
					return nil, fmt.Errorf("profile %s: unknown regional category %q", name, k)
				}
				regional[k] = v
			}
			p.Regional = regional
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		set.profiles[name] = p
	}
	return set, nil
}

func knownCategory(c Category) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}
