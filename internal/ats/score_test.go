package ats

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreClampsToHundred(t *testing.T) {
	p := StandardProfile()
	p.Format = FormatPoints{Sections: 50, Bullets: 50, Contact: 50, DateRanges: 50, Dates: 50}
	p.Regional = map[Category]CategoryPoints{CategoryNQF: {PerHit: 200, Cap: 500}}

	f := Flags{
		HasSections:     true,
		HasBulletPoints: true,
		HasContactInfo:  true,
		Regional:        map[Category]RegionalHit{CategoryNQF: {Count: 3}},
	}
	s := Score(f, p)
	assert.Equal(t, 100, s.Format)
	assert.Equal(t, 100, s.Regional)
	assert.LessOrEqual(t, s.Overall, 100)
}

func TestScoreCapsPerCategory(t *testing.T) {
	f := Flags{Regional: map[Category]RegionalHit{
		CategoryBBBEE:    {Count: 4},
		CategoryLocation: {Count: 1},
	}}
	// bbbee 4*15 capped at 25, location 10
	assert.Equal(t, 35, Score(f, StandardProfile()).Regional)
}

func TestScoreSkillsCap(t *testing.T) {
	f := Flags{Skills: make([]string, 12)}
	assert.Equal(t, 30, Score(f, StandardProfile()).Content)
}

func TestScoreRangeOverInputs(t *testing.T) {
	inputs := []string{
		"",
		"x",
		strings.Repeat("managed developed led designed increased 50% python sql excel ", 200),
		"B-BBEE Level 1 b-bbee bbbee NQF 8 nqf 7 nqf level 6 Cape Town Durban Soweto isiXhosa Sesotho SAICA ECSA",
	}
	for _, in := range inputs {
		s := Score(Detect(Normalize(in)), StandardProfile())
		for _, v := range []int{s.Overall, s.Format, s.Content, s.Regional} {
			assert.GreaterOrEqual(t, v, 0)
			assert.LessOrEqual(t, v, 100)
		}
	}
}

func TestScoreWeightsByProfile(t *testing.T) {
	f := Flags{HasSections: true, HasBulletPoints: true, HasContactInfo: true, HasDateRanges: true, HasDates: true}
	assert.Equal(t, 30, Score(f, StandardProfile()).Overall)
	assert.Equal(t, 40, Score(f, RecordProfile()).Overall)
}

func TestRatingFor(t *testing.T) {
	cases := []struct {
		score int
		want  Rating
	}{
		{100, RatingExcellent},
		{80, RatingExcellent},
		{79, RatingGood},
		{65, RatingGood},
		{64, RatingAverage},
		{50, RatingAverage},
		{49, RatingNeedsImprovement},
		{0, RatingNeedsImprovement},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RatingFor(tc.score), "score %d", tc.score)
	}
}

func TestRelevanceFor(t *testing.T) {
	cases := []struct {
		score int
		want  Relevance
	}{
		{80, RelevanceExcellent},
		{79, RelevanceHigh},
		{60, RelevanceHigh},
		{59, RelevanceMedium},
		{40, RelevanceMedium},
		{39, RelevanceLow},
		{0, RelevanceLow},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RelevanceFor(tc.score), "score %d", tc.score)
	}
}

func TestJobRelevanceFor(t *testing.T) {
	assert.Equal(t, RelevanceHigh, JobRelevanceFor(90))
	assert.Equal(t, RelevanceHigh, JobRelevanceFor(75))
	assert.Equal(t, RelevanceMedium, JobRelevanceFor(74))
	assert.Equal(t, RelevanceMedium, JobRelevanceFor(50))
	assert.Equal(t, RelevanceLow, JobRelevanceFor(49))
}

func TestScoreMoreHitsNeverLowerCategory(t *testing.T) {
	p := StandardProfile()
	p.Regional = map[Category]CategoryPoints{CategoryNQF: {PerHit: 1 << 62, Cap: math.MaxInt}}
	p.Content = ContentPoints{PerSkill: 1 << 62, SkillsCap: math.MaxInt}

	prevRegional, prevContent := 0, 0
	for hits := 0; hits <= 4; hits++ {
		f := Flags{
			Regional: map[Category]RegionalHit{CategoryNQF: {Count: hits}},
			Skills:   make([]string, hits),
		}
		s := Score(f, p)
		assert.GreaterOrEqual(t, s.Regional, prevRegional, "regional at %d hits", hits)
		assert.GreaterOrEqual(t, s.Content, prevContent, "content at %d skills", hits)
		prevRegional, prevContent = s.Regional, s.Content
	}
	assert.Equal(t, 100, prevRegional)
	assert.Equal(t, 100, prevContent)
}
