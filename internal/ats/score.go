package ats

import "math"

// Scores are the three sub-scores and their weighted overall, each in [0,100].
type Scores struct {
	Overall  int
	Format   int
	Content  int
	Regional int
}

// Score aggregates detector flags into capped point sums under a profile.
func Score(f Flags, p Profile) Scores {
	s := Scores{
		Format:   formatScore(f, p.Format),
		Content:  contentScore(f, p.Content),
		Regional: regionalScore(f, p.Regional),
	}
	w := p.Weights
	s.Overall = clamp(int(math.Round(
		float64(s.Format)*w.Format + float64(s.Content)*w.Content + float64(s.Regional)*w.Regional,
	)))
	return s
}

func formatScore(f Flags, pts FormatPoints) int {
	total := 0
	if f.HasSections {
		total += pts.Sections
	}
	if f.HasBulletPoints {
		total += pts.Bullets
	}
	if f.HasContactInfo {
		total += pts.Contact
	}
	if f.HasDateRanges {
		total += pts.DateRanges
	}
	if f.HasDates {
		total += pts.Dates
	}
	return clamp(total)
}

func contentScore(f Flags, pts ContentPoints) int {
	total := 0
	if f.HasActionVerbs() {
		total += pts.ActionVerbs
	}
	if len(f.ActionVerbs) >= manyActionVerbs {
		total += pts.ManyActionVerbs
	}
	if f.HasQuantifiedResults {
		total += pts.QuantifiedResults
	}
	total += perHit(len(f.Skills), pts.PerSkill, pts.SkillsCap)
	if f.LineLengthOK() {
		total += pts.LineLength
	}
	return clamp(total)
}

func regionalScore(f Flags, table map[Category]CategoryPoints) int {
	total := 0
	for _, c := range Categories {
		pts, ok := table[c]
		if !ok {
			continue
		}
		total += perHit(f.Regional[c].Count, pts.PerHit, pts.Cap)
	}
	return clamp(total)
}

// perHit is min(count*points, limit) without overflowing the multiply.
func perHit(count, points, limit int) int {
	if count <= 0 || points <= 0 || limit <= 0 {
		return 0
	}
	if count > limit/points {
		return limit
	}
	return capped(count*points, limit)
}

func capped(v, limit int) int {
	if v > limit {
		return limit
	}
	return v
}

func clamp(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
