package ats

// Rating is the ordinal band of an overall score.
type Rating string

const (
	RatingExcellent        Rating = "Excellent"
	RatingGood             Rating = "Good"
	RatingAverage          Rating = "Average"
	RatingNeedsImprovement Rating = "Needs Improvement"
)

// Relevance is the ordinal band of a regional-context or job-match score.
type Relevance string

const (
	RelevanceExcellent Relevance = "Excellent"
	RelevanceHigh      Relevance = "High"
	RelevanceMedium    Relevance = "Medium"
	RelevanceLow       Relevance = "Low"
)

// RatingFor maps an overall score to its rating.
func RatingFor(score int) Rating {
	switch {
	case score >= 80:
		return RatingExcellent
	case score >= 65:
		return RatingGood
	case score >= 50:
		return RatingAverage
	default:
		return RatingNeedsImprovement
	}
}

// RelevanceFor maps a regional-context score to its relevance band.
func RelevanceFor(score int) Relevance {
	switch {
	case score >= 80:
		return RelevanceExcellent
	case score >= 60:
		return RelevanceHigh
	case score >= 40:
		return RelevanceMedium
	default:
		return RelevanceLow
	}
}

// JobRelevanceFor maps a job-match score to its relevance band.
func JobRelevanceFor(score int) Relevance {
	switch {
	case score >= 75:
		return RelevanceHigh
	case score >= 50:
		return RelevanceMedium
	default:
		return RelevanceLow
	}
}
