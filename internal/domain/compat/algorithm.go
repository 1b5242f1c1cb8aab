package compat

import (
	"math"

	"github.com/sparkmatch/spark-api/internal/domain"
)

// interestScore computes the shared-interest sub-score as the Jaccard
// similarity of the two interest sets, with a bonus for a high absolute
// number of shared interests.
//
// Behavior:
//   - Both sets empty: returns params.Neutral (nothing to compare).
//   - Jaccard = |intersection| / |union|.
//   - StrongInterestBonusCount or more shared interests adds
//     StrongInterestBonus; otherwise InterestBonusCount or more adds
//     InterestBonus. The bonuses never stack.
//   - The result is capped at 1.0.
func interestScore(viewer, candidate *domain.Profile, params *Params) (float64, []string) {
	shared := intersect(viewer.Interests, candidate.Interests)

	union := len(unionSize(viewer.Interests, candidate.Interests))
	if union == 0 {
		return params.Neutral, shared
	}

	score := float64(len(shared)) / float64(union)

	switch {
	case len(shared) >= params.StrongInterestBonusCount:
		score += params.StrongInterestBonus
	case len(shared) >= params.InterestBonusCount:
		score += params.InterestBonus
	}

	return clamp01(score), shared
}

// languageScore computes the shared-language sub-score.
//
// Behavior:
//   - Either side has no declared languages: params.Neutral.
//   - No shared language: params.NoSharedLanguageScore.
//   - Otherwise min(sharedCount * LanguageShareStep, 1.0).
func languageScore(viewer, candidate *domain.Profile, params *Params) (float64, []string) {
	if len(viewer.Languages) == 0 || len(candidate.Languages) == 0 {
		return params.Neutral, nil
	}

	shared := intersect(viewer.Languages, candidate.Languages)
	if len(shared) == 0 {
		return params.NoSharedLanguageScore, nil
	}

	return math.Min(float64(len(shared))*params.LanguageShareStep, 1.0), shared
}

// ageScore computes how well the candidate's age fits the viewer's
// preferred range.
//
// Behavior:
//   - Candidate age outside [min, max]: 0.
//   - Zero-width range (and the age inside it): 1.0.
//   - Otherwise 1 - |candidateAge - idealAge| / rangeSpan, clamped to >= 0,
//     where idealAge is the midpoint of the viewer's range.
func ageScore(viewer, candidate *domain.Profile) float64 {
	if !viewer.PreferredAges.Contains(candidate.Age) {
		return 0
	}

	span := viewer.PreferredAges.Span()
	if span == 0 {
		return 1.0
	}

	ideal := idealAge(viewer.PreferredAges)
	score := 1.0 - math.Abs(float64(candidate.Age)-ideal)/float64(span)
	if score < 0 {
		return 0
	}
	return score
}

// idealAge is the midpoint of an age range.
func idealAge(r domain.AgeRange) float64 {
	return float64(r.Min+r.Max) / 2.0
}

// lifestyleScore compares the up-to-five optional lifestyle attributes.
// Only attributes declared on both sides participate; the score is the
// fraction of compared attributes with an exact match. With no comparable
// attribute at all the score is params.Neutral.
func lifestyleScore(viewer, candidate *domain.Profile, params *Params) float64 {
	pairs := [][2]domain.LifestyleChoice{
		{viewer.Lifestyle.Smoking, candidate.Lifestyle.Smoking},
		{viewer.Lifestyle.Drinking, candidate.Lifestyle.Drinking},
		{viewer.Lifestyle.Exercise, candidate.Lifestyle.Exercise},
		{viewer.Lifestyle.Diet, candidate.Lifestyle.Diet},
		{viewer.Lifestyle.Pets, candidate.Lifestyle.Pets},
	}

	compared := 0
	matched := 0
	for _, p := range pairs {
		if p[0] == "" || p[1] == "" {
			continue
		}
		compared++
		if p[0] == p[1] {
			matched++
		}
	}

	if compared == 0 {
		return params.Neutral
	}

	return float64(matched) / float64(compared)
}

// goalScore compares relationship goals.
//
// Behavior:
//   - Either goal unset: params.Neutral.
//   - Exact match: 1.0.
//   - Pair present in the compatibility table: params.CompatibleGoalScore.
//   - Otherwise params.MismatchedGoalScore.
func goalScore(viewer, candidate *domain.Profile, params *Params) float64 {
	if viewer.Goal == "" || candidate.Goal == "" {
		return params.Neutral
	}

	if viewer.Goal == candidate.Goal {
		return 1.0
	}

	if params.CompatibleGoals[goalPairKey(viewer.Goal, candidate.Goal)] {
		return params.CompatibleGoalScore
	}

	return params.MismatchedGoalScore
}

// completenessScore is the fraction of ten profile-richness checks the
// candidate satisfies. It rewards well-filled profiles independently of
// any similarity to the viewer.
func completenessScore(candidate *domain.Profile) float64 {
	checks := []bool{
		candidate.Bio != "",
		len(candidate.Interests) > 0,
		len(candidate.Languages) > 0,
		candidate.PhotoCount > 0,
		candidate.PromptCount >= 2,
		candidate.Education != "",
		candidate.JobTitle != "",
		candidate.HeightCm > 0,
		candidate.Goal != "",
		candidate.Location != nil,
	}

	satisfied := 0
	for _, ok := range checks {
		if ok {
			satisfied++
		}
	}

	return float64(satisfied) / float64(len(checks))
}

// proximityScore computes the distance sub-score, reported separately from
// the headline score.
//
// Behavior:
//   - Either location unknown: params.Neutral.
//   - Viewer's max search distance not positive: params.Neutral.
//   - Distance beyond the viewer's max search distance: OutOfRangeProximity.
//   - Otherwise 1 - distance/maxDistance, clamped to >= 0.
//
// The second return value is the great-circle distance in kilometers, or -1
// when unknown.
func proximityScore(viewer, candidate *domain.Profile, params *Params) (float64, float64) {
	if viewer.Location == nil || candidate.Location == nil {
		return params.Neutral, -1
	}

	dist := haversineKm(*viewer.Location, *candidate.Location)
	// A zero radius expresses no preference and would divide to NaN when
	// both locations coincide.
	if viewer.MaxDistanceKm <= 0 {
		return params.Neutral, dist
	}
	if dist > viewer.MaxDistanceKm {
		return params.OutOfRangeProximity, dist
	}

	score := 1.0 - dist/viewer.MaxDistanceKm
	if score < 0 {
		score = 0
	}
	return score, dist
}

// intersect returns the elements present in both slices, preserving the
// order of the first slice. Duplicates within a slice count once.
func intersect(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, s := range b {
		inB[s] = true
	}

	seen := make(map[string]bool, len(a))
	var shared []string
	for _, s := range a {
		if inB[s] && !seen[s] {
			shared = append(shared, s)
			seen[s] = true
		}
	}
	return shared
}

// unionSize returns the distinct elements across both slices.
func unionSize(a, b []string) map[string]bool {
	union := make(map[string]bool, len(a)+len(b))
	for _, s := range a {
		union[s] = true
	}
	for _, s := range b {
		union[s] = true
	}
	return union
}

// clamp01 bounds v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
