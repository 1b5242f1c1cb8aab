package compat

import (
	"github.com/sparkmatch/spark-api/internal/domain"
)

// Params defines all configurable parameters for the compatibility algorithm.
type Params struct {
	// Blend weights for the headline score. They must sum to 1.0.
	InterestWeight     float64
	LanguageWeight     float64
	AgeFitWeight       float64
	LifestyleWeight    float64
	GoalWeight         float64
	CompletenessWeight float64

	// Shared-interest bonus thresholds and amounts. Only the largest
	// qualifying bonus applies, and the sub-score is capped at 1.0.
	StrongInterestBonusCount int
	StrongInterestBonus      float64
	InterestBonusCount       int
	InterestBonus            float64

	// Per-shared-language increment for the language sub-score.
	LanguageShareStep float64

	// Score assigned when neither side shares a declared language.
	NoSharedLanguageScore float64

	// Score assigned when the two goals appear in the compatibility table.
	CompatibleGoalScore float64

	// Score assigned when both goals are set but neither equal nor compatible.
	MismatchedGoalScore float64

	// Neutral is used whenever a sub-score has nothing to compare:
	// both interest sets empty, no declared languages, no comparable
	// lifestyle attributes, an unset goal, or an unknown location.
	Neutral float64

	// Proximity floor when the candidate is beyond the viewer's max distance.
	OutOfRangeProximity float64

	// CompatibleGoals is the fixed table of goal pairings that score
	// CompatibleGoalScore instead of MismatchedGoalScore. Keys are
	// unordered pairs in canonical order via goalPairKey.
	CompatibleGoals map[string]bool
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		InterestWeight:     0.30,
		LanguageWeight:     0.15,
		AgeFitWeight:       0.15,
		LifestyleWeight:    0.20,
		GoalWeight:         0.15,
		CompletenessWeight: 0.05,

		StrongInterestBonusCount: 5,
		StrongInterestBonus:      0.20,
		InterestBonusCount:       3,
		InterestBonus:            0.10,

		LanguageShareStep:     0.4,
		NoSharedLanguageScore: 0.2,

		CompatibleGoalScore: 0.6,
		MismatchedGoalScore: 0.2,

		Neutral:             0.5,
		OutOfRangeProximity: 0.1,

		CompatibleGoals: map[string]bool{
			goalPairKey(domain.GoalLongTerm, domain.GoalOpen):      true,
			goalPairKey(domain.GoalLongTerm, domain.GoalMarriage):  true,
			goalPairKey(domain.GoalShortTerm, domain.GoalOpen):     true,
			goalPairKey(domain.GoalFriendship, domain.GoalOpen):    true,
			goalPairKey(domain.GoalShortTerm, domain.GoalLongTerm): false,
		},
	}
}

// goalPairKey builds an order-independent lookup key for two goals.
func goalPairKey(a, b domain.RelationshipGoal) string {
	if a > b {
		a, b = b, a
	}
	return string(a) + "|" + string(b)
}
