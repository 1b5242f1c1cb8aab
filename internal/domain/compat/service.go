// Package compat implements the compatibility scoring algorithm: a pure,
// deterministic blend of six weighted sub-scores over two profiles, plus a
// separately reported proximity score and human-readable match reasons.
package compat

import (
	"errors"

	"github.com/sparkmatch/spark-api/internal/domain"
)

// Common errors
var (
	ErrNilProfile = errors.New("profile cannot be nil")
)

// Result is the full output of scoring a candidate for a viewer.
// Value is the weighted headline score in [0, 1]. Proximity is reported
// separately and is not blended into Value. Reasons holds up to three
// ordered, human-readable explanations for showing the candidate.
type Result struct {
	Value     float64  `json:"value"`
	Proximity float64  `json:"proximity"`
	Reasons   []string `json:"reasons"`

	// Individual sub-scores, exposed for ranking diagnostics.
	Interests    float64 `json:"interests"`
	Languages    float64 `json:"languages"`
	AgeFit       float64 `json:"age_fit"`
	Lifestyle    float64 `json:"lifestyle"`
	Goal         float64 `json:"goal"`
	Completeness float64 `json:"completeness"`

	// DistanceKm is the great-circle distance between the two profiles,
	// or -1 when either location is unknown.
	DistanceKm float64 `json:"distance_km"`
}

// Scorer defines the interface for compatibility scoring operations.
type Scorer interface {
	// Score computes the compatibility of candidate for viewer.
	// The operation is directional: the viewer's preferences (age range,
	// max distance) shape the result.
	Score(viewer, candidate *domain.Profile) (*Result, error)
}

// defaultScorer is the standard implementation of the Scorer interface.
type defaultScorer struct {
	params *Params
}

// NewDefaultScorer creates a new Scorer with default parameters.
func NewDefaultScorer() Scorer {
	return &defaultScorer{
		params: NewDefaultParams(),
	}
}

// NewScorerWithParams creates a new Scorer with custom parameters.
func NewScorerWithParams(params *Params) Scorer {
	return &defaultScorer{
		params: params,
	}
}

// Score implements the Scorer interface.
func (s *defaultScorer) Score(viewer, candidate *domain.Profile) (*Result, error) {
	if viewer == nil || candidate == nil {
		return nil, ErrNilProfile
	}

	p := s.params

	interests, sharedInterests := interestScore(viewer, candidate, p)
	languages, sharedLanguages := languageScore(viewer, candidate, p)
	ageFit := ageScore(viewer, candidate)
	lifestyle := lifestyleScore(viewer, candidate, p)
	goal := goalScore(viewer, candidate, p)
	completeness := completenessScore(candidate)
	proximity, distanceKm := proximityScore(viewer, candidate, p)

	value := interests*p.InterestWeight +
		languages*p.LanguageWeight +
		ageFit*p.AgeFitWeight +
		lifestyle*p.LifestyleWeight +
		goal*p.GoalWeight +
		completeness*p.CompletenessWeight

	result := &Result{
		Value:        clamp01(value),
		Proximity:    proximity,
		Interests:    interests,
		Languages:    languages,
		AgeFit:       ageFit,
		Lifestyle:    lifestyle,
		Goal:         goal,
		Completeness: completeness,
		DistanceKm:   distanceKm,
	}

	result.Reasons = buildReasons(viewer, candidate, sharedInterests, sharedLanguages, distanceKm)

	return result, nil
}
