package compat

import (
	"testing"

	"github.com/sparkmatch/spark-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreNilProfile(t *testing.T) {
	scorer := NewDefaultScorer()
	valid := &domain.Profile{ID: "v", Age: 30}

	_, err := scorer.Score(nil, valid)
	assert.ErrorIs(t, err, ErrNilProfile)

	_, err = scorer.Score(valid, nil)
	assert.ErrorIs(t, err, ErrNilProfile)
}

func TestScoreValueStaysInUnitInterval(t *testing.T) {
	scorer := NewDefaultScorer()

	profiles := []*domain.Profile{
		{ID: "bare", Age: 18},
		{
			ID: "rich", Age: 30,
			PreferredAges: domain.AgeRange{Min: 25, Max: 35},
			Interests:     []string{"hiking", "travel", "coffee", "wine", "jazz"},
			Languages:     []string{"english", "french", "spanish"},
			Lifestyle:     domain.Lifestyle{Smoking: "never", Exercise: "daily"},
			Goal:          domain.GoalLongTerm,
			Location:      &domain.Location{Latitude: 48.85, Longitude: 2.35},
			MaxDistanceKm: 50,
			Bio:           "hello",
			PhotoCount:    6,
			PromptCount:   3,
			Education:     "university",
			JobTitle:      "engineer",
			HeightCm:      180,
			Premium:       true,
			Verified:      true,
		},
		{ID: "distant", Age: 99, Location: &domain.Location{Latitude: -45, Longitude: 170}, MaxDistanceKm: 1},
	}

	for _, viewer := range profiles {
		for _, candidate := range profiles {
			result, err := scorer.Score(viewer, candidate)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, result.Value, 0.0)
			assert.LessOrEqual(t, result.Value, 1.0)
			assert.GreaterOrEqual(t, result.Proximity, 0.0)
			assert.LessOrEqual(t, result.Proximity, 1.0)
			assert.LessOrEqual(t, len(result.Reasons), 3)
		}
	}
}

func TestScoreBlendsWeightedSubScores(t *testing.T) {
	scorer := NewDefaultScorer()

	viewer := &domain.Profile{
		ID: "v", Age: 30,
		PreferredAges: domain.AgeRange{Min: 25, Max: 35},
		Interests:     []string{"hiking", "travel", "coffee"},
		Languages:     []string{"english", "french"},
		Goal:          domain.GoalLongTerm,
		MaxDistanceKm: 50,
	}
	candidate := &domain.Profile{
		ID: "c", Age: 30,
		Interests: []string{"hiking", "travel", "yoga", "art"},
		Languages: []string{"english"},
		Goal:      domain.GoalMarriage,
	}

	result, err := scorer.Score(viewer, candidate)
	require.NoError(t, err)

	assert.InDelta(t, 0.4, result.Interests, 1e-9)
	assert.InDelta(t, 0.4, result.Languages, 1e-9)
	assert.InDelta(t, 1.0, result.AgeFit, 1e-9)
	assert.InDelta(t, 0.5, result.Lifestyle, 1e-9, "no comparable lifestyle attributes")
	assert.InDelta(t, 0.6, result.Goal, 1e-9)
	assert.InDelta(t, 0.3, result.Completeness, 1e-9, "interests, languages, goal")

	expected := 0.4*0.30 + 0.4*0.15 + 1.0*0.15 + 0.5*0.20 + 0.6*0.15 + 0.3*0.05
	assert.InDelta(t, expected, result.Value, 1e-9)

	// Location unknown: proximity neutral and excluded from the blend.
	assert.Equal(t, 0.5, result.Proximity)
	assert.Equal(t, -1.0, result.DistanceKm)
}

func TestScoreProximityDoesNotMoveHeadlineValue(t *testing.T) {
	scorer := NewDefaultScorer()

	viewer := &domain.Profile{
		ID: "v", Age: 30,
		PreferredAges: domain.AgeRange{Min: 25, Max: 35},
		MaxDistanceKm: 50,
		Location:      &domain.Location{Latitude: 0, Longitude: 0},
	}
	near := &domain.Profile{ID: "near", Age: 30, Location: &domain.Location{Latitude: 0.01, Longitude: 0}}
	far := &domain.Profile{ID: "far", Age: 30, Location: &domain.Location{Latitude: 10, Longitude: 0}}

	nearResult, err := scorer.Score(viewer, near)
	require.NoError(t, err)
	farResult, err := scorer.Score(viewer, far)
	require.NoError(t, err)

	assert.Equal(t, nearResult.Value, farResult.Value)
	assert.Greater(t, nearResult.Proximity, farResult.Proximity)
}
