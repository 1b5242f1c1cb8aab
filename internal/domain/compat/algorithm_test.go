package compat

import (
	"math"
	"testing"

	"github.com/sparkmatch/spark-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func profileWithInterests(interests ...string) *domain.Profile {
	return &domain.Profile{ID: "p", Age: 30, Interests: interests}
}

func TestInterestScore(t *testing.T) {
	params := NewDefaultParams()

	tests := []struct {
		name      string
		viewer    []string
		candidate []string
		want      float64
	}{
		{
			name: "both empty is neutral",
			want: 0.5,
		},
		{
			name:      "no overlap",
			viewer:    []string{"hiking"},
			candidate: []string{"art"},
			want:      0.0,
		},
		{
			name:      "jaccard without bonus",
			viewer:    []string{"hiking", "travel", "coffee"},
			candidate: []string{"hiking", "travel", "yoga", "art"},
			want:      0.4, // shared=2, union=5
		},
		{
			name:      "three shared adds small bonus",
			viewer:    []string{"hiking", "travel", "coffee", "wine", "jazz", "chess"},
			candidate: []string{"hiking", "travel", "coffee"},
			want:      0.5 + 0.10, // 3/6 + bonus
		},
		{
			name:      "identical five-interest sets cap at one",
			viewer:    []string{"hiking", "travel", "coffee", "wine", "jazz"},
			candidate: []string{"hiking", "travel", "coffee", "wine", "jazz"},
			want:      1.0, // 1.0 + strong bonus, capped
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _ := interestScore(
				profileWithInterests(tt.viewer...),
				profileWithInterests(tt.candidate...),
				params,
			)
			assert.InDelta(t, tt.want, score, 1e-9)
		})
	}
}

func TestInterestScoreReportsSharedInterests(t *testing.T) {
	params := NewDefaultParams()

	_, shared := interestScore(
		profileWithInterests("hiking", "travel", "coffee"),
		profileWithInterests("coffee", "hiking", "art"),
		params,
	)

	// Viewer order is preserved.
	assert.Equal(t, []string{"hiking", "coffee"}, shared)
}

func TestLanguageScore(t *testing.T) {
	params := NewDefaultParams()

	tests := []struct {
		name      string
		viewer    []string
		candidate []string
		want      float64
	}{
		{name: "viewer undeclared is neutral", candidate: []string{"english"}, want: 0.5},
		{name: "candidate undeclared is neutral", viewer: []string{"english"}, want: 0.5},
		{
			name:      "no shared language",
			viewer:    []string{"french"},
			candidate: []string{"german"},
			want:      0.2,
		},
		{
			name:      "one shared language",
			viewer:    []string{"english", "french"},
			candidate: []string{"english", "german"},
			want:      0.4,
		},
		{
			name:      "two shared languages",
			viewer:    []string{"english", "french"},
			candidate: []string{"english", "french"},
			want:      0.8,
		},
		{
			name:      "three shared languages cap at one",
			viewer:    []string{"english", "french", "spanish"},
			candidate: []string{"english", "french", "spanish"},
			want:      1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viewer := &domain.Profile{ID: "v", Age: 30, Languages: tt.viewer}
			candidate := &domain.Profile{ID: "c", Age: 30, Languages: tt.candidate}
			score, _ := languageScore(viewer, candidate, params)
			assert.InDelta(t, tt.want, score, 1e-9)
		})
	}
}

func TestAgeScore(t *testing.T) {
	viewer := &domain.Profile{
		ID:            "v",
		Age:           30,
		PreferredAges: domain.AgeRange{Min: 25, Max: 35},
	}

	tests := []struct {
		name         string
		candidateAge int
		want         float64
	}{
		{name: "below range", candidateAge: 24, want: 0},
		{name: "above range", candidateAge: 36, want: 0},
		{name: "midpoint is perfect", candidateAge: 30, want: 1.0},
		{name: "range edge", candidateAge: 25, want: 0.5},
		{name: "near midpoint", candidateAge: 32, want: 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := &domain.Profile{ID: "c", Age: tt.candidateAge}
			assert.InDelta(t, tt.want, ageScore(viewer, candidate), 1e-9)
		})
	}
}

func TestAgeScoreZeroWidthRange(t *testing.T) {
	viewer := &domain.Profile{
		ID:            "v",
		Age:           30,
		PreferredAges: domain.AgeRange{Min: 30, Max: 30},
	}

	assert.Equal(t, 1.0, ageScore(viewer, &domain.Profile{ID: "c", Age: 30}))
	assert.Equal(t, 0.0, ageScore(viewer, &domain.Profile{ID: "c", Age: 31}))
}

func TestLifestyleScore(t *testing.T) {
	params := NewDefaultParams()

	tests := []struct {
		name      string
		viewer    domain.Lifestyle
		candidate domain.Lifestyle
		want      float64
	}{
		{name: "nothing declared is neutral", want: 0.5},
		{
			name:      "only one side declared is neutral",
			viewer:    domain.Lifestyle{Smoking: "never"},
			candidate: domain.Lifestyle{Drinking: "socially"},
			want:      0.5,
		},
		{
			name:      "one of two compared attributes matches",
			viewer:    domain.Lifestyle{Smoking: "never", Exercise: "daily"},
			candidate: domain.Lifestyle{Smoking: "never", Exercise: "rarely"},
			want:      0.5,
		},
		{
			name:      "all compared attributes match",
			viewer:    domain.Lifestyle{Smoking: "never", Drinking: "socially", Pets: "dogs"},
			candidate: domain.Lifestyle{Smoking: "never", Drinking: "socially", Pets: "dogs"},
			want:      1.0,
		},
		{
			name:      "total mismatch",
			viewer:    domain.Lifestyle{Diet: "vegan"},
			candidate: domain.Lifestyle{Diet: "omnivore"},
			want:      0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viewer := &domain.Profile{ID: "v", Age: 30, Lifestyle: tt.viewer}
			candidate := &domain.Profile{ID: "c", Age: 30, Lifestyle: tt.candidate}
			assert.InDelta(t, tt.want, lifestyleScore(viewer, candidate, params), 1e-9)
		})
	}
}

func TestGoalScore(t *testing.T) {
	params := NewDefaultParams()

	tests := []struct {
		name      string
		viewer    domain.RelationshipGoal
		candidate domain.RelationshipGoal
		want      float64
	}{
		{name: "viewer unset is neutral", candidate: domain.GoalLongTerm, want: 0.5},
		{name: "candidate unset is neutral", viewer: domain.GoalLongTerm, want: 0.5},
		{name: "exact match", viewer: domain.GoalMarriage, candidate: domain.GoalMarriage, want: 1.0},
		{name: "long term and marriage are compatible", viewer: domain.GoalLongTerm, candidate: domain.GoalMarriage, want: 0.6},
		{name: "open pairs with long term", viewer: domain.GoalOpen, candidate: domain.GoalLongTerm, want: 0.6},
		{name: "open pairs with friendship", viewer: domain.GoalFriendship, candidate: domain.GoalOpen, want: 0.6},
		{name: "short term vs long term mismatch", viewer: domain.GoalShortTerm, candidate: domain.GoalLongTerm, want: 0.2},
		{name: "friendship vs marriage mismatch", viewer: domain.GoalFriendship, candidate: domain.GoalMarriage, want: 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viewer := &domain.Profile{ID: "v", Age: 30, Goal: tt.viewer}
			candidate := &domain.Profile{ID: "c", Age: 30, Goal: tt.candidate}
			assert.InDelta(t, tt.want, goalScore(viewer, candidate, params), 1e-9)
		})
	}
}

func TestGoalScoreIsSymmetric(t *testing.T) {
	params := NewDefaultParams()
	goals := []domain.RelationshipGoal{
		domain.GoalLongTerm, domain.GoalShortTerm, domain.GoalFriendship,
		domain.GoalOpen, domain.GoalMarriage,
	}

	for _, a := range goals {
		for _, b := range goals {
			va := &domain.Profile{ID: "v", Age: 30, Goal: a}
			vb := &domain.Profile{ID: "c", Age: 30, Goal: b}
			assert.Equal(t, goalScore(va, vb, params), goalScore(vb, va, params),
				"goalScore(%s, %s) must be symmetric", a, b)
		}
	}
}

func TestCompletenessScore(t *testing.T) {
	empty := &domain.Profile{ID: "c", Age: 30}
	assert.InDelta(t, 0.0, completenessScore(empty), 1e-9)

	full := &domain.Profile{
		ID:          "c",
		Age:         30,
		Bio:         "hello",
		Interests:   []string{"hiking"},
		Languages:   []string{"english"},
		PhotoCount:  4,
		PromptCount: 3,
		Education:   "university",
		JobTitle:    "engineer",
		HeightCm:    175,
		Goal:        domain.GoalLongTerm,
		Location:    &domain.Location{Latitude: 1, Longitude: 1},
	}
	assert.InDelta(t, 1.0, completenessScore(full), 1e-9)

	// One prompt does not satisfy the prompt check.
	partial := *full
	partial.PromptCount = 1
	partial.Bio = ""
	assert.InDelta(t, 0.8, completenessScore(&partial), 1e-9)
}

func TestProximityScore(t *testing.T) {
	params := NewDefaultParams()

	t.Run("unknown location is neutral", func(t *testing.T) {
		viewer := &domain.Profile{ID: "v", Age: 30, MaxDistanceKm: 50}
		candidate := &domain.Profile{ID: "c", Age: 30}
		score, dist := proximityScore(viewer, candidate, params)
		assert.Equal(t, 0.5, score)
		assert.Equal(t, -1.0, dist)
	})

	t.Run("same location scores one", func(t *testing.T) {
		loc := &domain.Location{Latitude: 48.8566, Longitude: 2.3522}
		viewer := &domain.Profile{ID: "v", Age: 30, Location: loc, MaxDistanceKm: 50}
		candidate := &domain.Profile{ID: "c", Age: 30, Location: loc}
		score, dist := proximityScore(viewer, candidate, params)
		assert.InDelta(t, 1.0, score, 1e-9)
		assert.InDelta(t, 0.0, dist, 1e-9)
	})

	t.Run("zero max distance at the same location is neutral", func(t *testing.T) {
		loc := &domain.Location{Latitude: 48.8566, Longitude: 2.3522}
		viewer := &domain.Profile{ID: "v", Age: 30, Location: loc, MaxDistanceKm: 0}
		candidate := &domain.Profile{ID: "c", Age: 30, Location: loc}
		score, dist := proximityScore(viewer, candidate, params)
		assert.False(t, math.IsNaN(score))
		assert.Equal(t, 0.5, score)
		assert.InDelta(t, 0.0, dist, 1e-9)
	})

	t.Run("beyond max distance gets the floor", func(t *testing.T) {
		viewer := &domain.Profile{
			ID: "v", Age: 30, MaxDistanceKm: 50,
			Location: &domain.Location{Latitude: 0, Longitude: 0},
		}
		candidate := &domain.Profile{
			ID: "c", Age: 30,
			// Roughly 111 km north.
			Location: &domain.Location{Latitude: 1, Longitude: 0},
		}
		score, dist := proximityScore(viewer, candidate, params)
		assert.Equal(t, 0.1, score)
		assert.InDelta(t, 111.2, dist, 0.5)
	})

	t.Run("inside range decays linearly", func(t *testing.T) {
		viewer := &domain.Profile{
			ID: "v", Age: 30, MaxDistanceKm: 100,
			Location: &domain.Location{Latitude: 0, Longitude: 0},
		}
		candidate := &domain.Profile{
			ID: "c", Age: 30,
			Location: &domain.Location{Latitude: 0.45, Longitude: 0},
		}
		score, dist := proximityScore(viewer, candidate, params)
		assert.InDelta(t, 50.0, dist, 0.5)
		assert.InDelta(t, 0.5, score, 0.01)
	})
}
