package domain

import (
	"errors"
	"time"
)

// Profile-specific validation errors
var (
	// ErrProfileIDEmpty is returned when a profile ID is empty.
	ErrProfileIDEmpty = errors.New("profile ID cannot be empty")

	// ErrProfileAgeInvalid is returned when a profile age is outside the allowed range.
	ErrProfileAgeInvalid = errors.New("profile age must be between 18 and 120")

	// ErrProfileAgeRangeInvalid is returned when the preferred age range is inverted
	// or outside the allowed bounds.
	ErrProfileAgeRangeInvalid = errors.New("preferred age range is invalid")

	// ErrProfileMaxDistanceInvalid is returned when the max search distance is not positive.
	ErrProfileMaxDistanceInvalid = errors.New("max search distance must be positive")
)

// LifestyleChoice is one value of an optional lifestyle attribute
// (smoking, drinking, exercise, diet, pets). An empty string means
// the user has not declared that attribute.
type LifestyleChoice string

// Lifestyle holds the optional lifestyle attributes used by compatibility
// scoring. Attributes are compared only when declared on both profiles.
type Lifestyle struct {
	Smoking  LifestyleChoice `json:"smoking,omitempty"`
	Drinking LifestyleChoice `json:"drinking,omitempty"`
	Exercise LifestyleChoice `json:"exercise,omitempty"`
	Diet     LifestyleChoice `json:"diet,omitempty"`
	Pets     LifestyleChoice `json:"pets,omitempty"`
}

// RelationshipGoal is a user's declared relationship intent.
// An empty string means the goal is unset.
type RelationshipGoal string

// Known relationship goals. The scorer's compatibility table references these.
const (
	GoalLongTerm   RelationshipGoal = "long_term"
	GoalShortTerm  RelationshipGoal = "short_term"
	GoalFriendship RelationshipGoal = "friendship"
	GoalOpen       RelationshipGoal = "open_to_anything"
	GoalMarriage   RelationshipGoal = "marriage"
)

// Location is a geographic point in decimal degrees.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AgeRange is a user's preferred candidate age window, inclusive on both ends.
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Span returns the width of the range in years.
func (r AgeRange) Span() int {
	return r.Max - r.Min
}

// Contains reports whether age falls inside the range, inclusive.
func (r AgeRange) Contains(age int) bool {
	return age >= r.Min && age <= r.Max
}

// Profile represents the subset of a user's profile consumed by the matching
// core: everything compatibility scoring reads, plus the flags surfaced in
// match reasons. Authentication and media belong to other subsystems.
type Profile struct {
	ID               string           `json:"id"`
	Age              int              `json:"age"`
	PreferredAges    AgeRange         `json:"preferred_ages"`
	Interests        []string         `json:"interests"`
	Languages        []string         `json:"languages"`
	Lifestyle        Lifestyle        `json:"lifestyle"`
	Goal             RelationshipGoal `json:"goal,omitempty"`
	Location         *Location        `json:"location,omitempty"`
	MaxDistanceKm    float64          `json:"max_distance_km"`
	Premium          bool             `json:"premium"`
	Verified         bool             `json:"verified"`
	Bio              string           `json:"bio"`
	PhotoCount       int              `json:"photo_count"`
	PromptCount      int              `json:"prompt_count"`
	Education        string           `json:"education"`
	JobTitle         string           `json:"job_title"`
	HeightCm         int              `json:"height_cm"`
	TotalMatches     int              `json:"total_matches"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// Validate checks if the Profile has valid data.
// Returns an error if any field fails validation.
func (p *Profile) Validate() error {
	if p.ID == "" {
		return ErrProfileIDEmpty
	}

	if p.Age < 18 || p.Age > 120 {
		return ErrProfileAgeInvalid
	}

	if p.PreferredAges.Min > p.PreferredAges.Max || p.PreferredAges.Min < 18 {
		return ErrProfileAgeRangeInvalid
	}

	if p.MaxDistanceKm <= 0 {
		return ErrProfileMaxDistanceInvalid
	}

	return nil
}
