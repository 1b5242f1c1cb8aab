package domain

import (
	"errors"
	"time"
)

// Swipe-specific validation errors
var (
	// ErrSwipeFromEmpty is returned when the swiping user's ID is empty.
	ErrSwipeFromEmpty = errors.New("swipe from-user ID cannot be empty")

	// ErrSwipeToEmpty is returned when the target user's ID is empty.
	ErrSwipeToEmpty = errors.New("swipe to-user ID cannot be empty")

	// ErrSwipeSelf is returned when a user attempts to swipe on themselves.
	ErrSwipeSelf = errors.New("cannot swipe on yourself")

	// ErrSwipeActionInvalid is returned when the swipe action is not Like or Pass.
	ErrSwipeActionInvalid = errors.New("swipe action must be like or pass")
)

// SwipeAction is the direction of a swipe decision.
type SwipeAction string

// Possible swipe actions.
const (
	SwipeActionLike SwipeAction = "like"
	SwipeActionPass SwipeAction = "pass"
)

// SwipeRecord is the single decision a user holds about another user.
// It is keyed by the ordered pair (FromUserID, ToUserID): a new swipe
// overwrites the previous record for that pair rather than appending.
// Records are never deleted, only superseded.
type SwipeRecord struct {
	FromUserID  string      `json:"from_user_id"`
	ToUserID    string      `json:"to_user_id"`
	Action      SwipeAction `json:"action"`
	IsSuperLike bool        `json:"is_super_like"`
	Active      bool        `json:"active"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewSwipeRecord creates a new active SwipeRecord for the ordered pair
// (from, to) and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewSwipeRecord(from, to string, action SwipeAction, isSuperLike bool) (*SwipeRecord, error) {
	now := time.Now().UTC()
	rec := &SwipeRecord{
		FromUserID:  from,
		ToUserID:    to,
		Action:      action,
		IsSuperLike: isSuperLike,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}

	return rec, nil
}

// Validate checks if the SwipeRecord has valid data.
// Returns an error if any field fails validation.
func (r *SwipeRecord) Validate() error {
	if r.FromUserID == "" {
		return ErrSwipeFromEmpty
	}

	if r.ToUserID == "" {
		return ErrSwipeToEmpty
	}

	if r.FromUserID == r.ToUserID {
		return ErrSwipeSelf
	}

	if r.Action != SwipeActionLike && r.Action != SwipeActionPass {
		return ErrSwipeActionInvalid
	}

	return nil
}

// IsLike reports whether the record is an active like.
func (r *SwipeRecord) IsLike() bool {
	return r.Active && r.Action == SwipeActionLike
}
