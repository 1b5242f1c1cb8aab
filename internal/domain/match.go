package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Match-specific validation errors
var (
	// ErrMatchIDEmpty is returned when a match ID is empty or nil.
	ErrMatchIDEmpty = errors.New("match ID cannot be empty")

	// ErrMatchUserEmpty is returned when either side of the pair is empty.
	ErrMatchUserEmpty = errors.New("match user IDs cannot be empty")

	// ErrMatchSamePair is returned when both sides of the pair are the same user.
	ErrMatchSamePair = errors.New("match requires two distinct users")

	// ErrMatchPairKeyMismatch is returned when the stored pair key does not
	// match the canonical key derived from the pair.
	ErrMatchPairKeyMismatch = errors.New("match pair key does not match its users")
)

// PairKey derives the canonical, order-independent identity for a pair of
// users. Both swipe directions resolve to the same key, which is what the
// one-active-match-per-pair invariant is enforced against at the store level.
func PairKey(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + ":" + b
}

// SortPair returns the two user IDs in canonical (lexicographic) order.
func SortPair(a, b string) (string, string) {
	if strings.Compare(a, b) > 0 {
		return b, a
	}
	return a, b
}

// Match is the single canonical record of a mutual like between two users.
// UserA and UserB are stored in canonical order so that both swipe directions
// address the same entity. A match is created exactly once, the first time
// mutuality is observed by either side, and is deactivated on unmatch rather
// than deleted.
type Match struct {
	ID            uuid.UUID      `json:"id"`
	PairKey       string         `json:"pair_key"`
	UserA         string         `json:"user_a"`
	UserB         string         `json:"user_b"`
	Active        bool           `json:"active"`
	UnreadCounts  map[string]int `json:"unread_counts"`
	CreatedAt     time.Time      `json:"created_at"`
	DeactivatedAt *time.Time     `json:"deactivated_at,omitempty"`
	DeactivatedBy string         `json:"deactivated_by,omitempty"`
}

// NewMatch creates a new active Match for the pair {a, b}. The pair is
// canonicalized so either argument order produces an identical entity
// (apart from the generated ID). Returns an error if validation fails.
func NewMatch(a, b string) (*Match, error) {
	userA, userB := SortPair(a, b)
	match := &Match{
		ID:      uuid.New(),
		PairKey: PairKey(a, b),
		UserA:   userA,
		UserB:   userB,
		Active:  true,
		UnreadCounts: map[string]int{
			userA: 0,
			userB: 0,
		},
		CreatedAt: time.Now().UTC(),
	}

	if err := match.Validate(); err != nil {
		return nil, err
	}

	return match, nil
}

// Validate checks if the Match has valid data.
// Returns an error if any field fails validation.
func (m *Match) Validate() error {
	if m.ID == uuid.Nil {
		return ErrMatchIDEmpty
	}

	if m.UserA == "" || m.UserB == "" {
		return ErrMatchUserEmpty
	}

	if m.UserA == m.UserB {
		return ErrMatchSamePair
	}

	if m.PairKey != PairKey(m.UserA, m.UserB) {
		return ErrMatchPairKeyMismatch
	}

	return nil
}

// Includes reports whether the given user is one side of the match.
func (m *Match) Includes(userID string) bool {
	return m.UserA == userID || m.UserB == userID
}

// OtherUser returns the opposite side of the match for the given user,
// or an empty string if the user is not part of the match.
func (m *Match) OtherUser(userID string) string {
	switch userID {
	case m.UserA:
		return m.UserB
	case m.UserB:
		return m.UserA
	default:
		return ""
	}
}
