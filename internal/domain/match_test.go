package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairKey(t *testing.T) {
	assert.Equal(t, "alice:bob", PairKey("alice", "bob"))
	assert.Equal(t, "alice:bob", PairKey("bob", "alice"))
	assert.NotEqual(t, PairKey("alice", "bob"), PairKey("alice", "carol"))
}

func TestSortPair(t *testing.T) {
	a, b := SortPair("bob", "alice")
	assert.Equal(t, "alice", a)
	assert.Equal(t, "bob", b)

	a, b = SortPair("alice", "bob")
	assert.Equal(t, "alice", a)
	assert.Equal(t, "bob", b)
}

func TestNewMatchCanonicalizesPair(t *testing.T) {
	forward, err := NewMatch("alice", "bob")
	require.NoError(t, err)
	reverse, err := NewMatch("bob", "alice")
	require.NoError(t, err)

	assert.Equal(t, forward.UserA, reverse.UserA)
	assert.Equal(t, forward.UserB, reverse.UserB)
	assert.Equal(t, forward.PairKey, reverse.PairKey)
	assert.NotEqual(t, forward.ID, reverse.ID)

	assert.True(t, forward.Active)
	assert.Equal(t, map[string]int{"alice": 0, "bob": 0}, forward.UnreadCounts)
	assert.Nil(t, forward.DeactivatedAt)
}

func TestNewMatchRejectsInvalidPairs(t *testing.T) {
	_, err := NewMatch("alice", "alice")
	assert.ErrorIs(t, err, ErrMatchSamePair)

	_, err = NewMatch("", "bob")
	assert.ErrorIs(t, err, ErrMatchUserEmpty)
}

func TestMatchValidate(t *testing.T) {
	match, err := NewMatch("alice", "bob")
	require.NoError(t, err)

	t.Run("nil ID", func(t *testing.T) {
		m := *match
		m.ID = uuid.Nil
		assert.ErrorIs(t, m.Validate(), ErrMatchIDEmpty)
	})

	t.Run("pair key mismatch", func(t *testing.T) {
		m := *match
		m.PairKey = "alice:carol"
		assert.ErrorIs(t, m.Validate(), ErrMatchPairKeyMismatch)
	})
}

func TestMatchIncludesAndOtherUser(t *testing.T) {
	match, err := NewMatch("alice", "bob")
	require.NoError(t, err)

	assert.True(t, match.Includes("alice"))
	assert.True(t, match.Includes("bob"))
	assert.False(t, match.Includes("mallory"))

	assert.Equal(t, "bob", match.OtherUser("alice"))
	assert.Equal(t, "alice", match.OtherUser("bob"))
	assert.Equal(t, "", match.OtherUser("mallory"))
}
