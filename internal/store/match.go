package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sparkmatch/spark-api/internal/domain"
)

// MatchStore defines the interface for match persistence.
//
// CreateIfAbsent is the conditional-write primitive the one-active-match-
// per-pair invariant depends on: the store must guarantee that of two
// concurrent creators racing on the same pair key, exactly one creates and
// the other observes the existing row. A read-then-write emulation without
// that guarantee is not an acceptable implementation.
type MatchStore interface {
	// CreateIfAbsent atomically creates the match unless an active match
	// for its pair key already exists. It returns created=true with the
	// stored match on success, or created=false with the pre-existing
	// active match when the key is already taken.
	CreateIfAbsent(ctx context.Context, match *domain.Match) (created bool, existing *domain.Match, err error)

	// GetActiveByPairKey retrieves the active match for a canonical pair key.
	// Returns ErrMatchNotFound if no active match exists for the pair.
	GetActiveByPairKey(ctx context.Context, pairKey string) (*domain.Match, error)

	// GetByID retrieves a match by its unique ID regardless of active state.
	// Returns ErrMatchNotFound if the match does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error)

	// Deactivate soft-deletes a match, recording who initiated the unmatch
	// and when. Swipe history is untouched. Returns ErrMatchNotFound if the
	// match does not exist or is already inactive.
	Deactivate(ctx context.Context, id uuid.UUID, initiatedBy string) error

	// WithTx returns a new MatchStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) MatchStore
}
