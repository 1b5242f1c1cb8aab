package store

import (
	"context"
	"database/sql"

	"github.com/sparkmatch/spark-api/internal/domain"
)

// SwipeStore defines the interface for swipe record persistence.
//
// A swipe record is keyed by the ordered pair (from, to). Upsert is a pure
// overwrite: the store holds at most one record per ordered pair and a new
// decision replaces the previous one in place.
type SwipeStore interface {
	// Upsert writes the record for its ordered pair, replacing any existing
	// record. Returns validation errors from the domain SwipeRecord wrapped
	// in ErrInvalidEntity if the data is invalid.
	Upsert(ctx context.Context, record *domain.SwipeRecord) error

	// Get retrieves the single record for the ordered pair (from, to).
	// Returns ErrSwipeNotFound if no record exists.
	Get(ctx context.Context, from, to string) (*domain.SwipeRecord, error)

	// ListActiveLikesTo returns all active Like records targeting the given
	// user, most recent first.
	ListActiveLikesTo(ctx context.Context, userID string) ([]*domain.SwipeRecord, error)

	// WithTx returns a new SwipeStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) SwipeStore
}
