package store

import (
	"context"
	"database/sql"

	"github.com/sparkmatch/spark-api/internal/domain"
)

// ProfileStore defines the interface for profile data persistence.
// The matching core only reads profiles and bumps the total-match counter;
// full profile CRUD is owned by the profile subsystem.
type ProfileStore interface {
	// GetByID retrieves a profile by its user ID.
	// Returns ErrProfileNotFound if the profile does not exist.
	GetByID(ctx context.Context, userID string) (*domain.Profile, error)

	// IncrementTotalMatches adds one to the user's total-match counter.
	// The counter is advisory: callers treat failures as non-fatal and the
	// value may lag behind match creation briefly.
	IncrementTotalMatches(ctx context.Context, userID string) error

	// WithTx returns a new ProfileStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) ProfileStore
}
