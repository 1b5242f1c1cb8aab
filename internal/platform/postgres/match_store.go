package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sparkmatch/spark-api/internal/domain"
	"github.com/sparkmatch/spark-api/internal/platform/logger"
	"github.com/sparkmatch/spark-api/internal/store"
)

// PostgresMatchStore implements the store.MatchStore interface
// using a PostgreSQL database as the storage backend.
//
// The one-active-match-per-pair invariant is enforced by a partial unique
// index on (pair_key) WHERE active. CreateIfAbsent leans on that index via
// ON CONFLICT DO NOTHING, which is what makes the operation safe under two
// concurrent creators racing on the same pair.
type PostgresMatchStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMatchStore creates a new PostgreSQL implementation of the
// MatchStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresMatchStore(db store.DBTX, logger *slog.Logger) *PostgresMatchStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMatchStore{
		db:     db,
		logger: logger.With(slog.String("component", "match_store")),
	}
}

// Ensure PostgresMatchStore implements store.MatchStore interface
var _ store.MatchStore = (*PostgresMatchStore)(nil)

const matchColumns = `id, pair_key, user_a, user_b, active, unread_a, unread_b, created_at, deactivated_at, deactivated_by`

// CreateIfAbsent implements store.MatchStore.CreateIfAbsent.
// The insert targets the partial unique index on active pair keys; losing
// the race surfaces as zero rows inserted, in which case the winner's row
// is read back and returned.
func (s *PostgresMatchStore) CreateIfAbsent(ctx context.Context, match *domain.Match) (bool, *domain.Match, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := match.Validate(); err != nil {
		log.Warn("match validation failed during create",
			slog.String("error", err.Error()),
			slog.String("pair_key", match.PairKey))
		return false, nil, store.NewStoreError("match", "create_if_absent", "validation failed", err)
	}

	query := `
		INSERT INTO matches (id, pair_key, user_a, user_b, active, unread_a, unread_b, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (pair_key) WHERE active DO NOTHING
	`

	// Two attempts: the only way both the insert and the read-back can come
	// up empty is the winner deactivating between our statements, in which
	// case the second insert succeeds.
	for attempt := 0; attempt < 2; attempt++ {
		result, err := s.db.ExecContext(
			ctx,
			query,
			match.ID,
			match.PairKey,
			match.UserA,
			match.UserB,
			match.Active,
			match.UnreadCounts[match.UserA],
			match.UnreadCounts[match.UserB],
			match.CreatedAt,
		)
		if err != nil {
			log.Error("failed to insert match",
				slog.String("error", err.Error()),
				slog.String("pair_key", match.PairKey))
			return false, nil, MapError(err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return false, nil, MapError(err)
		}

		if rows == 1 {
			log.Info("match created",
				slog.String("match_id", match.ID.String()),
				slog.String("pair_key", match.PairKey))
			return true, match, nil
		}

		existing, err := s.GetActiveByPairKey(ctx, match.PairKey)
		if err == nil {
			return false, existing, nil
		}
		if !errors.Is(err, store.ErrMatchNotFound) {
			return false, nil, err
		}
	}

	return false, nil, store.NewStoreError(
		"match", "create_if_absent", "conflicting writer kept winning", store.ErrTransactionFailed)
}

// GetActiveByPairKey implements store.MatchStore.GetActiveByPairKey.
func (s *PostgresMatchStore) GetActiveByPairKey(ctx context.Context, pairKey string) (*domain.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE pair_key = $1 AND active = TRUE`
	return s.scanMatch(ctx, query, pairKey)
}

// GetByID implements store.MatchStore.GetByID.
func (s *PostgresMatchStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return s.scanMatch(ctx, query, id)
}

// Deactivate implements store.MatchStore.Deactivate.
// Soft-delete only: the row stays, active flips to false, and the initiator
// and time are recorded. Swipe history is untouched.
func (s *PostgresMatchStore) Deactivate(ctx context.Context, id uuid.UUID, initiatedBy string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE matches
		SET active = FALSE, deactivated_at = $1, deactivated_by = $2
		WHERE id = $3 AND active = TRUE
	`

	result, err := s.db.ExecContext(ctx, query, time.Now().UTC(), initiatedBy, id)
	if err != nil {
		log.Error("failed to deactivate match",
			slog.String("error", err.Error()),
			slog.String("match_id", id.String()))
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrMatchNotFound
	}

	log.Info("match deactivated",
		slog.String("match_id", id.String()),
		slog.String("initiated_by", initiatedBy))
	return nil
}

// WithTx implements store.MatchStore.WithTx.
func (s *PostgresMatchStore) WithTx(tx *sql.Tx) store.MatchStore {
	return &PostgresMatchStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanMatch runs a single-row match query and maps the row to a domain Match.
func (s *PostgresMatchStore) scanMatch(ctx context.Context, query string, arg any) (*domain.Match, error) {
	var (
		match         domain.Match
		unreadA       int
		unreadB       int
		deactivatedAt sql.NullTime
		deactivatedBy sql.NullString
	)

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&match.ID,
		&match.PairKey,
		&match.UserA,
		&match.UserB,
		&match.Active,
		&unreadA,
		&unreadB,
		&match.CreatedAt,
		&deactivatedAt,
		&deactivatedBy,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrMatchNotFound
		}
		return nil, MapError(err)
	}

	match.UnreadCounts = map[string]int{
		match.UserA: unreadA,
		match.UserB: unreadB,
	}
	if deactivatedAt.Valid {
		t := deactivatedAt.Time
		match.DeactivatedAt = &t
	}
	if deactivatedBy.Valid {
		match.DeactivatedBy = deactivatedBy.String
	}

	return &match, nil
}
