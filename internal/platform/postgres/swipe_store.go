package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sparkmatch/spark-api/internal/domain"
	"github.com/sparkmatch/spark-api/internal/platform/logger"
	"github.com/sparkmatch/spark-api/internal/store"
)

// PostgresSwipeStore implements the store.SwipeStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSwipeStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSwipeStore creates a new PostgreSQL implementation of the
// SwipeStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresSwipeStore(db store.DBTX, logger *slog.Logger) *PostgresSwipeStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSwipeStore{
		db:     db,
		logger: logger.With(slog.String("component", "swipe_store")),
	}
}

// Ensure PostgresSwipeStore implements store.SwipeStore interface
var _ store.SwipeStore = (*PostgresSwipeStore)(nil)

// Upsert implements store.SwipeStore.Upsert.
// The ordered pair (from_user_id, to_user_id) is the primary key, so the
// ON CONFLICT clause makes this a pure overwrite: the previous decision for
// the pair is replaced, created_at is preserved from the first insert.
func (s *PostgresSwipeStore) Upsert(ctx context.Context, record *domain.SwipeRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := record.Validate(); err != nil {
		log.Warn("swipe validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("from_user_id", record.FromUserID),
			slog.String("to_user_id", record.ToUserID))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO swipes (from_user_id, to_user_id, action, is_super_like, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (from_user_id, to_user_id) DO UPDATE
		SET action        = EXCLUDED.action,
		    is_super_like = EXCLUDED.is_super_like,
		    active        = EXCLUDED.active,
		    updated_at    = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		record.FromUserID,
		record.ToUserID,
		record.Action,
		record.IsSuperLike,
		record.Active,
		record.CreatedAt,
		record.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during swipe upsert",
				slog.String("error", err.Error()),
				slog.String("from_user_id", record.FromUserID),
				slog.String("to_user_id", record.ToUserID))
			return MapError(err)
		}

		log.Error("failed to upsert swipe",
			slog.String("error", err.Error()),
			slog.String("from_user_id", record.FromUserID),
			slog.String("to_user_id", record.ToUserID))
		return MapError(err)
	}

	return nil
}

// Get implements store.SwipeStore.Get.
// Returns store.ErrSwipeNotFound if no record exists for the ordered pair.
func (s *PostgresSwipeStore) Get(ctx context.Context, from, to string) (*domain.SwipeRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT from_user_id, to_user_id, action, is_super_like, active, created_at, updated_at
		FROM swipes
		WHERE from_user_id = $1 AND to_user_id = $2
	`

	var record domain.SwipeRecord
	err := s.db.QueryRowContext(ctx, query, from, to).Scan(
		&record.FromUserID,
		&record.ToUserID,
		&record.Action,
		&record.IsSuperLike,
		&record.Active,
		&record.CreatedAt,
		&record.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSwipeNotFound
		}

		log.Error("failed to get swipe",
			slog.String("error", err.Error()),
			slog.String("from_user_id", from),
			slog.String("to_user_id", to))
		return nil, MapError(err)
	}

	return &record, nil
}

// ListActiveLikesTo implements store.SwipeStore.ListActiveLikesTo.
func (s *PostgresSwipeStore) ListActiveLikesTo(ctx context.Context, userID string) ([]*domain.SwipeRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT from_user_id, to_user_id, action, is_super_like, active, created_at, updated_at
		FROM swipes
		WHERE to_user_id = $1 AND action = $2 AND active = TRUE
		ORDER BY updated_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, domain.SwipeActionLike)
	if err != nil {
		log.Error("failed to list likes received",
			slog.String("error", err.Error()),
			slog.String("to_user_id", userID))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var records []*domain.SwipeRecord
	for rows.Next() {
		var record domain.SwipeRecord
		if err := rows.Scan(
			&record.FromUserID,
			&record.ToUserID,
			&record.Action,
			&record.IsSuperLike,
			&record.Active,
			&record.CreatedAt,
			&record.UpdatedAt,
		); err != nil {
			log.Error("failed to scan swipe row",
				slog.String("error", err.Error()),
				slog.String("to_user_id", userID))
			return nil, MapError(err)
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return records, nil
}

// WithTx implements store.SwipeStore.WithTx.
func (s *PostgresSwipeStore) WithTx(tx *sql.Tx) store.SwipeStore {
	return &PostgresSwipeStore{
		db:     tx,
		logger: s.logger,
	}
}
