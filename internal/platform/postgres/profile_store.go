package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/sparkmatch/spark-api/internal/domain"
	"github.com/sparkmatch/spark-api/internal/platform/logger"
	"github.com/sparkmatch/spark-api/internal/store"
)

// PostgresProfileStore implements the store.ProfileStore interface
// using a PostgreSQL database as the storage backend. Interests, languages
// and lifestyle attributes live in JSONB columns; the matching core only
// reads them.
type PostgresProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProfileStore creates a new PostgreSQL implementation of the
// ProfileStore interface. If logger is nil, a default logger will be used.
func NewPostgresProfileStore(db store.DBTX, logger *slog.Logger) *PostgresProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

// Ensure PostgresProfileStore implements store.ProfileStore interface
var _ store.ProfileStore = (*PostgresProfileStore)(nil)

// GetByID implements store.ProfileStore.GetByID.
func (s *PostgresProfileStore) GetByID(ctx context.Context, userID string) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, age, preferred_age_min, preferred_age_max, interests, languages,
		       lifestyle, goal, latitude, longitude, max_distance_km,
		       premium, verified, bio, photo_count, prompt_count, education,
		       job_title, height_cm, total_matches, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	var (
		profile   domain.Profile
		interests []byte
		languages []byte
		lifestyle []byte
		goal      sql.NullString
		latitude  sql.NullFloat64
		longitude sql.NullFloat64
	)

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID,
		&profile.Age,
		&profile.PreferredAges.Min,
		&profile.PreferredAges.Max,
		&interests,
		&languages,
		&lifestyle,
		&goal,
		&latitude,
		&longitude,
		&profile.MaxDistanceKm,
		&profile.Premium,
		&profile.Verified,
		&profile.Bio,
		&profile.PhotoCount,
		&profile.PromptCount,
		&profile.Education,
		&profile.JobTitle,
		&profile.HeightCm,
		&profile.TotalMatches,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProfileNotFound
		}

		log.Error("failed to get profile",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return nil, MapError(err)
	}

	if err := json.Unmarshal(interests, &profile.Interests); err != nil {
		return nil, store.NewStoreError("profile", "get", "invalid interests payload", err)
	}
	if err := json.Unmarshal(languages, &profile.Languages); err != nil {
		return nil, store.NewStoreError("profile", "get", "invalid languages payload", err)
	}
	if err := json.Unmarshal(lifestyle, &profile.Lifestyle); err != nil {
		return nil, store.NewStoreError("profile", "get", "invalid lifestyle payload", err)
	}

	if goal.Valid {
		profile.Goal = domain.RelationshipGoal(goal.String)
	}
	if latitude.Valid && longitude.Valid {
		profile.Location = &domain.Location{
			Latitude:  latitude.Float64,
			Longitude: longitude.Float64,
		}
	}

	return &profile, nil
}

// IncrementTotalMatches implements store.ProfileStore.IncrementTotalMatches.
// The counter is advisory and only eventually consistent with match creation,
// so a missing profile is reported but nothing is compensated.
func (s *PostgresProfileStore) IncrementTotalMatches(ctx context.Context, userID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `UPDATE profiles SET total_matches = total_matches + 1, updated_at = NOW() WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to increment total matches",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrProfileNotFound
	}

	return nil
}

// WithTx implements store.ProfileStore.WithTx.
func (s *PostgresProfileStore) WithTx(tx *sql.Tx) store.ProfileStore {
	return &PostgresProfileStore{
		db:     tx,
		logger: s.logger,
	}
}
