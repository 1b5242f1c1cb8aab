package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sparkmatch/spark-api/internal/domain"
	"github.com/sparkmatch/spark-api/internal/domain/compat"
	"github.com/sparkmatch/spark-api/internal/platform/logger"
	"github.com/sparkmatch/spark-api/internal/store"
)

// ScoreServiceError is a custom error type for score service errors.
type ScoreServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ScoreServiceError.
func (e *ScoreServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("score service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("score service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ScoreServiceError) Unwrap() error {
	return e.Err
}

// NewScoreServiceError creates a new ScoreServiceError.
func NewScoreServiceError(operation, message string, err error) *ScoreServiceError {
	return &ScoreServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// ScoreService computes compatibility between two stored profiles. The
// discovery feed calls it once per candidate shown to a viewer.
type ScoreService interface {
	Score(ctx context.Context, viewerID, candidateID string) (*compat.Result, error)
}

// scoreServiceImpl implements the ScoreService interface
type scoreServiceImpl struct {
	profiles store.ProfileStore
	scorer   compat.Scorer
	logger   *slog.Logger
}

// NewScoreService creates a new ScoreService.
// It returns an error if any of the required dependencies are nil.
func NewScoreService(
	profiles store.ProfileStore,
	scorer compat.Scorer,
	log *slog.Logger,
) (ScoreService, error) {
	if profiles == nil {
		return nil, domain.NewValidationError("profiles", "cannot be nil", domain.ErrValidation)
	}
	if scorer == nil {
		return nil, domain.NewValidationError("scorer", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &scoreServiceImpl{
		profiles: profiles,
		scorer:   scorer,
		logger:   log.With(slog.String("component", "score_service")),
	}, nil
}

// Score implements ScoreService.Score.
func (s *scoreServiceImpl) Score(
	ctx context.Context,
	viewerID, candidateID string,
) (*compat.Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	viewer, err := s.profiles.GetByID(ctx, viewerID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewScoreServiceError("score", "viewer profile not found", store.ErrProfileNotFound)
		}
		return nil, NewScoreServiceError("score", "failed to load viewer profile", err)
	}

	candidate, err := s.profiles.GetByID(ctx, candidateID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewScoreServiceError("score", "candidate profile not found", store.ErrProfileNotFound)
		}
		return nil, NewScoreServiceError("score", "failed to load candidate profile", err)
	}

	result, err := s.scorer.Score(viewer, candidate)
	if err != nil {
		return nil, NewScoreServiceError("score", "failed to compute score", err)
	}

	log.Debug("computed compatibility score",
		slog.String("viewer_id", viewerID),
		slog.String("candidate_id", candidateID),
		slog.Float64("score", result.Value))

	return result, nil
}

// Ensure scoreServiceImpl implements ScoreService
var _ ScoreService = (*scoreServiceImpl)(nil)
