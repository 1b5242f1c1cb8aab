package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sparkmatch/spark-api/internal/domain"
	"github.com/sparkmatch/spark-api/internal/events"
	"github.com/sparkmatch/spark-api/internal/platform/logger"
	"github.com/sparkmatch/spark-api/internal/store"
	"github.com/sparkmatch/spark-api/internal/task"
)

// MatchServiceError is a custom error type for match service errors.
type MatchServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for MatchServiceError.
func (e *MatchServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("match service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("match service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *MatchServiceError) Unwrap() error {
	return e.Err
}

// NewMatchServiceError creates a new MatchServiceError.
func NewMatchServiceError(operation, message string, err error) *MatchServiceError {
	return &MatchServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// MatchService provides match-related operations.
type MatchService interface {
	// CreateOrGet returns the single active match for the pair {userA, userB},
	// creating it if it does not exist yet. It is safe to call concurrently
	// from both directions of a mutual like: exactly one match is ever
	// created, and both callers receive it.
	CreateOrGet(ctx context.Context, userA, userB string) (*domain.Match, error)

	// Deactivate unmatches a pair. initiatedBy must be one of the match's
	// two users; otherwise domain.ErrUnauthorized is returned.
	Deactivate(ctx context.Context, matchID uuid.UUID, initiatedBy string) error
}

// matchServiceImpl implements the MatchService interface
type matchServiceImpl struct {
	matches  store.MatchStore
	profiles store.ProfileStore
	runTx    store.TxRunner
	queue    task.QueueWriter
	sink     events.Sink
	logger   *slog.Logger
}

// NewMatchService creates a new MatchService.
// It returns an error if any of the required dependencies are nil.
func NewMatchService(
	matches store.MatchStore,
	profiles store.ProfileStore,
	runTx store.TxRunner,
	queue task.QueueWriter,
	sink events.Sink,
	log *slog.Logger,
) (MatchService, error) {
	if matches == nil {
		return nil, domain.NewValidationError("matches", "cannot be nil", domain.ErrValidation)
	}
	if profiles == nil {
		return nil, domain.NewValidationError("profiles", "cannot be nil", domain.ErrValidation)
	}
	if runTx == nil {
		return nil, domain.NewValidationError("runTx", "cannot be nil", domain.ErrValidation)
	}
	if queue == nil {
		return nil, domain.NewValidationError("queue", "cannot be nil", domain.ErrValidation)
	}
	if sink == nil {
		return nil, domain.NewValidationError("sink", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &matchServiceImpl{
		matches:  matches,
		profiles: profiles,
		runTx:    runTx,
		queue:    queue,
		sink:     sink,
		logger:   log.With(slog.String("component", "match_service")),
	}, nil
}

// CreateOrGet implements MatchService.CreateOrGet.
//
// The fast path is a read of the active match for the canonical pair key.
// On a miss it attempts a conditional create; the store guarantees at most
// one active match per pair, so a lost race surfaces as created=false with
// the winner's row, which is returned as-is.
func (s *matchServiceImpl) CreateOrGet(
	ctx context.Context,
	userA, userB string,
) (*domain.Match, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	pairKey := domain.PairKey(userA, userB)

	existing, err := s.matches.GetActiveByPairKey(ctx, pairKey)
	if err == nil {
		log.Debug("match already exists for pair",
			slog.String("pair_key", pairKey),
			slog.String("match_id", existing.ID.String()))
		return existing, nil
	}
	if !store.IsNotFoundError(err) {
		log.Error("failed to look up match by pair key",
			slog.String("error", err.Error()),
			slog.String("pair_key", pairKey))
		return nil, NewMatchServiceError("create_or_get", "failed to look up match", err)
	}

	match, err := domain.NewMatch(userA, userB)
	if err != nil {
		return nil, NewMatchServiceError("create_or_get", "invalid pair", err)
	}

	created, winner, err := s.matches.CreateIfAbsent(ctx, match)
	if err != nil {
		log.Error("failed to create match",
			slog.String("error", err.Error()),
			slog.String("pair_key", pairKey))
		return nil, NewMatchServiceError("create_or_get", "failed to create match", err)
	}
	if !created {
		log.Debug("lost match creation race, returning existing match",
			slog.String("pair_key", pairKey),
			slog.String("match_id", winner.ID.String()))
		return winner, nil
	}

	log.Info("match created",
		slog.String("match_id", match.ID.String()),
		slog.String("pair_key", pairKey))

	// Counter bumps and the match-created event are advisory: queue
	// saturation must never fail the match itself.
	counterTask := task.NewMatchCounterTask(match, s.runTx, s.profiles, s.sink, s.logger)
	if err := s.queue.Enqueue(counterTask); err != nil {
		log.Warn("failed to enqueue match counter task",
			slog.String("error", err.Error()),
			slog.String("match_id", match.ID.String()))
	}

	return match, nil
}

// Deactivate implements MatchService.Deactivate.
func (s *matchServiceImpl) Deactivate(
	ctx context.Context,
	matchID uuid.UUID,
	initiatedBy string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return NewMatchServiceError("deactivate", "match not found", store.ErrMatchNotFound)
		}
		return NewMatchServiceError("deactivate", "failed to look up match", err)
	}

	if !match.Includes(initiatedBy) {
		log.Warn("deactivation attempted by non-member",
			slog.String("match_id", matchID.String()),
			slog.String("initiated_by", initiatedBy))
		return NewMatchServiceError("deactivate", "user is not part of this match", domain.ErrUnauthorized)
	}

	if err := s.matches.Deactivate(ctx, matchID, initiatedBy); err != nil {
		// A concurrent unmatch can deactivate the row between the read and
		// the update. The end state is what the caller asked for.
		if errors.Is(err, store.ErrMatchNotFound) {
			log.Debug("match already deactivated",
				slog.String("match_id", matchID.String()))
			return nil
		}
		return NewMatchServiceError("deactivate", "failed to deactivate match", err)
	}

	log.Info("match deactivated",
		slog.String("match_id", matchID.String()),
		slog.String("initiated_by", initiatedBy))
	return nil
}

// Ensure matchServiceImpl implements MatchService
var _ MatchService = (*matchServiceImpl)(nil)
