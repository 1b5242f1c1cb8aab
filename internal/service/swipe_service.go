package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sparkmatch/spark-api/internal/domain"
	"github.com/sparkmatch/spark-api/internal/events"
	"github.com/sparkmatch/spark-api/internal/platform/logger"
	"github.com/sparkmatch/spark-api/internal/store"
	"github.com/sparkmatch/spark-api/internal/task"
)

// SwipeServiceError is a custom error type for swipe service errors.
type SwipeServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for SwipeServiceError.
func (e *SwipeServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("swipe service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("swipe service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *SwipeServiceError) Unwrap() error {
	return e.Err
}

// NewSwipeServiceError creates a new SwipeServiceError.
func NewSwipeServiceError(operation, message string, err error) *SwipeServiceError {
	return &SwipeServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// LikeResult reports the outcome of a like: whether it completed a mutual
// like, and if so the id of the (possibly pre-existing) match.
type LikeResult struct {
	IsMatch bool
	MatchID uuid.UUID
}

// SwipeService provides swipe-related operations.
type SwipeService interface {
	// Like records that from liked to, overwriting any previous decision
	// for that ordered pair, and reports whether this completed a mutual
	// like. The admission quota for the appropriate action kind is spent
	// first; an exhausted quota fails with a RateLimitError.
	Like(ctx context.Context, from, to string, isSuperLike bool) (*LikeResult, error)

	// Pass records that from passed on to, overwriting any previous
	// decision for that ordered pair.
	Pass(ctx context.Context, from, to string) error

	// HasSwipedOn reports from's current decision about to. At most one of
	// liked/passed is true, since decisions overwrite each other.
	HasSwipedOn(ctx context.Context, from, to string) (liked, passed bool, err error)

	// LikesReceived lists the active likes directed at userID, most recent
	// first.
	LikesReceived(ctx context.Context, userID string) ([]*domain.SwipeRecord, error)
}

// swipeServiceImpl implements the SwipeService interface
type swipeServiceImpl struct {
	admission AdmissionController
	swipes    store.SwipeStore
	matches   MatchService
	queue     task.QueueWriter
	sink      events.Sink
	logger    *slog.Logger
}

// NewSwipeService creates a new SwipeService.
// It returns an error if any of the required dependencies are nil.
func NewSwipeService(
	admission AdmissionController,
	swipes store.SwipeStore,
	matches MatchService,
	queue task.QueueWriter,
	sink events.Sink,
	log *slog.Logger,
) (SwipeService, error) {
	if admission == nil {
		return nil, domain.NewValidationError("admission", "cannot be nil", domain.ErrValidation)
	}
	if swipes == nil {
		return nil, domain.NewValidationError("swipes", "cannot be nil", domain.ErrValidation)
	}
	if matches == nil {
		return nil, domain.NewValidationError("matches", "cannot be nil", domain.ErrValidation)
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

	return &swipeServiceImpl{
		admission: admission,
		swipes:    swipes,
		matches:   matches,
		queue:     queue,
		sink:      sink,
		logger:    log.With(slog.String("component", "swipe_service")),
	}, nil
}

// Like implements SwipeService.Like.
func (s *swipeServiceImpl) Like(
	ctx context.Context,
	from, to string,
	isSuperLike bool,
) (*LikeResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	action := ActionSwipe
	if isSuperLike {
		action = ActionSuperLike
	}

	record, err := s.recordSwipe(ctx, from, to, domain.SwipeActionLike, isSuperLike, action)
	if err != nil {
		return nil, err
	}

	// Feature emission is advisory: queue saturation or a closed queue is
	// logged and never fails the like.
	if err := s.queue.Enqueue(task.NewSwipeFeatureTask(record, s.sink)); err != nil {
		log.Warn("failed to enqueue swipe feature task",
			slog.String("error", err.Error()),
			slog.String("from_user_id", from),
			slog.String("to_user_id", to))
	}

	reciprocal, err := s.swipes.Get(ctx, to, from)
	if err != nil {
		if store.IsNotFoundError(err) {
			return &LikeResult{IsMatch: false}, nil
		}
		// The like itself is already recorded. Retrying is safe: the
		// upsert is idempotent and the reciprocal check runs again.
		log.Error("failed to read reciprocal swipe",
			slog.String("error", err.Error()),
			slog.String("from_user_id", from),
			slog.String("to_user_id", to))
		return nil, NewSwipeServiceError("like", "failed to check for mutual like", err)
	}

	if !reciprocal.Active || !reciprocal.IsLike() {
		return &LikeResult{IsMatch: false}, nil
	}

	match, err := s.matches.CreateOrGet(ctx, from, to)
	if err != nil {
		log.Error("failed to create match for mutual like",
			slog.String("error", err.Error()),
			slog.String("from_user_id", from),
			slog.String("to_user_id", to))
		return nil, NewSwipeServiceError("like", "failed to create match", err)
	}

	log.Info("mutual like",
		slog.String("from_user_id", from),
		slog.String("to_user_id", to),
		slog.String("match_id", match.ID.String()))

	return &LikeResult{IsMatch: true, MatchID: match.ID}, nil
}

// Pass implements SwipeService.Pass.
func (s *swipeServiceImpl) Pass(ctx context.Context, from, to string) error {
	_, err := s.recordSwipe(ctx, from, to, domain.SwipeActionPass, false, ActionSwipe)
	return err
}

// recordSwipe runs the shared admission + upsert prefix of Like and Pass.
func (s *swipeServiceImpl) recordSwipe(
	ctx context.Context,
	from, to string,
	swipeAction domain.SwipeAction,
	isSuperLike bool,
	admissionAction string,
) (*domain.SwipeRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	decision, err := s.admission.TryConsume(ctx, from, admissionAction)
	if err != nil {
		return nil, NewSwipeServiceError("record_swipe", "admission check failed", err)
	}
	if !decision.Allowed {
		return nil, &RateLimitError{Action: admissionAction, RetryAfter: decision.RetryAfter}
	}

	record, err := domain.NewSwipeRecord(from, to, swipeAction, isSuperLike)
	if err != nil {
		return nil, NewSwipeServiceError("record_swipe", "invalid swipe", err)
	}

	if err := s.swipes.Upsert(ctx, record); err != nil {
		log.Error("failed to upsert swipe record",
			slog.String("error", err.Error()),
			slog.String("from_user_id", from),
			slog.String("to_user_id", to))
		return nil, NewSwipeServiceError("record_swipe", "failed to save swipe", err)
	}

	log.Debug("swipe recorded",
		slog.String("from_user_id", from),
		slog.String("to_user_id", to),
		slog.String("action", string(swipeAction)),
		slog.Bool("is_super_like", isSuperLike))

	return record, nil
}

// HasSwipedOn implements SwipeService.HasSwipedOn.
func (s *swipeServiceImpl) HasSwipedOn(
	ctx context.Context,
	from, to string,
) (liked, passed bool, err error) {
	record, err := s.swipes.Get(ctx, from, to)
	if err != nil {
		if store.IsNotFoundError(err) {
			return false, false, nil
		}
		return false, false, NewSwipeServiceError("has_swiped_on", "failed to read swipe", err)
	}

	if !record.Active {
		return false, false, nil
	}
	return record.IsLike(), !record.IsLike(), nil
}

// LikesReceived implements SwipeService.LikesReceived.
func (s *swipeServiceImpl) LikesReceived(
	ctx context.Context,
	userID string,
) ([]*domain.SwipeRecord, error) {
	likes, err := s.swipes.ListActiveLikesTo(ctx, userID)
	if err != nil {
		return nil, NewSwipeServiceError("likes_received", "failed to list likes", err)
	}
	return likes, nil
}

// Ensure swipeServiceImpl implements SwipeService
var _ SwipeService = (*swipeServiceImpl)(nil)
