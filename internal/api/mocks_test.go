package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sparkmatch/spark-api/internal/domain"
	"github.com/sparkmatch/spark-api/internal/domain/compat"
	"github.com/sparkmatch/spark-api/internal/platform/logger"
	"github.com/sparkmatch/spark-api/internal/service"
)

// stubSwipeService scripts SwipeService responses for handler tests.
type stubSwipeService struct {
	likeResult *service.LikeResult
	likeErr    error
	passErr    error

	liked     bool
	passed    bool
	statusErr error

	likesReceived []*domain.SwipeRecord
	likesErr      error
}

func (s *stubSwipeService) Like(context.Context, string, string, bool) (*service.LikeResult, error) {
	if s.likeErr != nil {
		return nil, s.likeErr
	}
	return s.likeResult, nil
}

func (s *stubSwipeService) Pass(context.Context, string, string) error {
	return s.passErr
}

func (s *stubSwipeService) HasSwipedOn(context.Context, string, string) (bool, bool, error) {
	return s.liked, s.passed, s.statusErr
}

func (s *stubSwipeService) LikesReceived(context.Context, string) ([]*domain.SwipeRecord, error) {
	return s.likesReceived, s.likesErr
}

// stubMatchService scripts MatchService responses for handler tests.
type stubMatchService struct {
	match         *domain.Match
	createErr     error
	deactivateErr error

	deactivatedID uuid.UUID
	initiatedBy   string
}

func (s *stubMatchService) CreateOrGet(context.Context, string, string) (*domain.Match, error) {
	return s.match, s.createErr
}

func (s *stubMatchService) Deactivate(_ context.Context, matchID uuid.UUID, initiatedBy string) error {
	if s.deactivateErr != nil {
		return s.deactivateErr
	}
	s.deactivatedID = matchID
	s.initiatedBy = initiatedBy
	return nil
}

// stubScoreService scripts ScoreService responses for handler tests.
type stubScoreService struct {
	result *compat.Result
	err    error
}

func (s *stubScoreService) Score(context.Context, string, string) (*compat.Result, error) {
	return s.result, s.err
}

type handlerFixture struct {
	swipes  *stubSwipeService
	matches *stubMatchService
	scores  *stubScoreService
	router  http.Handler
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	f := &handlerFixture{
		swipes:  &stubSwipeService{},
		matches: &stubMatchService{},
		scores:  &stubScoreService{},
	}
	_, log := logger.NewTestLogger(t)
	f.router = NewRouter(f.swipes, f.matches, f.scores, log)
	return f
}

func (f *handlerFixture) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

// Interface checks for the stubs.
var (
	_ service.SwipeService = (*stubSwipeService)(nil)
	_ service.MatchService = (*stubMatchService)(nil)
	_ service.ScoreService = (*stubScoreService)(nil)
)
