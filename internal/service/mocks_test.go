package service

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sparkmatch/spark-api/internal/domain"
	"github.com/sparkmatch/spark-api/internal/events"
	"github.com/sparkmatch/spark-api/internal/store"
	"github.com/sparkmatch/spark-api/internal/task"
)

// fakeSwipeStore is an in-memory SwipeStore keyed by the ordered pair.
type fakeSwipeStore struct {
	mu        sync.Mutex
	records   map[string]*domain.SwipeRecord
	upsertErr error
	getErr    error
}

func newFakeSwipeStore() *fakeSwipeStore {
	return &fakeSwipeStore{records: make(map[string]*domain.SwipeRecord)}
}

func swipeKey(from, to string) string { return from + "->" + to }

func (s *fakeSwipeStore) Upsert(_ context.Context, record *domain.SwipeRecord) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *record
	s.records[swipeKey(record.FromUserID, record.ToUserID)] = &copied
	return nil
}

func (s *fakeSwipeStore) Get(_ context.Context, from, to string) (*domain.SwipeRecord, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[swipeKey(from, to)]
	if !ok {
		return nil, store.ErrSwipeNotFound
	}
	copied := *record
	return &copied, nil
}

func (s *fakeSwipeStore) ListActiveLikesTo(_ context.Context, userID string) ([]*domain.SwipeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var likes []*domain.SwipeRecord
	for _, record := range s.records {
		if record.ToUserID == userID && record.IsLike() {
			copied := *record
			likes = append(likes, &copied)
		}
	}
	return likes, nil
}

func (s *fakeSwipeStore) WithTx(*sql.Tx) store.SwipeStore { return s }

// fakeMatchStore is an in-memory MatchStore whose CreateIfAbsent is atomic
// under a mutex, mirroring the partial-unique-index guarantee.
type fakeMatchStore struct {
	mu        sync.Mutex
	byPairKey map[string]*domain.Match
	byID      map[uuid.UUID]*domain.Match
	createErr error
	creates   int
}

func newFakeMatchStore() *fakeMatchStore {
	return &fakeMatchStore{
		byPairKey: make(map[string]*domain.Match),
		byID:      make(map[uuid.UUID]*domain.Match),
	}
}

func (s *fakeMatchStore) CreateIfAbsent(_ context.Context, match *domain.Match) (bool, *domain.Match, error) {
	if s.createErr != nil {
		return false, nil, s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.byPairKey[match.PairKey]; ok && existing.Active {
		copied := *existing
		return false, &copied, nil
	}
	copied := *match
	s.byPairKey[match.PairKey] = &copied
	s.byID[match.ID] = &copied
	s.creates++
	created := *match
	return true, &created, nil
}

func (s *fakeMatchStore) GetActiveByPairKey(_ context.Context, pairKey string) (*domain.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.byPairKey[pairKey]
	if !ok || !match.Active {
		return nil, store.ErrMatchNotFound
	}
	copied := *match
	return &copied, nil
}

func (s *fakeMatchStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.byID[id]
	if !ok {
		return nil, store.ErrMatchNotFound
	}
	copied := *match
	return &copied, nil
}

func (s *fakeMatchStore) Deactivate(_ context.Context, id uuid.UUID, initiatedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.byID[id]
	if !ok || !match.Active {
		return store.ErrMatchNotFound
	}
	now := time.Now().UTC()
	match.Active = false
	match.DeactivatedAt = &now
	match.DeactivatedBy = initiatedBy
	return nil
}

func (s *fakeMatchStore) WithTx(*sql.Tx) store.MatchStore { return s }

// fakeProfileStore is an in-memory ProfileStore with counter tracking.
type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile
	counters map[string]int
}

func newFakeProfileStore(profiles ...*domain.Profile) *fakeProfileStore {
	s := &fakeProfileStore{
		profiles: make(map[string]*domain.Profile),
		counters: make(map[string]int),
	}
	for _, p := range profiles {
		s.profiles[p.ID] = p
	}
	return s
}

func (s *fakeProfileStore) GetByID(_ context.Context, userID string) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	return profile, nil
}

func (s *fakeProfileStore) IncrementTotalMatches(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[userID]; !ok {
		return store.ErrProfileNotFound
	}
	s.counters[userID]++
	return nil
}

func (s *fakeProfileStore) WithTx(*sql.Tx) store.ProfileStore { return s }

// passthroughTxRunner invokes the transactional function directly. The
// fake stores ignore the tx handle, so nil stands in for it.
func passthroughTxRunner(ctx context.Context, fn store.TxFn) error {
	return fn(ctx, nil)
}

// fakeQuotaCounter scripts the centralized counter's responses.
type fakeQuotaCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	ttl    time.Duration
	err    error
}

func newFakeQuotaCounter(ttl time.Duration) *fakeQuotaCounter {
	return &fakeQuotaCounter{counts: make(map[string]int64), ttl: ttl}
}

func (c *fakeQuotaCounter) Incr(_ context.Context, userID, action string, _ time.Duration) (int64, time.Duration, error) {
	if c.err != nil {
		return 0, 0, c.err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	key := action + ":" + userID
	c.counts[key]++
	return c.counts[key], c.ttl, nil
}

// allowAllAdmission is an AdmissionController that never denies.
type allowAllAdmission struct{}

func (allowAllAdmission) TryConsume(context.Context, string, string) (Decision, error) {
	return Decision{Allowed: true, Remaining: 1}, nil
}

// denyAllAdmission is an AdmissionController that always denies with a
// fixed retry-after.
type denyAllAdmission struct {
	retryAfter time.Duration
}

func (d denyAllAdmission) TryConsume(context.Context, string, string) (Decision, error) {
	return Decision{Allowed: false, RetryAfter: d.retryAfter}, nil
}

// captureSink records emitted events.
type captureSink struct {
	mu      sync.Mutex
	emitted []*events.Event
}

func (s *captureSink) Emit(_ context.Context, event *events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emitted = append(s.emitted, event)
	return nil
}

func (s *captureSink) byType(eventType string) []*events.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []*events.Event
	for _, e := range s.emitted {
		if e.Type == eventType {
			matched = append(matched, e)
		}
	}
	return matched
}

// fakeQueue records enqueued tasks instead of running them. Setting err
// simulates a saturated or closed queue.
type fakeQueue struct {
	mu    sync.Mutex
	tasks []task.Task
	err   error
}

func (q *fakeQueue) Enqueue(t task.Task) error {
	if q.err != nil {
		return q.err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, t)
	return nil
}

func (q *fakeQueue) Close() {}

// drain executes every recorded task, mimicking the worker pool.
func (q *fakeQueue) drain(ctx context.Context) error {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()
	for _, t := range tasks {
		if err := t.Execute(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (q *fakeQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Interface checks for the fakes.
var (
	_ store.SwipeStore    = (*fakeSwipeStore)(nil)
	_ store.MatchStore    = (*fakeMatchStore)(nil)
	_ store.ProfileStore  = (*fakeProfileStore)(nil)
	_ QuotaCounter        = (*fakeQuotaCounter)(nil)
	_ AdmissionController = allowAllAdmission{}
	_ AdmissionController = denyAllAdmission{}
	_ events.Sink         = (*captureSink)(nil)
	_ task.QueueWriter    = (*fakeQueue)(nil)
)
