package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sparkmatch/spark-api/internal/domain"
	"github.com/sparkmatch/spark-api/internal/events"
	"github.com/sparkmatch/spark-api/internal/platform/logger"
	"github.com/sparkmatch/spark-api/internal/store"
	"github.com/sparkmatch/spark-api/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type matchFixture struct {
	matches  *fakeMatchStore
	profiles *fakeProfileStore
	queue    *fakeQueue
	sink     *captureSink
	service  MatchService
}

func newMatchFixture(t *testing.T) *matchFixture {
	t.Helper()

	matches := newFakeMatchStore()
	profiles := newFakeProfileStore(
		&domain.Profile{ID: "alice", Age: 29},
		&domain.Profile{ID: "bob", Age: 31},
	)
	queue := &fakeQueue{}
	sink := &captureSink{}
	_, log := logger.NewTestLogger(t)

	service, err := NewMatchService(matches, profiles, passthroughTxRunner, queue, sink, log)
	require.NoError(t, err)

	return &matchFixture{
		matches:  matches,
		profiles: profiles,
		queue:    queue,
		sink:     sink,
		service:  service,
	}
}

func TestCreateOrGetCreatesCanonicalMatch(t *testing.T) {
	f := newMatchFixture(t)

	match, err := f.service.CreateOrGet(context.Background(), "bob", "alice")
	require.NoError(t, err)

	// The pair is canonicalized regardless of argument order.
	assert.Equal(t, "alice", match.UserA)
	assert.Equal(t, "bob", match.UserB)
	assert.Equal(t, domain.PairKey("alice", "bob"), match.PairKey)
	assert.True(t, match.Active)
}

func TestCreateOrGetIsIdempotentAcrossArgumentOrders(t *testing.T) {
	f := newMatchFixture(t)

	first, err := f.service.CreateOrGet(context.Background(), "alice", "bob")
	require.NoError(t, err)

	second, err := f.service.CreateOrGet(context.Background(), "bob", "alice")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, f.matches.creates)
}

func TestCreateOrGetConcurrentCallersGetOneMatch(t *testing.T) {
	f := newMatchFixture(t)

	const callers = 16
	var wg sync.WaitGroup
	ids := make([]uuid.UUID, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, b := "alice", "bob"
			if i%2 == 1 {
				a, b = b, a
			}
			match, err := f.service.CreateOrGet(context.Background(), a, b)
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = match.ID
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i], "all callers must observe the same match")
	}
	assert.Equal(t, 1, f.matches.creates)
}

func TestCreateOrGetEnqueuesCounterTaskOnCreationOnly(t *testing.T) {
	f := newMatchFixture(t)

	match, err := f.service.CreateOrGet(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, f.queue.len())

	_, err = f.service.CreateOrGet(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, f.queue.len(), "pre-existing match must not enqueue another bump")

	require.NoError(t, f.queue.drain(context.Background()))
	assert.Equal(t, 1, f.profiles.counters["alice"])
	assert.Equal(t, 1, f.profiles.counters["bob"])

	created := f.sink.byType(events.TypeMatchCreated)
	require.Len(t, created, 1)

	var payload task.MatchCreatedPayload
	require.NoError(t, created[0].UnmarshalPayload(&payload))
	assert.Equal(t, match.ID.String(), payload.MatchID)
}

func TestCreateOrGetStoreFailure(t *testing.T) {
	f := newMatchFixture(t)
	f.matches.createErr = errors.New("database unavailable")

	_, err := f.service.CreateOrGet(context.Background(), "alice", "bob")

	var svcErr *MatchServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "create_or_get", svcErr.Operation)
}

func TestCreateOrGetSamePairRejected(t *testing.T) {
	f := newMatchFixture(t)

	_, err := f.service.CreateOrGet(context.Background(), "alice", "alice")
	assert.ErrorIs(t, err, domain.ErrMatchSamePair)
}

func TestDeactivateByMember(t *testing.T) {
	f := newMatchFixture(t)

	match, err := f.service.CreateOrGet(context.Background(), "alice", "bob")
	require.NoError(t, err)

	require.NoError(t, f.service.Deactivate(context.Background(), match.ID, "bob"))

	stored, err := f.matches.GetByID(context.Background(), match.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
	assert.Equal(t, "bob", stored.DeactivatedBy)
	assert.NotNil(t, stored.DeactivatedAt)

	// The pair can match again later.
	_, err = f.matches.GetActiveByPairKey(context.Background(), match.PairKey)
	assert.ErrorIs(t, err, store.ErrMatchNotFound)
}

func TestDeactivateByNonMemberRejected(t *testing.T) {
	f := newMatchFixture(t)

	match, err := f.service.CreateOrGet(context.Background(), "alice", "bob")
	require.NoError(t, err)

	err = f.service.Deactivate(context.Background(), match.ID, "mallory")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	stored, err := f.matches.GetByID(context.Background(), match.ID)
	require.NoError(t, err)
	assert.True(t, stored.Active)
}

func TestDeactivateUnknownMatch(t *testing.T) {
	f := newMatchFixture(t)

	err := f.service.Deactivate(context.Background(), uuid.New(), "alice")
	assert.ErrorIs(t, err, store.ErrMatchNotFound)
}

func TestDeactivateAlreadyDeactivatedIsANoOp(t *testing.T) {
	f := newMatchFixture(t)

	match, err := f.service.CreateOrGet(context.Background(), "alice", "bob")
	require.NoError(t, err)

	require.NoError(t, f.service.Deactivate(context.Background(), match.ID, "alice"))
	require.NoError(t, f.service.Deactivate(context.Background(), match.ID, "alice"))
}
