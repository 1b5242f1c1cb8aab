package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sparkmatch/spark-api/internal/api"
	"github.com/sparkmatch/spark-api/internal/config"
	"github.com/sparkmatch/spark-api/internal/domain/compat"
	"github.com/sparkmatch/spark-api/internal/events"
	"github.com/sparkmatch/spark-api/internal/platform/postgres"
	"github.com/sparkmatch/spark-api/internal/platform/redisquota"
	"github.com/sparkmatch/spark-api/internal/service"
	"github.com/sparkmatch/spark-api/internal/store"
	"github.com/sparkmatch/spark-api/internal/task"
)

// redisPingTimeout bounds the startup connectivity check for the quota
// counter. Failure is logged, not fatal: admission control degrades to
// its in-process fallback until the counter comes back.
const redisPingTimeout = 2 * time.Second

// application holds the wired components whose lifecycle outlives a
// single request: the background task machinery, the Redis client and
// the HTTP router serving on top of them.
type application struct {
	router     http.Handler
	taskQueue  *task.Queue
	workerPool *task.WorkerPool
	redis      *redis.Client
	logger     *slog.Logger
}

// newApplication wires stores, services and the router on top of the
// given database connection. Components are created dependency-first so
// each constructor can validate what it receives.
func newApplication(cfg *config.Config, db *sql.DB, log *slog.Logger) (*application, error) {
	// Event sink with a logging terminal handler; external feature
	// pipelines register here when they exist.
	sink := events.NewFanOutSink(log)
	sink.RegisterHandler(events.NewLoggingHandler(log))

	// Background task machinery for fire-and-forget work on the swipe
	// and match paths.
	taskQueue := task.NewQueue(cfg.Task.QueueSize, log)
	workerPool := task.NewWorkerPool(taskQueue, task.WorkerPoolConfig{
		WorkerCount: cfg.Task.WorkerCount,
	}, log)
	workerPool.Start()

	// Centralized quota counter.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	quotaCounter := redisquota.NewCounter(redisClient, log)

	pingCtx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := quotaCounter.Ping(pingCtx); err != nil {
		log.Warn("quota counter unreachable at startup, admission will use local fallback",
			slog.String("addr", cfg.Redis.Addr),
			slog.String("error", err.Error()))
	}

	// Stores.
	profileStore := postgres.NewPostgresProfileStore(db, log)
	swipeStore := postgres.NewPostgresSwipeStore(db, log)
	matchStore := postgres.NewPostgresMatchStore(db, log)
	txRunner := store.NewTxRunner(db)

	// Services.
	admission, err := service.NewAdmissionController(quotaCounter, map[string]service.Quota{
		service.ActionSwipe: {
			Limit:  int64(cfg.Quota.SwipeLimit),
			Window: cfg.Quota.SwipeWindow,
		},
		service.ActionSuperLike: {
			Limit:  int64(cfg.Quota.SuperLikeLimit),
			Window: cfg.Quota.SuperLikeWindow,
		},
	}, sink, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create admission controller: %w", err)
	}

	matchService, err := service.NewMatchService(matchStore, profileStore, txRunner, taskQueue, sink, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create match service: %w", err)
	}

	swipeService, err := service.NewSwipeService(admission, swipeStore, matchService, taskQueue, sink, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create swipe service: %w", err)
	}

	scoreService, err := service.NewScoreService(profileStore, compat.NewDefaultScorer(), log)
	if err != nil {
		return nil, fmt.Errorf("failed to create score service: %w", err)
	}

	router := api.NewRouter(swipeService, matchService, scoreService, log)

	return &application{
		router:     router,
		taskQueue:  taskQueue,
		workerPool: workerPool,
		redis:      redisClient,
		logger:     log,
	}, nil
}

// shutdown drains the background machinery after the HTTP server has
// stopped: close the queue so no new tasks arrive, let the workers
// finish what is buffered, then release the Redis client.
func (a *application) shutdown() {
	a.taskQueue.Close()
	a.workerPool.Wait()

	if err := a.redis.Close(); err != nil {
		a.logger.Error("failed to close redis client", slog.String("error", err.Error()))
	}

	a.logger.Info("application shut down")
}
