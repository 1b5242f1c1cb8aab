package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	apimiddleware "github.com/sparkmatch/spark-api/internal/api/middleware"
	"github.com/sparkmatch/spark-api/internal/service"
)

// NewRouter builds the application router with all routes and middleware.
func NewRouter(
	swipeService service.SwipeService,
	matchService service.MatchService,
	scoreService service.ScoreService,
	log *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.NewTraceMiddleware(log))

	swipeHandler := NewSwipeHandler(swipeService, log)
	matchHandler := NewMatchHandler(matchService, log)
	scoreHandler := NewScoreHandler(scoreService, log)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/swipes/like", swipeHandler.Like)
		r.Post("/swipes/pass", swipeHandler.Pass)
		r.Get("/swipes/{from}/{to}", swipeHandler.Status)
		r.Get("/users/{id}/likes-received", swipeHandler.LikesReceived)
		r.Get("/score", scoreHandler.Score)
		r.Delete("/matches/{id}", matchHandler.Unmatch)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
