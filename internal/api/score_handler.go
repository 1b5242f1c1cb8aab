package api

import (
	"log/slog"
	"net/http"

	"github.com/sparkmatch/spark-api/internal/api/shared"
	"github.com/sparkmatch/spark-api/internal/platform/logger"
	"github.com/sparkmatch/spark-api/internal/service"
)

// ScoreHandler handles compatibility-score HTTP requests
type ScoreHandler struct {
	scoreService service.ScoreService
	logger       *slog.Logger
}

// NewScoreHandler creates a new ScoreHandler
func NewScoreHandler(scoreService service.ScoreService, log *slog.Logger) *ScoreHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ScoreHandler")
	}

	return &ScoreHandler{
		scoreService: scoreService,
		logger:       log.With(slog.String("component", "score_handler")),
	}
}

// Score handles GET /v1/score?viewer=&candidate= requests.
func (h *ScoreHandler) Score(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	viewerID := r.URL.Query().Get("viewer")
	candidateID := r.URL.Query().Get("candidate")
	if viewerID == "" || candidateID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "viewer and candidate are required")
		return
	}

	result, err := h.scoreService.Score(r.Context(), viewerID, candidateID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to compute score"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("score computed",
		slog.String("viewer_id", viewerID),
		slog.String("candidate_id", candidateID),
		slog.Float64("score", result.Value))
	shared.RespondWithJSON(w, r, http.StatusOK, scoreToResponse(result))
}
