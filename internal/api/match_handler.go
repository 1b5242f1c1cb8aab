package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sparkmatch/spark-api/internal/api/shared"
	"github.com/sparkmatch/spark-api/internal/platform/logger"
	"github.com/sparkmatch/spark-api/internal/service"
)

// MatchHandler handles match-related HTTP requests
type MatchHandler struct {
	matchService service.MatchService
	logger       *slog.Logger
}

// NewMatchHandler creates a new MatchHandler
func NewMatchHandler(matchService service.MatchService, log *slog.Logger) *MatchHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for MatchHandler")
	}

	return &MatchHandler{
		matchService: matchService,
		logger:       log.With(slog.String("component", "match_handler")),
	}
}

// Unmatch handles DELETE /v1/matches/{id} requests.
// The body names the initiating user, who must be one side of the match.
func (h *MatchHandler) Unmatch(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	pathMatchID := chi.URLParam(r, "id")
	matchID, err := uuid.Parse(pathMatchID)
	if err != nil {
		log.Warn("invalid match ID format", slog.String("match_id", pathMatchID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid match ID format")
		return
	}

	var req UnmatchRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	if err := h.matchService.Deactivate(r.Context(), matchID, req.InitiatedBy); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to unmatch"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("match deactivated",
		slog.String("match_id", matchID.String()),
		slog.String("initiated_by", req.InitiatedBy))
	w.WriteHeader(http.StatusNoContent)
}
