package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sparkmatch/spark-api/internal/api/shared"
	"github.com/sparkmatch/spark-api/internal/platform/logger"
	"github.com/sparkmatch/spark-api/internal/service"
)

// SwipeHandler handles swipe-related HTTP requests
type SwipeHandler struct {
	swipeService service.SwipeService
	logger       *slog.Logger
}

// NewSwipeHandler creates a new SwipeHandler
func NewSwipeHandler(swipeService service.SwipeService, log *slog.Logger) *SwipeHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SwipeHandler")
	}

	return &SwipeHandler{
		swipeService: swipeService,
		logger:       log.With(slog.String("component", "swipe_handler")),
	}
}

// Like handles POST /v1/swipes/like requests.
// On a mutual like the response carries the match id.
func (h *SwipeHandler) Like(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LikeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	result, err := h.swipeService.Like(r.Context(), req.FromUserID, req.ToUserID, req.IsSuperLike)
	if err != nil {
		h.respondSwipeError(w, r, err, "Failed to record like")
		return
	}

	response := LikeResponse{IsMatch: result.IsMatch}
	if result.IsMatch {
		response.MatchID = result.MatchID.String()
	}

	log.Debug("like recorded",
		slog.String("from_user_id", req.FromUserID),
		slog.String("to_user_id", req.ToUserID),
		slog.Bool("is_match", result.IsMatch))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// Pass handles POST /v1/swipes/pass requests.
func (h *SwipeHandler) Pass(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req PassRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	if err := h.swipeService.Pass(r.Context(), req.FromUserID, req.ToUserID); err != nil {
		h.respondSwipeError(w, r, err, "Failed to record pass")
		return
	}

	log.Debug("pass recorded",
		slog.String("from_user_id", req.FromUserID),
		slog.String("to_user_id", req.ToUserID))
	w.WriteHeader(http.StatusNoContent)
}

// Status handles GET /v1/swipes/{from}/{to} requests.
// It reports the single current decision for the ordered pair.
func (h *SwipeHandler) Status(w http.ResponseWriter, r *http.Request) {
	from := chi.URLParam(r, "from")
	to := chi.URLParam(r, "to")
	if from == "" || to == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Both user IDs are required")
		return
	}

	liked, passed, err := h.swipeService.HasSwipedOn(r.Context(), from, to)
	if err != nil {
		h.respondSwipeError(w, r, err, "Failed to look up swipe")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SwipeStatusResponse{Liked: liked, Passed: passed})
}

// LikesReceived handles GET /v1/users/{id}/likes-received requests.
func (h *SwipeHandler) LikesReceived(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "User ID is required")
		return
	}

	likes, err := h.swipeService.LikesReceived(r.Context(), userID)
	if err != nil {
		h.respondSwipeError(w, r, err, "Failed to list likes")
		return
	}

	response := LikesReceivedResponse{Likes: make([]SwipeResponse, 0, len(likes))}
	for _, record := range likes {
		response.Likes = append(response.Likes, swipeToResponse(record))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// respondSwipeError maps a service error onto the HTTP response, setting the
// Retry-After header for quota denials.
func (h *SwipeHandler) respondSwipeError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
	fallbackMessage string,
) {
	statusCode := MapErrorToStatusCode(err)
	safeMessage := GetSafeErrorMessage(err)
	if statusCode == http.StatusInternalServerError {
		safeMessage = fallbackMessage
	}

	var rateLimited *service.RateLimitError
	if errors.As(err, &rateLimited) {
		seconds := int(rateLimited.RetryAfter.Seconds())
		if seconds < 1 {
			seconds = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
}
