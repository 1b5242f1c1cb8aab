package api

import (
	"time"

	"github.com/sparkmatch/spark-api/internal/domain"
	"github.com/sparkmatch/spark-api/internal/domain/compat"
)

// LikeRequest is the request body for POST /v1/swipes/like.
type LikeRequest struct {
	FromUserID  string `json:"from_user_id" validate:"required"`
	ToUserID    string `json:"to_user_id"   validate:"required,nefield=FromUserID"`
	IsSuperLike bool   `json:"is_super_like"`
}

// PassRequest is the request body for POST /v1/swipes/pass.
type PassRequest struct {
	FromUserID string `json:"from_user_id" validate:"required"`
	ToUserID   string `json:"to_user_id"   validate:"required,nefield=FromUserID"`
}

// UnmatchRequest is the request body for DELETE /v1/matches/{id}.
type UnmatchRequest struct {
	InitiatedBy string `json:"initiated_by" validate:"required"`
}

// LikeResponse reports the outcome of a like.
type LikeResponse struct {
	IsMatch bool   `json:"is_match"`
	MatchID string `json:"match_id,omitempty"`
}

// SwipeStatusResponse is the response for GET /v1/swipes/{from}/{to}.
type SwipeStatusResponse struct {
	Liked  bool `json:"liked"`
	Passed bool `json:"passed"`
}

// SwipeResponse represents one received like.
type SwipeResponse struct {
	FromUserID  string    `json:"from_user_id"`
	ToUserID    string    `json:"to_user_id"`
	IsSuperLike bool      `json:"is_super_like"`
	SwipedAt    time.Time `json:"swiped_at"`
}

// LikesReceivedResponse is the response for GET /v1/users/{id}/likes-received.
type LikesReceivedResponse struct {
	Likes []SwipeResponse `json:"likes"`
}

// ScoreResponse is the response for GET /v1/score.
type ScoreResponse struct {
	Score      float64  `json:"score"`
	Proximity  float64  `json:"proximity"`
	Reasons    []string `json:"reasons"`
	DistanceKm *float64 `json:"distance_km,omitempty"`

	SubScores ScoreBreakdown `json:"sub_scores"`
}

// ScoreBreakdown exposes the individual sub-scores for ranking diagnostics.
type ScoreBreakdown struct {
	Interests    float64 `json:"interests"`
	Languages    float64 `json:"languages"`
	AgeFit       float64 `json:"age_fit"`
	Lifestyle    float64 `json:"lifestyle"`
	Goal         float64 `json:"goal"`
	Completeness float64 `json:"completeness"`
}

// swipeToResponse converts a domain.SwipeRecord to a SwipeResponse.
func swipeToResponse(record *domain.SwipeRecord) SwipeResponse {
	return SwipeResponse{
		FromUserID:  record.FromUserID,
		ToUserID:    record.ToUserID,
		IsSuperLike: record.IsSuperLike,
		SwipedAt:    record.UpdatedAt,
	}
}

// scoreToResponse converts a compat.Result to a ScoreResponse.
func scoreToResponse(result *compat.Result) ScoreResponse {
	response := ScoreResponse{
		Score:     result.Value,
		Proximity: result.Proximity,
		Reasons:   result.Reasons,
		SubScores: ScoreBreakdown{
			Interests:    result.Interests,
			Languages:    result.Languages,
			AgeFit:       result.AgeFit,
			Lifestyle:    result.Lifestyle,
			Goal:         result.Goal,
			Completeness: result.Completeness,
		},
	}

	if result.DistanceKm >= 0 {
		distance := result.DistanceKm
		response.DistanceKm = &distance
	}

	return response
}
