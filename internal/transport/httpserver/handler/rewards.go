package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	ledgerdomain "chore-coin-go/internal/domain/ledger"
	rewardsdomain "chore-coin-go/internal/domain/rewards"
	"chore-coin-go/internal/metrics"
	"chore-coin-go/internal/transport/httpserver/localize"
	"chore-coin-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type rewardRequest struct {
	Name   string          `json:"name"`
	Points json.RawMessage `json:"points"`
}

type rewardResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type rewardListResponse struct {
	Rewards []rewardResponse `json:"rewards"`
}

type rewardEnvelope struct {
	Reward rewardResponse `json:"reward"`
}

type redemptionResponse struct {
	Message     string `json:"message"`
	PointsUsed  int    `json:"pointsUsed"`
	TotalPoints int    `json:"totalPoints"`
}

func (h *Handlers) ListRewards(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, r)
		return
	}

	rewards, err := h.Rewards.ListRewards(r.Context(), accountID)
	if err != nil {
		h.writeServiceError(w, r, "rewards.list", err, "user_id", accountID)
		return
	}

	response := rewardListResponse{Rewards: make([]rewardResponse, 0, len(rewards))}
	for _, reward := range rewards {
		response.Rewards = append(response.Rewards, mapReward(reward))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateReward(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, r)
		return
	}

	var req rewardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeInvalidJSON(w, r)
		return
	}
	points, err := parsePoints(req.Points)
	if err != nil {
		writeInvalidInput(w, r, "points", err.Error())
		return
	}

	reward, err := h.Rewards.CreateReward(r.Context(), accountID, rewardsdomain.CreateRewardInput{
		Name:   req.Name,
		Points: points,
	})
	if err != nil {
		h.writeServiceError(w, r, "rewards.create", err, "user_id", accountID)
		return
	}

	writeJSON(w, http.StatusCreated, rewardEnvelope{Reward: mapReward(*reward)})
}

func (h *Handlers) UpdateReward(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, r)
		return
	}
	rewardID := chi.URLParam(r, "id")

	var req rewardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeInvalidJSON(w, r)
		return
	}
	points, err := parsePoints(req.Points)
	if err != nil {
		writeInvalidInput(w, r, "points", err.Error())
		return
	}

	reward, err := h.Rewards.UpdateReward(r.Context(), accountID, rewardsdomain.UpdateRewardInput{
		ID:     rewardID,
		Name:   req.Name,
		Points: points,
	})
	if err != nil {
		h.writeServiceError(w, r, "rewards.update", err, "user_id", accountID, "reward_id", rewardID)
		return
	}

	writeJSON(w, http.StatusOK, rewardEnvelope{Reward: mapReward(*reward)})
}

func (h *Handlers) DeleteReward(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, r)
		return
	}
	rewardID := chi.URLParam(r, "id")

	if err := h.Rewards.DeleteReward(r.Context(), accountID, rewardID); err != nil {
		h.writeServiceError(w, r, "rewards.delete", err, "user_id", accountID, "reward_id", rewardID)
		return
	}

	writeMessage(w, r, localize.RewardDeleted)
}

func (h *Handlers) ClaimReward(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, r)
		return
	}
	rewardID := chi.URLParam(r, "id")

	redemption, err := h.Rewards.ClaimReward(r.Context(), accountID, rewardID)
	if err != nil {
		if errors.Is(err, rewardsdomain.ErrInsufficientPoints) {
			metrics.ClaimsRejected.Inc()
		}
		h.writeServiceError(w, r, "rewards.claim", err, "user_id", accountID, "reward_id", rewardID)
		return
	}
	metrics.LedgerEntries.WithLabelValues(string(ledgerdomain.KindClaim)).Inc()

	writeJSON(w, http.StatusOK, redemptionResponse{
		Message:     localize.Text(r, localize.RewardClaimed),
		PointsUsed:  redemption.PointsSpent,
		TotalPoints: redemption.TotalPoints,
	})
}

func mapReward(reward rewardsdomain.Reward) rewardResponse {
	return rewardResponse{
		ID:        reward.ID,
		UserID:    reward.UserID,
		Name:      reward.Name,
		Points:    reward.Points,
		CreatedAt: reward.CreatedAt,
		UpdatedAt: reward.UpdatedAt,
	}
}
