package handler

import (
	"encoding/json"
	"net/http"
	"time"

	choresdomain "chore-coin-go/internal/domain/chores"
	ledgerdomain "chore-coin-go/internal/domain/ledger"
	"chore-coin-go/internal/metrics"
	"chore-coin-go/internal/transport/httpserver/localize"
	"chore-coin-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type choreRequest struct {
	Name      string          `json:"name"`
	Points    json.RawMessage `json:"points"`
	Recurring bool            `json:"recurring"`
}

type choreResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Points    int       `json:"points"`
	Recurring bool      `json:"recurring"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type choreListResponse struct {
	Chores []choreResponse `json:"chores"`
}

type choreEnvelope struct {
	Chore choreResponse `json:"chore"`
}

type completionResponse struct {
	Message      string `json:"message"`
	PointsEarned int    `json:"pointsEarned"`
	TotalPoints  int    `json:"totalPoints"`
}

func (h *Handlers) ListChores(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, r)
		return
	}

	chores, err := h.Chores.ListChores(r.Context(), accountID)
	if err != nil {
		h.writeServiceError(w, r, "chores.list", err, "user_id", accountID)
		return
	}

	response := choreListResponse{Chores: make([]choreResponse, 0, len(chores))}
	for _, chore := range chores {
		response.Chores = append(response.Chores, mapChore(chore))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateChore(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, r)
		return
	}

	var req choreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeInvalidJSON(w, r)
		return
	}
	points, err := parsePoints(req.Points)
	if err != nil {
		writeInvalidInput(w, r, "points", err.Error())
		return
	}

	chore, err := h.Chores.CreateChore(r.Context(), accountID, choresdomain.CreateChoreInput{
		Name:      req.Name,
		Points:    points,
		Recurring: req.Recurring,
	})
	if err != nil {
		h.writeServiceError(w, r, "chores.create", err, "user_id", accountID)
		return
	}

	writeJSON(w, http.StatusCreated, choreEnvelope{Chore: mapChore(*chore)})
}

func (h *Handlers) UpdateChore(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, r)
		return
	}
	choreID := chi.URLParam(r, "id")

	var req choreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeInvalidJSON(w, r)
		return
	}
	points, err := parsePoints(req.Points)
	if err != nil {
		writeInvalidInput(w, r, "points", err.Error())
		return
	}

	chore, err := h.Chores.UpdateChore(r.Context(), accountID, choresdomain.UpdateChoreInput{
		ID:        choreID,
		Name:      req.Name,
		Points:    points,
		Recurring: req.Recurring,
	})
	if err != nil {
		h.writeServiceError(w, r, "chores.update", err, "user_id", accountID, "chore_id", choreID)
		return
	}

	writeJSON(w, http.StatusOK, choreEnvelope{Chore: mapChore(*chore)})
}

func (h *Handlers) DeleteChore(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, r)
		return
	}
	choreID := chi.URLParam(r, "id")

	if err := h.Chores.DeleteChore(r.Context(), accountID, choreID); err != nil {
		h.writeServiceError(w, r, "chores.delete", err, "user_id", accountID, "chore_id", choreID)
		return
	}

	writeMessage(w, r, localize.ChoreDeleted)
}

func (h *Handlers) CompleteChore(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, r)
		return
	}
	choreID := chi.URLParam(r, "id")

	completion, err := h.Chores.CompleteChore(r.Context(), accountID, choreID)
	if err != nil {
		h.writeServiceError(w, r, "chores.complete", err, "user_id", accountID, "chore_id", choreID)
		return
	}
	metrics.LedgerEntries.WithLabelValues(string(ledgerdomain.KindEarn)).Inc()

	writeJSON(w, http.StatusOK, completionResponse{
		Message:      localize.Text(r, localize.ChoreCompleted),
		PointsEarned: completion.PointsAwarded,
		TotalPoints:  completion.TotalPoints,
	})
}

func mapChore(chore choresdomain.Chore) choreResponse {
	return choreResponse{
		ID:        chore.ID,
		UserID:    chore.UserID,
		Name:      chore.Name,
		Points:    chore.Points,
		Recurring: chore.Recurring,
		CreatedAt: chore.CreatedAt,
		UpdatedAt: chore.UpdatedAt,
	}
}
