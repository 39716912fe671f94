package handler

import (
	"net/http"
	"time"

	ledgerdomain "chore-coin-go/internal/domain/ledger"
	"chore-coin-go/internal/transport/httpserver/middleware"
)

const invalidDateMessage = "invalid date, use YYYY-MM-DD"

type historyEntryResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}

type historyListResponse struct {
	History []historyEntryResponse `json:"history"`
}

type pointsResponse struct {
	TotalPoints   int `json:"totalPoints"`
	EarnedPoints  int `json:"earnedPoints"`
	ClaimedPoints int `json:"claimedPoints"`
}

func (h *Handlers) ListHistory(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, r)
		return
	}

	query := r.URL.Query()
	from, err := parseDateParam(query.Get("startDate"))
	if err != nil {
		writeInvalidInput(w, r, "startDate", invalidDateMessage)
		return
	}
	to, err := parseDateParam(query.Get("endDate"))
	if err != nil {
		writeInvalidInput(w, r, "endDate", invalidDateMessage)
		return
	}

	entries, err := h.Ledger.History(r.Context(), accountID, ledgerdomain.Filter{From: from, To: to})
	if err != nil {
		h.writeServiceError(w, r, "history.list", err, "user_id", accountID)
		return
	}

	response := historyListResponse{History: make([]historyEntryResponse, 0, len(entries))}
	for _, entry := range entries {
		response.History = append(response.History, historyEntryResponse{
			ID:        entry.ID,
			UserID:    entry.UserID,
			Type:      string(entry.Type),
			Name:      entry.Name,
			Points:    entry.Points,
			CreatedAt: entry.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetPoints(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, r)
		return
	}

	balance, err := h.Ledger.Balance(r.Context(), accountID)
	if err != nil {
		h.writeServiceError(w, r, "history.points", err, "user_id", accountID)
		return
	}

	writeJSON(w, http.StatusOK, pointsResponse{
		TotalPoints:   balance.Total,
		EarnedPoints:  balance.Earned,
		ClaimedPoints: balance.Claimed,
	})
}
