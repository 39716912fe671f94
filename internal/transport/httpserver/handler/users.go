package handler

import (
	"net/http"
	"time"

	accountdomain "chore-coin-go/internal/domain/account"
	"chore-coin-go/internal/transport/httpserver/middleware"
)

type userResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	UserType    string    `json:"userType"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	HasPasscode bool      `json:"hasPasscode"`
}

type userEnvelope struct {
	User userResponse `json:"user"`
}

type changeRoleRequest struct {
	UserType string  `json:"userType"`
	Passcode *string `json:"passcode"`
}

type setPasscodeRequest struct {
	NewPasscode     string  `json:"newPasscode"`
	CurrentPasscode *string `json:"currentPasscode"`
}

func (h *Handlers) GetMe(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, r)
		return
	}

	acc, err := h.Accounts.GetAccount(r.Context(), accountID)
	if err != nil {
		h.writeServiceError(w, r, "users.me", err, "user_id", accountID)
		return
	}

	writeJSON(w, http.StatusOK, userEnvelope{User: mapUser(*acc)})
}

// ChangeRole switches between child and parent mode. Entering parent mode
// needs the parent passcode.
func (h *Handlers) ChangeRole(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, r)
		return
	}

	var req changeRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeInvalidJSON(w, r)
		return
	}

	acc, err := h.Accounts.ChangeRole(r.Context(), accountID, req.UserType, req.Passcode)
	if err != nil {
		h.writeServiceError(w, r, "users.change_role", err, "user_id", accountID, "user_type", req.UserType)
		return
	}

	writeJSON(w, http.StatusOK, userEnvelope{User: mapUser(*acc)})
}

func (h *Handlers) SetPasscode(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, r)
		return
	}

	var req setPasscodeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeInvalidJSON(w, r)
		return
	}

	acc, err := h.Accounts.SetPasscode(r.Context(), accountID, req.NewPasscode, req.CurrentPasscode)
	if err != nil {
		h.writeServiceError(w, r, "users.set_passcode", err, "user_id", accountID)
		return
	}

	writeJSON(w, http.StatusOK, userEnvelope{User: mapUser(*acc)})
}

func mapUser(acc accountdomain.Account) userResponse {
	return userResponse{
		ID:          acc.ID,
		Email:       acc.Email,
		Name:        acc.Name,
		UserType:    acc.UserType,
		CreatedAt:   acc.CreatedAt,
		UpdatedAt:   acc.UpdatedAt,
		HasPasscode: acc.HasPasscode(),
	}
}
