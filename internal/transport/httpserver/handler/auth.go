package handler

import (
	"errors"
	"net/http"
	"strings"

	"chore-coin-go/internal/auth"
	"chore-coin-go/internal/transport/httpserver/localize"
)

type googleLoginRequest struct {
	IDToken string `json:"idToken"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// GoogleLogin exchanges a Google ID token for a session token, creating the
// account on first login.
func (h *Handlers) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeInvalidJSON(w, r)
		return
	}
	idToken := strings.TrimSpace(req.IDToken)
	if idToken == "" {
		writeInvalidInput(w, r, "idToken", "idToken is required")
		return
	}

	identity, err := h.identity.Verify(r.Context(), idToken)
	if err != nil {
		if errors.Is(err, auth.ErrIdentityRejected) {
			h.log.BusinessError("auth.google: identity rejected", err)
			writeError(w, http.StatusUnauthorized, "invalid_token", localize.Text(r, localize.InvalidToken))
			return
		}
		h.writeServiceError(w, r, "auth.google", err)
		return
	}

	acc, err := h.Accounts.Login(r.Context(), identity)
	if err != nil {
		h.writeServiceError(w, r, "auth.google", err, "google_id", identity.Subject)
		return
	}

	token, err := h.tokens.Issue(acc.ID, acc.Email)
	if err != nil {
		h.writeServiceError(w, r, "auth.google", err, "user_id", acc.ID)
		return
	}

	h.log.Info("auth.google: login", "user_id", acc.ID)
	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: mapUser(*acc)})
}
