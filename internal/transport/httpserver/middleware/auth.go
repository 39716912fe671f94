package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"chore-coin-go/internal/auth"
	"chore-coin-go/internal/transport/httpserver/localize"
	"chore-coin-go/pkg/logger"
)

type contextKey int

const accountIDKey contextKey = iota

// TokenParser resolves a session token to the account id it was issued for.
type TokenParser interface {
	Parse(token string) (string, error)
}

type SessionAuth struct {
	tokens TokenParser
	log    logger.Logger
}

func NewSessionAuth(tokens TokenParser, log logger.Logger) *SessionAuth {
	if log == nil {
		log = logger.NewNop()
	}
	return &SessionAuth{tokens: tokens, log: log}
}

func (a *SessionAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing_token", localize.Text(r, localize.MissingToken))
			return
		}

		accountID, err := a.tokens.Parse(token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				writeError(w, http.StatusUnauthorized, "expired_token", localize.Text(r, localize.ExpiredToken))
				return
			}
			a.log.Debug("auth: token rejected", "error", err.Error())
			writeError(w, http.StatusUnauthorized, "invalid_token", localize.Text(r, localize.InvalidToken))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithAccountID(r.Context(), accountID)))
	})
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func WithAccountID(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, accountIDKey, accountID)
}

func AccountIDFromContext(ctx context.Context) (string, bool) {
	accountID, ok := ctx.Value(accountIDKey).(string)
	if !ok || accountID == "" {
		return "", false
	}
	return accountID, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
