package handler

import (
	"errors"
	"net/http"

	accountdomain "chore-coin-go/internal/domain/account"
	"chore-coin-go/internal/domain/apperr"
	rewardsdomain "chore-coin-go/internal/domain/rewards"
	"chore-coin-go/internal/transport/httpserver/localize"
)

// writeServiceError maps a domain error to the response envelope and logs it.
// op names the handler in log lines, e.g. "chores.complete".
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error, args ...any) {
	var validation *apperr.ValidationError
	var insufficient *rewardsdomain.InsufficientPointsError

	switch {
	case errors.As(err, &validation):
		h.log.BusinessError(op+": invalid input", err, args...)
		writeInvalidInput(w, r, validation.Field, validation.Message)
	case errors.As(err, &insufficient):
		h.log.BusinessError(op+": insufficient points", err, args...)
		current, required := insufficient.CurrentPoints, insufficient.RequiredPoints
		writeErrorBody(w, http.StatusBadRequest, errorBody{
			Code:           "insufficient_points",
			Message:        localize.Text(r, localize.InsufficientPoints),
			CurrentPoints:  &current,
			RequiredPoints: &required,
		})
	case errors.Is(err, accountdomain.ErrTooManyAttempts):
		h.log.BusinessError(op+": too many attempts", err, args...)
		writeError(w, http.StatusTooManyRequests, "too_many_attempts", localize.Text(r, localize.TooManyAttempts))
	case errors.Is(err, apperr.ErrNotFound):
		h.log.BusinessError(op+": not found", err, args...)
		writeError(w, http.StatusNotFound, "not_found", localize.Text(r, localize.NotFound))
	case errors.Is(err, apperr.ErrForbidden):
		h.log.BusinessError(op+": forbidden", err, args...)
		writeError(w, http.StatusForbidden, "forbidden", localize.Text(r, forbiddenMessage(err)))
	case errors.Is(err, apperr.ErrInvalidOperation):
		h.log.BusinessError(op+": invalid operation", err, args...)
		message := localize.InvalidOperation
		if errors.Is(err, accountdomain.ErrPasscodeNotSet) {
			message = localize.PasscodeNotSet
		}
		writeError(w, http.StatusConflict, "invalid_operation", localize.Text(r, message))
	default:
		h.log.InternalError(op+": failed", err, args...)
		message := localize.Text(r, localize.InternalError)
		if h.exposeDetail {
			message += " (details: " + err.Error() + ")"
		}
		writeError(w, http.StatusInternalServerError, "internal_error", message)
	}
}

func forbiddenMessage(err error) string {
	switch {
	case errors.Is(err, accountdomain.ErrPasscodeRequired):
		return localize.PasscodeRequired
	case errors.Is(err, accountdomain.ErrPasscodeMismatch):
		return localize.PasscodeMismatch
	default:
		return localize.Forbidden
	}
}
