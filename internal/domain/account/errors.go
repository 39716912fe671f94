package account

import (
	"errors"
	"fmt"

	"chore-coin-go/internal/domain/apperr"
)

var (
	ErrAccountNotFound  = fmt.Errorf("account %w", apperr.ErrNotFound)
	ErrPasscodeRequired = fmt.Errorf("passcode required: %w", apperr.ErrForbidden)
	ErrPasscodeMismatch = fmt.Errorf("passcode mismatch: %w", apperr.ErrForbidden)
	ErrPasscodeNotSet   = fmt.Errorf("parent passcode not set: %w", apperr.ErrInvalidOperation)
	ErrTooManyAttempts  = errors.New("too many passcode attempts")
)
