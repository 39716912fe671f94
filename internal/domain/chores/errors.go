package chores

import (
	"fmt"

	"chore-coin-go/internal/domain/apperr"
)

var ErrChoreNotFound = fmt.Errorf("chore %w", apperr.ErrNotFound)
