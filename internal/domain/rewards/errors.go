package rewards

import (
	"errors"
	"fmt"

	"chore-coin-go/internal/domain/apperr"
)

var (
	ErrRewardNotFound     = fmt.Errorf("reward %w", apperr.ErrNotFound)
	ErrInsufficientPoints = errors.New("insufficient points")
)

type InsufficientPointsError struct {
	CurrentPoints  int
	RequiredPoints int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points: have %d, need %d", e.CurrentPoints, e.RequiredPoints)
}

func (e *InsufficientPointsError) Unwrap() error {
	return ErrInsufficientPoints
}
