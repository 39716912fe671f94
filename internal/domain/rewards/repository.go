package rewards

import (
	"context"

	"chore-coin-go/internal/domain/ledger"
)

type Repository interface {
	ledger.Appender

	Transaction(ctx context.Context, fn func(Repository) error) error
	ListRewards(ctx context.Context, accountID string) ([]Reward, error)
	GetReward(ctx context.Context, accountID, rewardID string) (*Reward, error)
	CreateReward(ctx context.Context, reward *Reward) error
	UpdateReward(ctx context.Context, reward *Reward) (bool, error)
	DeleteReward(ctx context.Context, accountID, rewardID string) (bool, error)
}
