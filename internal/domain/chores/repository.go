package chores

import (
	"context"

	"chore-coin-go/internal/domain/ledger"
)

type Repository interface {
	ledger.Appender

	Transaction(ctx context.Context, fn func(Repository) error) error
	ListChores(ctx context.Context, accountID string) ([]Chore, error)
	GetChore(ctx context.Context, accountID, choreID string) (*Chore, error)
	CreateChore(ctx context.Context, chore *Chore) error
	UpdateChore(ctx context.Context, chore *Chore) (bool, error)
	DeleteChore(ctx context.Context, accountID, choreID string) (bool, error)
}
