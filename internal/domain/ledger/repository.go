package ledger

import "context"

type Repository interface {
	Totals(ctx context.Context, accountID string) (Balance, error)
	ListEntries(ctx context.Context, accountID string, filter Filter) ([]Entry, error)
}

// Appender is the write side of the ledger. Chore and reward repositories
// embed it so that ledger appends join their transactions.
type Appender interface {
	// LockAccount serializes ledger-affecting transactions of one account.
	// It must be the first statement of the transaction.
	LockAccount(ctx context.Context, accountID string) error
	AppendEntry(ctx context.Context, entry *Entry) error
	Totals(ctx context.Context, accountID string) (Balance, error)
}
