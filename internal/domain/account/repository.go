package account

import "context"

type Repository interface {
	GetByID(ctx context.Context, accountID string) (*Account, error)
	GetByGoogleID(ctx context.Context, googleID string) (*Account, error)
	// UpsertIdentity inserts the account or, when google_id already exists,
	// refreshes name and email only.
	UpsertIdentity(ctx context.Context, account *Account) error
	UpdateRole(ctx context.Context, accountID, role string) error
	UpdatePasscodeHash(ctx context.Context, accountID, hash string) error
}
