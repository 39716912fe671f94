package account

import (
	"context"
	"errors"
	"time"

	accountdomain "chore-coin-go/internal/domain/account"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, accountID string) (*accountdomain.Account, error) {
	if uuid.Validate(accountID) != nil {
		return nil, accountdomain.ErrAccountNotFound
	}
	return r.first(ctx, "id = ?", accountID)
}

func (r *PostgresRepository) GetByGoogleID(ctx context.Context, googleID string) (*accountdomain.Account, error) {
	return r.first(ctx, "google_id = ?", googleID)
}

func (r *PostgresRepository) first(ctx context.Context, query string, arg string) (*accountdomain.Account, error) {
	var acc accountdomain.Account
	err := r.db.WithContext(ctx).Where(query, arg).First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, accountdomain.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *PostgresRepository) UpsertIdentity(ctx context.Context, acc *accountdomain.Account) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "google_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":       acc.Name,
				"email":      acc.Email,
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(acc).Error
}

func (r *PostgresRepository) UpdateRole(ctx context.Context, accountID, role string) error {
	return r.update(ctx, accountID, map[string]any{"user_type": role})
}

func (r *PostgresRepository) UpdatePasscodeHash(ctx context.Context, accountID, hash string) error {
	return r.update(ctx, accountID, map[string]any{"parent_passcode_hash": hash})
}

func (r *PostgresRepository) update(ctx context.Context, accountID string, values map[string]any) error {
	values["updated_at"] = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&accountdomain.Account{}).
		Where("id = ?", accountID).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return accountdomain.ErrAccountNotFound
	}
	return nil
}
