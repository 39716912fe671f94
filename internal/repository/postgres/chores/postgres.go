package chores

import (
	"context"
	"errors"
	"time"

	appdb "chore-coin-go/internal/db"
	choresdomain "chore-coin-go/internal/domain/chores"
	ledgerrepo "chore-coin-go/internal/repository/postgres/ledger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostgresRepository embeds the ledger repository so that earn entries are
// written through the same transaction as the chore removal.
type PostgresRepository struct {
	*ledgerrepo.PostgresRepository
	db         *gorm.DB
	maxRetries int
}

func NewPostgres(db *gorm.DB, maxRetries int) *PostgresRepository {
	return &PostgresRepository{
		PostgresRepository: ledgerrepo.NewPostgres(db),
		db:                 db,
		maxRetries:         maxRetries,
	}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(choresdomain.Repository) error) error {
	return appdb.Transact(ctx, r.db, r.maxRetries, func(tx *gorm.DB) error {
		return fn(&PostgresRepository{
			PostgresRepository: r.PostgresRepository.WithTx(tx),
			db:                 tx,
			maxRetries:         r.maxRetries,
		})
	})
}

func (r *PostgresRepository) ListChores(ctx context.Context, accountID string) ([]choresdomain.Chore, error) {
	var items []choresdomain.Chore
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", accountID).
		Order("created_at desc, id desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetChore(ctx context.Context, accountID, choreID string) (*choresdomain.Chore, error) {
	if uuid.Validate(choreID) != nil {
		return nil, choresdomain.ErrChoreNotFound
	}

	var chore choresdomain.Chore
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", choreID, accountID).
		First(&chore).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, choresdomain.ErrChoreNotFound
	}
	if err != nil {
		return nil, err
	}
	return &chore, nil
}

func (r *PostgresRepository) CreateChore(ctx context.Context, chore *choresdomain.Chore) error {
	return r.db.WithContext(ctx).Create(chore).Error
}

func (r *PostgresRepository) UpdateChore(ctx context.Context, chore *choresdomain.Chore) (bool, error) {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&choresdomain.Chore{}).
		Where("id = ? AND user_id = ?", chore.ID, chore.UserID).
		Updates(map[string]any{
			"name":       chore.Name,
			"points":     chore.Points,
			"recurring":  chore.Recurring,
			"updated_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	chore.UpdatedAt = now
	return true, nil
}

func (r *PostgresRepository) DeleteChore(ctx context.Context, accountID, choreID string) (bool, error) {
	if uuid.Validate(choreID) != nil {
		return false, nil
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", choreID, accountID).
		Delete(&choresdomain.Chore{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
