package rewards

import (
	"context"
	"errors"
	"time"

	appdb "chore-coin-go/internal/db"
	rewardsdomain "chore-coin-go/internal/domain/rewards"
	ledgerrepo "chore-coin-go/internal/repository/postgres/ledger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

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

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(rewardsdomain.Repository) error) error {
	return appdb.Transact(ctx, r.db, r.maxRetries, func(tx *gorm.DB) error {
		return fn(&PostgresRepository{
			PostgresRepository: r.PostgresRepository.WithTx(tx),
			db:                 tx,
			maxRetries:         r.maxRetries,
		})
	})
}

func (r *PostgresRepository) ListRewards(ctx context.Context, accountID string) ([]rewardsdomain.Reward, error) {
	var items []rewardsdomain.Reward
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", accountID).
		Order("points asc, created_at asc, id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetReward(ctx context.Context, accountID, rewardID string) (*rewardsdomain.Reward, error) {
	if uuid.Validate(rewardID) != nil {
		return nil, rewardsdomain.ErrRewardNotFound
	}

	var reward rewardsdomain.Reward
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", rewardID, accountID).
		First(&reward).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, rewardsdomain.ErrRewardNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reward, nil
}

func (r *PostgresRepository) CreateReward(ctx context.Context, reward *rewardsdomain.Reward) error {
	return r.db.WithContext(ctx).Create(reward).Error
}

func (r *PostgresRepository) UpdateReward(ctx context.Context, reward *rewardsdomain.Reward) (bool, error) {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&rewardsdomain.Reward{}).
		Where("id = ? AND user_id = ?", reward.ID, reward.UserID).
		Updates(map[string]any{
			"name":       reward.Name,
			"points":     reward.Points,
			"updated_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	reward.UpdatedAt = now
	return true, nil
}

func (r *PostgresRepository) DeleteReward(ctx context.Context, accountID, rewardID string) (bool, error) {
	if uuid.Validate(rewardID) != nil {
		return false, nil
	}

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", rewardID, accountID).
		Delete(&rewardsdomain.Reward{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
