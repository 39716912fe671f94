package ledger

import (
	"context"
	"time"

	ledgerdomain "chore-coin-go/internal/domain/ledger"
	"gorm.io/gorm"
)

const lockPrefix = "ledger:"

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *PostgresRepository) WithTx(tx *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: tx}
}

func (r *PostgresRepository) LockAccount(ctx context.Context, accountID string) error {
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", lockPrefix+accountID).
		Error
}

func (r *PostgresRepository) AppendEntry(ctx context.Context, entry *ledgerdomain.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *PostgresRepository) Totals(ctx context.Context, accountID string) (ledgerdomain.Balance, error) {
	var row struct {
		Earned  int `gorm:"column:earned"`
		Claimed int `gorm:"column:claimed"`
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(CASE WHEN type = 'earn' THEN points ELSE 0 END), 0) AS earned,
			COALESCE(SUM(CASE WHEN type = 'claim' THEN points ELSE 0 END), 0) AS claimed
		FROM history
		WHERE user_id = ?`, accountID).
		Scan(&row).Error
	if err != nil {
		return ledgerdomain.Balance{}, err
	}

	return ledgerdomain.Balance{
		Earned:  row.Earned,
		Claimed: row.Claimed,
		Total:   row.Earned - row.Claimed,
	}, nil
}

func (r *PostgresRepository) ListEntries(ctx context.Context, accountID string, filter ledgerdomain.Filter) ([]ledgerdomain.Entry, error) {
	query := r.db.WithContext(ctx).
		Model(&ledgerdomain.Entry{}).
		Where("user_id = ?", accountID)
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at < ?", filter.To.Add(24*time.Hour))
	}

	var entries []ledgerdomain.Entry
	if err := query.Order("created_at desc, id desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
