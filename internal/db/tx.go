package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sethvargo/go-retry"
	"gorm.io/gorm"
)

const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"

	retryBaseDelay = 20 * time.Millisecond
)

// Transact runs fn in a transaction. When Postgres aborts the transaction
// with a serialization failure or a deadlock, the whole fn is retried up to
// maxRetries times with exponential backoff.
func Transact(ctx context.Context, gormDB *gorm.DB, maxRetries int, fn func(tx *gorm.DB) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}

	backoff := retry.NewExponential(retryBaseDelay)
	backoff = retry.WithJitterPercent(10, backoff)
	backoff = retry.WithMaxRetries(uint64(maxRetries), backoff)

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := gormDB.WithContext(ctx).Transaction(fn)
		if IsRetryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == codeSerializationFailure || pgErr.Code == codeDeadlockDetected
}
