package account

import "context"

// AttemptLimiter counts passcode verifications per account. Reserve counts
// the attempt before the passcode is checked and reports whether it is
// still inside the limit, so concurrent guesses cannot overshoot it. A
// successful verification calls Reset.
type AttemptLimiter interface {
	Reserve(ctx context.Context, accountID string) (bool, error)
	Reset(ctx context.Context, accountID string) error
}

type noopLimiter struct{}

func (noopLimiter) Reserve(context.Context, string) (bool, error) {
	return true, nil
}

func (noopLimiter) Reset(context.Context, string) error {
	return nil
}
