package inmemory

import (
	"context"
	"sync"
	"time"

	accountdomain "chore-coin-go/internal/domain/account"
)

// AttemptLimiter keeps passcode attempt counts in process memory. It is the
// fallback when no Redis is configured, so counts are per instance and reset
// on restart.
type AttemptLimiter struct {
	mu          sync.Mutex
	items       map[string]attemptsItem
	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

type attemptsItem struct {
	attempts  int
	expiresAt time.Time
}

var _ accountdomain.AttemptLimiter = (*AttemptLimiter)(nil)

func NewAttemptLimiter(maxAttempts int, window time.Duration) *AttemptLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &AttemptLimiter{
		items:       make(map[string]attemptsItem),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}
}

// Reserve counts the attempt and reports whether it is inside the limit. The
// window starts at the first attempt; later attempts do not extend it.
func (l *AttemptLimiter) Reserve(_ context.Context, accountID string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	item, ok := l.items[accountID]
	if !ok || !item.expiresAt.After(now) {
		item = attemptsItem{expiresAt: now.Add(l.window)}
	}
	item.attempts++
	l.items[accountID] = item
	return item.attempts <= l.maxAttempts, nil
}

func (l *AttemptLimiter) Reset(_ context.Context, accountID string) error {
	l.mu.Lock()
	delete(l.items, accountID)
	l.mu.Unlock()
	return nil
}
