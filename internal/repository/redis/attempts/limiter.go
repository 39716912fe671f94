package attempts

import (
	"context"
	"fmt"
	"time"

	accountdomain "chore-coin-go/internal/domain/account"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "chorecoin:passcode_attempts:"

type Config struct {
	MaxAttempts int
	Window      time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts: 5,
		Window:      15 * time.Minute,
	}
}

// reserveScript increments the counter and starts the window on the first
// attempt in one round trip, so the key never lives without a TTL.
var reserveScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// Limiter counts passcode verifications per account in Redis. The counter
// expires Window after the first attempt and is cleared on success.
type Limiter struct {
	client *redis.Client
	cfg    Config
}

var _ accountdomain.AttemptLimiter = (*Limiter)(nil)

func New(ctx context.Context, opts *redis.Options, cfg Config) (*Limiter, error) {
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewWithClient(client, cfg), nil
}

func NewWithClient(client *redis.Client, cfg Config) *Limiter {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultConfig().MaxAttempts
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultConfig().Window
	}
	return &Limiter{client: client, cfg: cfg}
}

func (l *Limiter) Close() error {
	return l.client.Close()
}

func (l *Limiter) Reserve(ctx context.Context, accountID string) (bool, error) {
	count, err := reserveScript.Run(ctx, l.client, []string{attemptsKey(accountID)}, l.cfg.Window.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return count <= l.cfg.MaxAttempts, nil
}

func (l *Limiter) Reset(ctx context.Context, accountID string) error {
	return l.client.Del(ctx, attemptsKey(accountID)).Err()
}

func attemptsKey(accountID string) string {
	return keyPrefix + accountID
}
