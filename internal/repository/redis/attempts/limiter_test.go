package attempts

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type LimiterSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	limiter *Limiter
	ctx     context.Context
}

func TestLimiterSuite(t *testing.T) {
	suite.Run(t, new(LimiterSuite))
}

func (s *LimiterSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.limiter = NewWithClient(client, Config{MaxAttempts: 3, Window: time.Minute})
	s.ctx = context.Background()
}

func (s *LimiterSuite) TearDownTest() {
	if s.limiter != nil {
		_ = s.limiter.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *LimiterSuite) reserve(accountID string) bool {
	allowed, err := s.limiter.Reserve(s.ctx, accountID)
	s.Require().NoError(err)
	return allowed
}

func (s *LimiterSuite) TestBlocksAfterMaxAttempts() {
	for i := 0; i < 3; i++ {
		s.True(s.reserve("acc-1"), "attempt %d", i)
	}

	s.False(s.reserve("acc-1"))
	s.True(s.reserve("acc-2"), "counters are per account")
}

func (s *LimiterSuite) TestConcurrentReserveNeverOvershoots() {
	var (
		wg      sync.WaitGroup
		granted atomic.Int32
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed, err := s.limiter.Reserve(s.ctx, "acc-1")
			if err == nil && allowed {
				granted.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(3), granted.Load())
}

func (s *LimiterSuite) TestWindowExpires() {
	for i := 0; i < 4; i++ {
		s.reserve("acc-1")
	}
	s.Equal(time.Minute, s.mini.TTL(keyPrefix+"acc-1"))

	s.mini.FastForward(time.Minute + time.Second)

	s.True(s.reserve("acc-1"))
}

func (s *LimiterSuite) TestWindowStartsAtFirstAttempt() {
	s.reserve("acc-1")
	s.mini.FastForward(30 * time.Second)
	s.reserve("acc-1")

	s.Equal(30*time.Second, s.mini.TTL(keyPrefix+"acc-1"))
}

func (s *LimiterSuite) TestResetClearsCounter() {
	for i := 0; i < 4; i++ {
		s.reserve("acc-1")
	}
	s.Require().NoError(s.limiter.Reset(s.ctx, "acc-1"))
	s.False(s.mini.Exists(keyPrefix + "acc-1"))

	s.True(s.reserve("acc-1"))
}

func (s *LimiterSuite) TestRedisUnavailable() {
	s.mini.Close()

	_, err := s.limiter.Reserve(s.ctx, "acc-1")
	s.Error(err)
}
