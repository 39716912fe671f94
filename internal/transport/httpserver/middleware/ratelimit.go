package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"chore-coin-go/internal/transport/httpserver/localize"
	"chore-coin-go/pkg/logger"
	"golang.org/x/time/rate"
)

const (
	maxTrackedClients = 10_000
	clientIdleTTL     = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client address with a token bucket.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	rate    rate.Limit
	burst   int
	log     logger.Logger
	now     func() time.Time
}

func NewRateLimiter(perSecond float64, burst int, log logger.Logger) *RateLimiter {
	if log == nil {
		log = logger.NewNop()
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		rate:    rate.Limit(perSecond),
		burst:   burst,
		log:     log,
		now:     time.Now,
	}
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	client, ok := rl.clients[key]
	if !ok {
		if len(rl.clients) >= maxTrackedClients {
			rl.pruneLocked(now)
		}
		client = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.clients[key] = client
	}
	client.lastSeen = now
	return client.limiter
}

func (rl *RateLimiter) pruneLocked(now time.Time) {
	for key, client := range rl.clients {
		if now.Sub(client.lastSeen) > clientIdleTTL {
			delete(rl.clients, key)
		}
	}
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)
		if !rl.limiterFor(key).AllowN(rl.now(), 1) {
			rl.log.Warn("ratelimit: request throttled", "client", key, "path", r.URL.Path)
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "too_many_requests", localize.Text(r, localize.TooManyRequests))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
