package http

import (
	"net"
	"net/http"
	"sync"

	"github.com/MKhiriev/go-chat-vault/internal/app"
	"github.com/MKhiriev/go-chat-vault/internal/logger"
	"github.com/MKhiriev/go-chat-vault/internal/utils"
	"golang.org/x/time/rate"
)

// maxTrackedClients bounds the limiter registry. When it is exceeded, limiters
// that have refilled completely are dropped.
const maxTrackedClients = 10_000

// rateLimiterRegistry keeps one token bucket per client address.
type rateLimiterRegistry struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter

	limit rate.Limit
	burst int
}

// newRateLimiterRegistry returns nil when limit is not positive, which
// disables limiting.
func newRateLimiterRegistry(limit float64, burst int) *rateLimiterRegistry {
	if limit <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}

	return &rateLimiterRegistry{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(limit),
		burst:    burst,
	}
}

func (r *rateLimiterRegistry) getOrCreate(key string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limiter, ok := r.limiters[key]; ok {
		return limiter
	}

	if len(r.limiters) >= maxTrackedClients {
		r.evictIdle()
	}

	limiter := rate.NewLimiter(r.limit, r.burst)
	r.limiters[key] = limiter
	return limiter
}

// evictIdle must be called with mu held.
func (r *rateLimiterRegistry) evictIdle() {
	for key, limiter := range r.limiters {
		if limiter.Tokens() >= float64(r.burst) {
			delete(r.limiters, key)
		}
	}
}

func (r *rateLimiterRegistry) allow(key string) bool {
	return r.getOrCreate(key).Allow()
}

// rateLimit rejects requests with 429 once the client address has used up
// its register/login budget.
func (h *Handler) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.limiters == nil {
			next.ServeHTTP(w, r)
			return
		}

		client := clientAddress(r)
		if !h.limiters.allow(client) {
			logger.FromRequest(r).Warn().Str("client", client).Str("path", r.URL.Path).Msg(app.MsgTooManyRequests)
			h.metrics.RateLimited(r.URL.Path)
			w.Header().Set("Retry-After", "1")
			utils.WriteError(w, app.MsgTooManyRequests, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientAddress is the host part of the connection's remote address.
// Forwarding headers are ignored since clients control them.
func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
