// Cartographus - Cell Tower Location Service
// https://github.com/racemap/cell-service

package api

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/racemap/cell-service/internal/metrics"
)

// lookupRateLimit and lookupBurst bound POST /cells/lookup, the only
// route expensive enough (up to 50 keys per call) to warrant limiting.
const (
	lookupRateLimit rate.Limit = 20
	lookupBurst                = 40
)

// LookupLimiter throttles POST /cells/lookup per client IP. Limiters
// are created lazily and kept for the life of the process; this
// service has no notion of client churn large enough to need eviction.
type LookupLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewLookupLimiter builds an empty LookupLimiter.
func NewLookupLimiter() *LookupLimiter {
	return &LookupLimiter{limiters: make(map[string]*rate.Limiter)}
}

func (l *LookupLimiter) limiterFor(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(lookupRateLimit, lookupBurst)
		l.limiters[key] = lim
	}
	return lim
}

// Middleware rejects requests over the per-client rate with 429 and
// records the rejection in APIRateLimitHits.
func (l *LookupLimiter) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)
		if !l.limiterFor(key).Allow() {
			metrics.APIRateLimitHits.WithLabelValues(r.URL.Path).Inc()
			writeError(w, r, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next(w, r)
	}
}

func clientKey(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
