package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/printfleet/supply-service/internal/auth"
	"github.com/printfleet/supply-service/internal/pkg/httputil"
)

// TenantLimiter keeps one token bucket per tenant and evicts buckets that
// have been idle longer than the sweep age, so the map stays bounded.
type TenantLimiter struct {
	mu       sync.Mutex
	limiters map[string]*tenantBucket
	rps      rate.Limit
	burst    int
	maxIdle  time.Duration
}

type tenantBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewTenantLimiter(rps float64, burst int) *TenantLimiter {
	return &TenantLimiter{
		limiters: make(map[string]*tenantBucket),
		rps:      rate.Limit(rps),
		burst:    burst,
		maxIdle:  10 * time.Minute,
	}
}

func (t *TenantLimiter) Allow(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	b, ok := t.limiters[key]
	if !ok {
		b = &tenantBucket{limiter: rate.NewLimiter(t.rps, t.burst)}
		t.limiters[key] = b
	}
	b.lastSeen = time.Now()
	return b.limiter.Allow()
}

// StartSweeper evicts idle buckets until ctx-free stop via the returned func.
func (t *TenantLimiter) StartSweeper(interval time.Duration) (stop func()) {
	done := make(chan struct{})
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				t.sweep()
			}
		}
	}()
	return func() { close(done) }
}

func (t *TenantLimiter) sweep() {
	cutoff := time.Now().Add(-t.maxIdle)
	t.mu.Lock()
	defer t.mu.Unlock()
	for key, b := range t.limiters {
		if b.lastSeen.Before(cutoff) {
			delete(t.limiters, key)
		}
	}
}

func WithRateLimit(limiter *TenantLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(auth.CompanyIDHeader)
		if key == "" {
			key = r.RemoteAddr
		}
		if !limiter.Allow(key) {
			httputil.WriteJSONError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
