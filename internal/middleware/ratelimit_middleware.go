package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/sedirimou/Gameva-sub001/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// keyedLimiter keeps one token bucket per key (client IP or user id).
// Idle buckets are evicted so the map does not grow without bound.
type keyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rps      rate.Limit
	burst    int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const limiterIdleTTL = 10 * time.Minute

func newKeyedLimiter(rps float64, burst int) *keyedLimiter {
	kl := &keyedLimiter{
		limiters: make(map[string]*limiterEntry),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
	go kl.cleanup()
	return kl
}

func (kl *keyedLimiter) allow(key string) bool {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	entry, ok := kl.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(kl.rps, kl.burst)}
		kl.limiters[key] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

func (kl *keyedLimiter) cleanup() {
	for range time.Tick(time.Minute) {
		kl.mu.Lock()
		for key, entry := range kl.limiters {
			if time.Since(entry.lastSeen) > limiterIdleTTL {
				delete(kl.limiters, key)
			}
		}
		kl.mu.Unlock()
	}
}

func tooManyRequests(c *gin.Context) {
	response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED",
		"Too many requests, slow down", nil)
	c.Abort()
}

// RateLimitByIP limits anonymous traffic per client IP.
func RateLimitByIP(rps float64, burst int) gin.HandlerFunc {
	kl := newKeyedLimiter(rps, burst)
	return func(c *gin.Context) {
		if !kl.allow(c.ClientIP()) {
			tooManyRequests(c)
			return
		}
		c.Next()
	}
}

// RateLimitByUser limits per authenticated user, falling back to the
// client IP for guests.
func RateLimitByUser(rps float64, burst int) gin.HandlerFunc {
	kl := newKeyedLimiter(rps, burst)
	return func(c *gin.Context) {
		key := c.GetString("user_id_validated")
		if key == "" {
			key = c.GetString("user_id")
		}
		if key == "" {
			key = c.ClientIP()
		}
		if !kl.allow(key) {
			tooManyRequests(c)
			return
		}
		c.Next()
	}
}
