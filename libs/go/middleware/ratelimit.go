package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/cyphera/cyphera-tax/libs/go/logger"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter limits requests per client with one token bucket per client IP.
type RateLimiter struct {
	// limiters stores *limiterEntry keyed by client identifier
	limiters sync.Map
	// rate is the number of requests per second allowed
	rate int
	// burst is the maximum burst size
	burst int
	// idleTimeout is how long an unused limiter is kept
	idleTimeout time.Duration
}

type limiterEntry struct {
	limiter *rate.Limiter

	mu         sync.Mutex
	lastAccess time.Time
}

func (e *limiterEntry) touch(now time.Time) {
	e.mu.Lock()
	e.lastAccess = now
	e.mu.Unlock()
}

func (e *limiterEntry) idleSince(now time.Time) time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return now.Sub(e.lastAccess)
}

// NewRateLimiter creates a new rate limiter with the specified rate and burst
func NewRateLimiter(requestsPerSecond, burst int) *RateLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	if burst < requestsPerSecond {
		burst = requestsPerSecond
	}
	return &RateLimiter{
		rate:        requestsPerSecond,
		burst:       burst,
		idleTimeout: 10 * time.Minute,
	}
}

// StartCleanup evicts idle limiters every interval until ctx is done.
func (rl *RateLimiter) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				rl.evictIdle(now)
			}
		}
	}()
}

func (rl *RateLimiter) evictIdle(now time.Time) int {
	removed := 0
	rl.limiters.Range(func(key, value interface{}) bool {
		if entry, ok := value.(*limiterEntry); ok && entry.idleSince(now) > rl.idleTimeout {
			rl.limiters.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	now := time.Now()
	if val, ok := rl.limiters.Load(key); ok {
		entry := val.(*limiterEntry)
		entry.touch(now)
		return entry.limiter
	}

	entry := &limiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(rl.rate), rl.burst),
		lastAccess: now,
	}
	actual, _ := rl.limiters.LoadOrStore(key, entry)
	return actual.(*limiterEntry).limiter
}

func getClientIdentifier(c *gin.Context) string {
	if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
		return "ip:" + forwardedFor
	}
	clientIP := c.ClientIP()
	if clientIP == "" {
		clientIP = "unknown"
	}
	return "ip:" + clientIP
}

// Middleware returns a Gin middleware handler for rate limiting. Health
// checks are never limited.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	limit := strconv.Itoa(rl.rate)
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		clientID := getClientIdentifier(c)
		limiter := rl.getLimiter(clientID)
		reset := strconv.FormatInt(time.Now().Add(time.Second).Unix(), 10)

		if !limiter.Allow() {
			logger.NewStructuredLogger(logger.ComponentMiddleware).
				WithCorrelationID(GetCorrelationID(c)).
				WithFields(map[string]interface{}{
					"client_id": clientID,
					"path":      c.Request.URL.Path,
					"method":    c.Request.Method,
				}).
				Warn("Rate limit exceeded")

			c.Header("X-RateLimit-Limit", limit)
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", reset)
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests. Please try again later.",
				"retry_after": 1,
			})
			return
		}

		remaining := int(limiter.Tokens())
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", reset)

		c.Next()
	}
}
