package middlewares

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	limiters = make(map[string]*limiterEntry)
	mu       sync.Mutex
)

const limiterIdleTTL = 30 * time.Minute

func getLimiter(key string, r rate.Limit, b int) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	entry, exists := limiters[key]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(r, b)}
		limiters[key] = entry
	}
	entry.lastSeen = time.Now()

	// Drop buckets nobody has touched in a while so the map stays bounded.
	for k, e := range limiters {
		if time.Since(e.lastSeen) > limiterIdleTTL {
			delete(limiters, k)
		}
	}

	return entry.limiter
}

func RateLimitMiddleware(r rate.Limit, b int, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFunc(c)
		limiter := getLimiter(key, r, b)

		if !limiter.Allow() {
			c.AbortWithStatusJSON(429, gin.H{"error": "Too many requests. Please slow down :("})
			return
		}

		c.Next()
	}
}
