package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimit caps requests per route with an in-memory sliding window, keyed by
// client IP. State resets on restart; good enough for login/register abuse
// control on a single instance.
func RateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	var (
		mu   sync.Mutex
		seen = map[string][]time.Time{}
	)
	return func(c *gin.Context) {
		now := time.Now()
		key := c.ClientIP()

		mu.Lock()
		stamps := seen[key][:0]
		for _, ts := range seen[key] {
			if now.Sub(ts) < window {
				stamps = append(stamps, ts)
			}
		}
		if len(stamps) >= maxRequests {
			seen[key] = stamps
			mu.Unlock()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, try again later"})
			return
		}
		seen[key] = append(stamps, now)
		mu.Unlock()

		c.Next()
	}
}
