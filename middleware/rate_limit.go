package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/SrinathBegudem/LEXSY-WEB-APP/pkg/logger"
	"github.com/gin-gonic/gin"
)

// RateLimiter counts requests per client IP within a fixed window. All
// counters reset together when the window rolls over; a client can at most
// double its rate across one boundary, which is acceptable for an
// abuse guard in front of a chat API.
type RateLimiter struct {
	mu        sync.Mutex
	tokens    map[string]int
	lastReset time.Time
	rate      int
	window    time.Duration
}

// NewRateLimiter creates a limiter allowing rate requests per window.
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:    make(map[string]int),
		lastReset: time.Now(),
		rate:      rate,
		window:    window,
	}
}

// allow records one request for the client and reports whether it is within
// the limit.
func (l *RateLimiter) allow(clientIP string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if time.Since(l.lastReset) > l.window {
		l.tokens = make(map[string]int)
		l.lastReset = time.Now()
	}

	if l.tokens[clientIP] >= l.rate {
		return false
	}
	l.tokens[clientIP]++
	return true
}

// RateLimit rejects clients that exceed rate requests per window with 429.
func RateLimit(rate int, window time.Duration) gin.HandlerFunc {
	limiter := NewRateLimiter(rate, window)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if !limiter.allow(clientIP) {
			logger.Warn(c.Request.Context(), "rate limit exceeded", "client_ip", clientIP)

			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}

		c.Next()
	}
}
