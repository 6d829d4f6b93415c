package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// domainAuditCost makes a domain audit consume several tokens at once, since
// one request fans out into many page fetches.
const domainAuditCost = 3

type RateLimiter struct {
	tokens         map[string]float64
	lastRefill     map[string]time.Time
	mu             sync.Mutex
	rate           float64 // tokens per second
	bucketSize     float64 // maximum tokens
	refillInterval time.Duration
}

func NewRateLimiter(rate float64, bucketSize float64) *RateLimiter {
	return &RateLimiter{
		tokens:         make(map[string]float64),
		lastRefill:     make(map[string]time.Time),
		rate:           rate,
		bucketSize:     bucketSize,
		refillInterval: time.Second,
	}
}

// requestCost weighs endpoints by how much work they trigger.
func requestCost(path string) float64 {
	if strings.HasPrefix(path, "/api/audit/domain") {
		return domainAuditCost
	}
	return 1
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		cost := requestCost(c.Request.URL.Path)

		rl.mu.Lock()
		now := time.Now()

		// Drop state for clients idle longer than ten minutes
		if len(rl.lastRefill) > 1000 {
			for addr, last := range rl.lastRefill {
				if now.Sub(last) > 10*time.Minute {
					delete(rl.lastRefill, addr)
					delete(rl.tokens, addr)
				}
			}
		}

		// Initialize if first request
		if _, exists := rl.lastRefill[ip]; !exists {
			rl.tokens[ip] = rl.bucketSize
			rl.lastRefill[ip] = now
		}

		// Refill tokens based on time elapsed
		elapsed := now.Sub(rl.lastRefill[ip])
		newTokens := float64(elapsed) / float64(rl.refillInterval) * rl.rate
		rl.tokens[ip] = min(rl.bucketSize, rl.tokens[ip]+newTokens)
		rl.lastRefill[ip] = now

		// Check if we have enough tokens for this endpoint
		if rl.tokens[ip] < cost {
			rl.mu.Unlock()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}

		rl.tokens[ip] -= cost
		rl.mu.Unlock()

		c.Next()
	}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
