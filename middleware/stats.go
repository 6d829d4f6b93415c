package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aeo-audit/backend/logging"
)

// Stats tracks visitors and audit request timings.
func Stats(stats *logging.Statistics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// Track unique visitor by real IP
		stats.TrackVisitor(c.ClientIP())

		c.Next()

		// Only track audit requests
		if strings.HasPrefix(c.Request.URL.Path, "/api/audit") && c.Request.Method == "POST" {
			auditMs := float64(time.Since(start).Milliseconds())
			stats.TrackAudit(c.Request.URL.String(), auditMs, c.Writer.Status() >= 400)
		}

		// Periodically save statistics
		if stats.GetStatistics()["totalRequests"].(int)%100 == 0 {
			go stats.Save() // Save asynchronously to not block the request
		}
	}
}
