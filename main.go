package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/aeo-audit/backend/audit"
	"github.com/aeo-audit/backend/crawler"
	"github.com/aeo-audit/backend/fetcher"
	"github.com/aeo-audit/backend/logging"
	"github.com/aeo-audit/backend/middleware"
	"github.com/aeo-audit/backend/scoring"
	"github.com/aeo-audit/backend/stats"
)

var (
	pipeline      *audit.Pipeline
	domainAuditor *audit.DomainAuditor
	jobRegistry   *audit.Registry
	telemetry     *stats.Storage
	rateLimiter   *middleware.RateLimiter
)

func loadEnv() {
	// Try to load .env.development first (for local development)
	if err := godotenv.Load(".env.development"); err != nil {
		// If .env.development doesn't exist, try regular .env
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, using environment variables")
		}
	}
}

func setupGinMode() {
	// Set Gin mode based on environment variable
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		// Default to release mode if not specified
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
}

func fetchTimeout() time.Duration {
	raw := os.Getenv("FETCH_TIMEOUT_SECONDS")
	if raw == "" {
		return 30 * time.Second
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		log.Printf("Invalid FETCH_TIMEOUT_SECONDS %q, using default", raw)
		return 30 * time.Second
	}
	return time.Duration(seconds) * time.Second
}

func main() {
	// Load environment configuration
	loadEnv()

	// Set up Gin mode
	setupGinMode()

	// Initialize services
	profiles, err := scoring.LoadProfiles(os.Getenv("AEO_PROFILES_FILE"))
	if err != nil {
		log.Fatal("Failed to load scoring profiles:", err)
	}
	selector := fetcher.NewSelector(os.Getenv("RENDER_SERVICE_URL"), fetchTimeout())
	pipeline = audit.NewPipeline(selector, scoring.NewCalculator(profiles))
	domainAuditor = audit.NewDomainAuditor(pipeline)
	jobRegistry = audit.NewRegistry()
	rateLimiter = middleware.NewRateLimiter(2, 5) // 2 requests per second, bucket size of 5

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	telemetry, err = stats.NewStorage(dataDir)
	if err != nil {
		log.Fatal("Failed to initialize telemetry storage:", err)
	}

	// Initialize request statistics
	requestStats := logging.Initialize()

	// Initialize Gin router
	r := gin.Default()

	// Add middlewares
	r.Use(middleware.ErrorHandler())
	r.Use(rateLimiter.RateLimit())
	r.Use(middleware.Stats(requestStats))

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// API routes
	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})

		// Audit endpoints
		api.POST("/audit", auditPage)
		api.POST("/audit/domain", auditDomain)

		// Job endpoints
		api.GET("/jobs/:id", getJob)
		api.GET("/jobs/:id/events", streamJobEvents)
		api.GET("/jobs/:id/result", getJobResult)

		// Statistics endpoint
		api.GET("/statistics", func(c *gin.Context) {
			c.JSON(http.StatusOK, requestStats.GetStatistics())
		})
	}

	// Get port from environment variable or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8082" // Default port
	}

	log.Printf("Server starting on http://localhost:%s\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

type auditRequest struct {
	URL     string          `json:"url" binding:"required,url"`
	Options scoring.Options `json:"options"`
}

func auditPage(c *gin.Context) {
	log.Printf("Audit request received from: %s\n", c.ClientIP())
	var request auditRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid URL provided",
		})
		return
	}

	result := pipeline.AuditPage(c.Request.Context(), request.URL, request.Options)
	telemetry.RecordPageAudit(result.Score.OverallScore, result.FetchStrategy, !result.Success)

	c.JSON(http.StatusOK, result)
}

type domainAuditRequest struct {
	Domain   string          `json:"domain" binding:"required,url"`
	MaxPages int             `json:"max_pages"`
	MaxDepth int             `json:"max_depth"`
	Options  scoring.Options `json:"options"`
}

func auditDomain(c *gin.Context) {
	log.Printf("Domain audit request received from: %s\n", c.ClientIP())
	var request domainAuditRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid domain URL provided",
		})
		return
	}

	job, publisher := jobRegistry.Create(request.Domain)

	go runDomainAudit(job.ID, request, publisher)

	c.JSON(http.StatusAccepted, gin.H{
		"job_id": job.ID,
		"status": job.Status,
	})
}

// runDomainAudit drives one asynchronous domain audit: discovery, batched
// page audits with progress forwarding, then completion bookkeeping.
func runDomainAudit(jobID string, request domainAuditRequest, publisher *audit.Publisher) {
	ctx := context.Background()

	events, err := jobRegistry.Subscribe(jobID)
	if err == nil {
		go func() {
			for event := range events {
				jobRegistry.RecordProgress(jobID, event)
			}
		}()
	}

	urls := crawler.New(request.MaxPages, request.MaxDepth).Discover(ctx, request.Domain)
	if len(urls) == 0 {
		jobRegistry.Fail(jobID, "no pages discovered")
		return
	}
	jobRegistry.SetDiscovered(jobID, len(urls))

	result := domainAuditor.AuditDomain(ctx, request.Domain, urls, request.Options, publisher)
	telemetry.RecordDomainAudit(result.PagesAudited, result.PagesSuccessful, result.AverageScore)

	if result.PagesSuccessful == 0 {
		jobRegistry.Fail(jobID, "all page audits failed")
		return
	}
	jobRegistry.Complete(jobID, result)
}

func getJob(c *gin.Context) {
	job, err := jobRegistry.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         job.ID,
		"domain":     job.Domain,
		"status":     job.Status,
		"percentage": job.Percentage,
		"message":    job.Message,
		"error":      job.Error,
		"created_at": job.CreatedAt,
		"updated_at": job.UpdatedAt,
	})
}

func getJobResult(c *gin.Context) {
	job, err := jobRegistry.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	switch job.Status {
	case audit.StatusCompleted:
		c.JSON(http.StatusOK, job.Result)
	case audit.StatusFailed:
		c.JSON(http.StatusOK, gin.H{
			"overall_score": 0,
			"error":         job.Error,
		})
	default:
		c.JSON(http.StatusConflict, gin.H{
			"error":  "Job still running",
			"status": job.Status,
		})
	}
}

// streamJobEvents serves job progress as server-sent events until the job
// finishes or the client disconnects.
func streamJobEvents(c *gin.Context) {
	events, err := jobRegistry.Subscribe(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			payload, err := json.Marshal(event)
			if err != nil {
				return false
			}
			c.SSEvent("progress", string(payload))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
