package health

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/realyassine/SouqFX/config"
)

// Pinger verifies the flat-file store is reachable and writable.
type Pinger interface {
	Ping() error
}

// ProcessorStatus reports the live state of the order processor pool.
type ProcessorStatus interface {
	InFlight() int
	Pending() int
	Closed() bool
}

// Controller serves the health endpoints.
type Controller struct {
	config    *config.Config
	store     Pinger
	processor ProcessorStatus
	startTime time.Time
}

// NewController creates the health controller. Store and processor may
// be nil; their checks are skipped then.
func NewController(cfg *config.Config, store Pinger, processor ProcessorStatus) *Controller {
	return &Controller{
		config:    cfg,
		store:     store,
		processor: processor,
		startTime: time.Now(),
	}
}

// RegisterRoutes registers the health endpoints.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", c.Health)
	router.GET("/health/live", c.Liveness)
	router.GET("/health/ready", c.Readiness)
}

// HealthResponse is the full health report.
type HealthResponse struct {
	Status    string           `json:"status"`
	Version   string           `json:"version"`
	Uptime    string           `json:"uptime"`
	Timestamp string           `json:"timestamp"`
	Checks    map[string]Check `json:"checks,omitempty"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check is one dependency check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo is runtime detail exposed in development only.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumCPU       int    `json:"num_cpu"`
	NumGoroutine int    `json:"num_goroutine"`
	MemAlloc     uint64 `json:"mem_alloc_bytes"`
}

// Health reports the overall state with per-dependency checks.
func (c *Controller) Health(ctx *gin.Context) {
	checks := make(map[string]Check)
	overallStatus := "healthy"

	if c.store != nil {
		storeCheck := c.checkStore()
		checks["store"] = storeCheck
		if storeCheck.Status != "healthy" {
			overallStatus = "unhealthy"
		}
	}

	if c.processor != nil {
		procCheck := c.checkProcessor()
		checks["processor"] = procCheck
		if procCheck.Status != "healthy" {
			overallStatus = "unhealthy"
		}
	}

	response := HealthResponse{
		Status:    overallStatus,
		Version:   c.config.App.Version,
		Uptime:    time.Since(c.startTime).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}

	if c.config.IsDevelopment() {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)
		response.System = &SystemInfo{
			GoVersion:    runtime.Version(),
			NumCPU:       runtime.NumCPU(),
			NumGoroutine: runtime.NumGoroutine(),
			MemAlloc:     memStats.Alloc,
		}
	}

	statusCode := http.StatusOK
	if overallStatus == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	ctx.JSON(statusCode, response)
}

// Liveness answers the liveness probe.
func (c *Controller) Liveness(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

// Readiness answers the readiness probe: the store must be writable
// and the processor accepting orders.
func (c *Controller) Readiness(ctx *gin.Context) {
	if c.store != nil {
		if err := c.store.Ping(); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "not_ready",
				"message": "store not available",
			})
			return
		}
	}

	if c.processor != nil && c.processor.Closed() {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "not_ready",
			"message": "order processor is shut down",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

func (c *Controller) checkStore() Check {
	start := time.Now()
	err := c.store.Ping()
	latency := time.Since(start)

	if err != nil {
		return Check{
			Status:  "unhealthy",
			Message: err.Error(),
			Latency: latency.String(),
		}
	}

	return Check{
		Status:  "healthy",
		Latency: latency.String(),
	}
}

func (c *Controller) checkProcessor() Check {
	if c.processor.Closed() {
		return Check{
			Status:  "unhealthy",
			Message: "order processor is shut down",
		}
	}

	return Check{
		Status:  "healthy",
		Message: fmt.Sprintf("%d in flight, %d queued", c.processor.InFlight(), c.processor.Pending()),
	}
}
