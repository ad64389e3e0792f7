package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vietlaw/trafficqa"
)

// Build information - can be set at build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	GoVersion = runtime.Version()
)

// HealthHandler handles health check requests
type HealthHandler struct {
	client *trafficqa.Client
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(client *trafficqa.Client) *HealthHandler {
	return &HealthHandler{client: client}
}

// HealthCheck handles GET /health - basic liveness check plus graph counts
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	response := gin.H{
		"status":    "healthy",
		"service":   "trafficqa",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
	}

	if h.client != nil {
		stats := h.client.Stats()
		response["graph"] = gin.H{
			"nodes": stats.TotalNodes,
			"edges": stats.TotalEdges,
		}
	} else {
		response["status"] = "unhealthy"
		response["error"] = "qa client not initialized"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}

	c.JSON(http.StatusOK, response)
}

// LivenessCheck handles GET /live - Kubernetes liveness probe endpoint
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"service":   "trafficqa",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
