package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// readinessTimeout bounds the storage ping so a hung database fails readiness
// instead of stalling it.
const readinessTimeout = 2 * time.Second

// Pinger is what readiness needs from storage. Both the in-memory store and
// the postgres pinger satisfy it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the orchestrator health checks.
type HealthHandler struct {
	storage Pinger
}

func NewHealthHandler(storage Pinger) *HealthHandler {
	return &HealthHandler{storage: storage}
}

// Liveness only says the process answers HTTP.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Readiness reports 503 until storage answers a ping within readinessTimeout.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	start := time.Now()
	err := h.storage.Ping(ctx)
	took := time.Since(start).Milliseconds()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "unavailable",
			"storage":    err.Error(),
			"latency_ms": took,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "storage": "ok", "latency_ms": took})
}
