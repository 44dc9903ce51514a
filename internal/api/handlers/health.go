package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker probes the transcription service
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler reports the front's own health and the backend's
type HealthHandler struct {
	backend HealthChecker
}

// NewHealthHandler creates a health handler
func NewHealthHandler(backend HealthChecker) *HealthHandler {
	return &HealthHandler{backend: backend}
}

// Health always answers 200; a backend outage is reported, not fatal
func (h *HealthHandler) Health(c *gin.Context) {
	backendStatus := "ok"
	if err := h.backend.HealthCheck(c.Request.Context()); err != nil {
		backendStatus = err.Error()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"backend":   backendStatus,
		"timestamp": time.Now().Unix(),
	})
}
