package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves liveness and readiness probes. The readiness check
// pings the storage backend; the in-memory store passes nil and is always
// ready.
type HealthHandler struct {
	ready func(c *gin.Context) error
}

// NewHealthHandler creates a health handler. readyCheck may be nil.
func NewHealthHandler(readyCheck func(c *gin.Context) error) *HealthHandler {
	return &HealthHandler{ready: readyCheck}
}

// Live reports process liveness.
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports storage readiness.
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.ready != nil {
		if err := h.ready(c); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"error":  err.Error(),
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
