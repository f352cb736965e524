package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler serves liveness checks
type HealthHandler struct {
	appName string
	started time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(appName string) *HealthHandler {
	return &HealthHandler{appName: appName, started: time.Now()}
}

// Health reports service liveness
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": h.appName,
		"uptime":  time.Since(h.started).String(),
	})
}
