package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CoreHandlers handles health and metrics endpoints
type CoreHandlers struct {
	startedAt time.Time
}

// NewCoreHandlers creates new core handlers
func NewCoreHandlers() *CoreHandlers {
	return &CoreHandlers{startedAt: time.Now()}
}

// Health reports service liveness
// GET /health
func (h *CoreHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(h.startedAt).String(),
	})
}

// Metrics serves prometheus metrics
// GET /metrics
func (h *CoreHandlers) Metrics(c *gin.Context) {
	promhttp.Handler().ServeHTTP(c.Writer, c.Request)
}
