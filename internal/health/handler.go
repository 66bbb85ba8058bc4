// Package health provides health check endpoint handler.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/team_tasks/internal/database/database"
)

const checkTimeout = 5 * time.Second

// Queue exposes the fill level of the notification outbox.
type Queue interface {
	Pending() int
	Capacity() int
}

// Handler handles health check requests.
type Handler struct {
	db     *gorm.DB
	queue  Queue
	logger *zap.SugaredLogger
}

// New creates a new health handler instance. queue may be nil.
func New(db *gorm.DB, queue Queue, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		db:     db,
		queue:  queue,
		logger: logger,
	}
}

// Response represents health check response.
type Response struct {
	Status      string            `json:"status"`
	Checks      map[string]string `json:"checks"`
	Connections *Connections      `json:"connections,omitempty"`
}

// Connections is a snapshot of the database pool.
type Connections struct {
	Open    int `json:"open"`
	InUse   int `json:"in_use"`
	Idle    int `json:"idle"`
	MaxOpen int `json:"max_open"`
}

// Check handles GET /health request.
// The service is unhealthy only when the database is unreachable; a full
// outbox degrades notifications but not task operations.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	resp := Response{Status: "ok", Checks: map[string]string{"database": "ok"}}

	if h.queue != nil {
		resp.Checks["notification_outbox"] = "ok"
		if h.queue.Pending() >= h.queue.Capacity() {
			resp.Checks["notification_outbox"] = "saturated"
			h.logger.Warnw("notification outbox saturated", "pending", h.queue.Pending())
		}
	}

	if err := database.HealthCheck(ctx, h.db); err != nil {
		h.logger.Warnw("health check failed", "error", err)
		resp.Status = "unhealthy"
		resp.Checks["database"] = "unavailable"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	if stats, err := database.GetStats(h.db); err == nil {
		resp.Connections = &Connections{
			Open:    stats.OpenConnections,
			InUse:   stats.InUse,
			Idle:    stats.Idle,
			MaxOpen: stats.MaxOpenConnections,
		}
	}

	c.JSON(http.StatusOK, resp)
}
