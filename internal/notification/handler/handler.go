// Package handler provides HTTP handlers for notification endpoints.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/team_tasks/internal/middleware"
	notificationModel "github.com/festy23/team_tasks/internal/notification/model"
	"github.com/festy23/team_tasks/internal/response"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// Lister reads a user's notifications.
type Lister interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]notificationModel.Notification, error)
}

// Handler handles HTTP requests for notification endpoints.
type Handler struct {
	notifications Lister
	logger        *zap.SugaredLogger
}

// New creates a new notification handler instance.
func New(notifications Lister, logger *zap.SugaredLogger) *Handler {
	return &Handler{notifications: notifications, logger: logger}
}

type listQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

// List handles GET /notifications request.
// @Summary Notifications of the current user, newest first
// @Tags Notifications
// @Produce json
// @Param limit query int false "Maximum number of notifications"
// @Success 200 {object} map[string][]notificationModel.Notification
// @Router /notifications [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) List(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, response.CodeInvalidRequest, "limit must be a positive integer", http.StatusBadRequest)
		return
	}
	limit := q.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	limit = min(limit, maxLimit)

	actorID, _ := middleware.ActorID(c)
	list, err := h.notifications.ListByUser(c.Request.Context(), actorID, limit)
	if err != nil {
		h.logger.Errorw("notification request failed", "path", c.FullPath(), "error", err)
		response.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": list})
}
