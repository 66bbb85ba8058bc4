// Package handler provides HTTP handlers for statistics endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/team_tasks/internal/middleware"
	"github.com/festy23/team_tasks/internal/response"
	"github.com/festy23/team_tasks/internal/statistics/model"
	"github.com/festy23/team_tasks/internal/statistics/service"
	teamModel "github.com/festy23/team_tasks/internal/team/model"
)

// Handler handles HTTP requests for statistics endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new statistics handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetAssigneesStatistics handles GET /statistics/assignees request.
// @Summary Get task workload per member of a team
// @Tags Statistics
// @Produce json
// @Param team_id query string true "Team ID"
// @Success 200 {object} model.AssigneesStatisticsResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /statistics/assignees [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetAssigneesStatistics(c *gin.Context) {
	var q model.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, response.CodeInvalidRequest, "team_id is required", http.StatusBadRequest)
		return
	}

	actorID, _ := middleware.ActorID(c)
	resp, err := h.service.GetAssigneesStatistics(c.Request.Context(), actorID, q.TeamID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTaskStatistics handles GET /statistics/tasks request.
// @Summary Get task statistics of a team
// @Tags Statistics
// @Produce json
// @Param team_id query string true "Team ID"
// @Success 200 {object} model.TaskStatisticsResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /statistics/tasks [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetTaskStatistics(c *gin.Context) {
	var q model.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, response.CodeInvalidRequest, "team_id is required", http.StatusBadRequest)
		return
	}

	actorID, _ := middleware.ActorID(c)
	resp, err := h.service.GetTaskStatistics(c.Request.Context(), actorID, q.TeamID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var uErr *teamModel.UnauthorizedError
	switch {
	case errors.As(err, &uErr):
		response.Forbidden(c, false, uErr.Error())
	case errors.Is(err, teamModel.ErrTeamNotFound):
		response.NotFound(c, "team not found")
	default:
		h.logger.Errorw("error getting statistics", "path", c.FullPath(), "error", err)
		response.Internal(c, err)
	}
}
