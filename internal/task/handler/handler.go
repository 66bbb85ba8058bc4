// Package handler provides HTTP handlers for task endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/team_tasks/internal/middleware"
	"github.com/festy23/team_tasks/internal/response"
	taskModel "github.com/festy23/team_tasks/internal/task/model"
	"github.com/festy23/team_tasks/internal/task/service"
)

// Handler handles HTTP requests for task endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new task handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// ListTasks handles GET /tasks request.
// @Summary Tasks of the current user's teams
// @Tags Tasks
// @Produce json
// @Param team_id query string false "Team ID"
// @Param status query string false "Status" Enums(todo, in-progress, completed)
// @Param assigned_to_id query string false "Assignee ID"
// @Success 200 {object} map[string][]taskModel.Task
// @Failure 403 {object} response.ErrorResponse
// @Router /tasks [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListTasks(c *gin.Context) {
	var filter taskModel.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, response.CodeInvalidRequest, "invalid query parameters", http.StatusBadRequest)
		return
	}

	actorID, _ := middleware.ActorID(c)
	tasks, err := h.service.ListTasks(c.Request.Context(), actorID, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// CreateTask handles POST /tasks request.
// @Summary Create a task in one of the current user's teams
// @Tags Tasks
// @Accept json
// @Produce json
// @Param request body taskModel.CreateTaskRequest true "Request"
// @Success 201 {object} map[string]taskModel.Task
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /tasks [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) CreateTask(c *gin.Context) {
	var req taskModel.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c)
		return
	}

	actorID, _ := middleware.ActorID(c)
	task, err := h.service.CreateTask(c.Request.Context(), actorID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": task})
}

// GetTask handles GET /tasks/:id request.
// @Summary Task with subtasks and attachments
// @Tags Tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} map[string]taskModel.Task
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /tasks/{id} [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetTask(c *gin.Context) {
	actorID, _ := middleware.ActorID(c)

	task, err := h.service.GetTask(c.Request.Context(), actorID, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// UpdateTask handles PATCH /tasks/:id request.
// Absent fields are left untouched; assigned_to_id and due_date accept null.
// @Summary Partially update a task
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body taskModel.UpdateTaskRequest true "Request"
// @Success 200 {object} taskModel.UpdateResult
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /tasks/{id} [patch] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) UpdateTask(c *gin.Context) {
	var req taskModel.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c)
		return
	}

	actorID, _ := middleware.ActorID(c)
	result, err := h.service.UpdateTask(c.Request.Context(), actorID, c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteTask handles DELETE /tasks/:id request.
// @Summary Delete a task with its subtasks and attachments
// @Tags Tasks
// @Param id path string true "Task ID"
// @Success 204
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /tasks/{id} [delete] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) DeleteTask(c *gin.Context) {
	actorID, _ := middleware.ActorID(c)

	if err := h.service.DeleteTask(c.Request.Context(), actorID, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetSubtaskCompleted handles PATCH /tasks/:id/subtasks/:subtaskId request.
// @Summary Mark a subtask completed or open
// @Tags Tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param subtaskId path string true "Subtask ID"
// @Param request body taskModel.SetSubtaskRequest true "Request"
// @Success 200 {object} map[string]taskModel.Subtask
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /tasks/{id}/subtasks/{subtaskId} [patch] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) SetSubtaskCompleted(c *gin.Context) {
	var req taskModel.SetSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c)
		return
	}
	if err := req.Validate(); err != nil {
		h.handleError(c, err)
		return
	}

	actorID, _ := middleware.ActorID(c)
	subtask, err := h.service.SetSubtaskCompleted(
		c.Request.Context(), actorID, c.Param("id"), c.Param("subtaskId"), *req.Completed,
	)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subtask": subtask})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	if response.Validation(c, err) {
		return
	}

	var uErr *taskModel.UnauthorizedError
	switch {
	case errors.As(err, &uErr):
		response.Forbidden(c, uErr.Reason == taskModel.ReasonNotAdmin, uErr.Error())
	case errors.Is(err, taskModel.ErrTaskNotFound):
		response.NotFound(c, "task not found")
	case errors.Is(err, taskModel.ErrSubtaskNotFound):
		response.NotFound(c, "subtask not found")
	default:
		h.logger.Errorw("task request failed", "path", c.FullPath(), "error", err)
		response.Internal(c, err)
	}
}
