// Package handler provides HTTP handlers for account endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/team_tasks/internal/middleware"
	"github.com/festy23/team_tasks/internal/response"
	"github.com/festy23/team_tasks/internal/user/model"
	"github.com/festy23/team_tasks/internal/user/service"
)

// Handler handles HTTP requests for account endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new user handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register handles POST /auth/register request.
// @Summary Create an account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Request"
// @Success 201 {object} map[string]model.User
// @Failure 400 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /auth/register [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c)
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Login handles POST /auth/login request.
// @Summary Exchange credentials for a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Request"
// @Success 200 {object} model.LoginResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/login [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me handles GET /users/me request.
// @Summary Current user's profile
// @Tags Users
// @Produce json
// @Success 200 {object} map[string]model.User
// @Failure 404 {object} response.ErrorResponse
// @Router /users/me [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Me(c *gin.Context) {
	actorID, _ := middleware.ActorID(c)

	user, err := h.service.GetProfile(c.Request.Context(), actorID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	if response.Validation(c, err) {
		return
	}
	switch {
	case errors.Is(err, model.ErrEmailTaken):
		response.Conflict(c, "EMAIL_TAKEN", "email already registered")
	case errors.Is(err, model.ErrUsernameTaken):
		response.Conflict(c, "USERNAME_TAKEN", "username already taken")
	case errors.Is(err, model.ErrInvalidCredentials):
		response.Error(c, response.CodeUnauthenticated, "invalid email or password", http.StatusUnauthorized)
	case errors.Is(err, model.ErrUserNotFound):
		response.NotFound(c, "user not found")
	default:
		h.logger.Errorw("user request failed", "path", c.FullPath(), "error", err)
		response.Internal(c, err)
	}
}
