// Package handler provides HTTP handlers for team endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/team_tasks/internal/middleware"
	"github.com/festy23/team_tasks/internal/response"
	teamModel "github.com/festy23/team_tasks/internal/team/model"
	"github.com/festy23/team_tasks/internal/team/service"
	userModel "github.com/festy23/team_tasks/internal/user/model"
)

// Handler handles HTTP requests for team endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new team handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// ListTeams handles GET /teams request.
// @Summary Teams of the current user with their members
// @Tags Teams
// @Produce json
// @Success 200 {object} map[string][]teamModel.TeamResponse
// @Router /teams [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListTeams(c *gin.Context) {
	actorID, _ := middleware.ActorID(c)

	teams, err := h.service.ListTeams(c.Request.Context(), actorID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

// CreateTeam handles POST /teams request.
// @Summary Create a team administered by the current user
// @Tags Teams
// @Accept json
// @Produce json
// @Param request body teamModel.CreateTeamRequest true "Request"
// @Success 201 {object} map[string]teamModel.TeamResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /teams [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) CreateTeam(c *gin.Context) {
	var req teamModel.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c)
		return
	}

	actorID, _ := middleware.ActorID(c)
	team, err := h.service.CreateTeam(c.Request.Context(), actorID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"team": team})
}

// GetMembers handles GET /teams/:id/members request.
// @Summary Members of a team
// @Tags Teams
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} map[string][]teamModel.MemberResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /teams/{id}/members [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetMembers(c *gin.Context) {
	actorID, _ := middleware.ActorID(c)

	members, err := h.service.GetMembers(c.Request.Context(), actorID, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}

// AddMember handles POST /teams/:id/members request.
// @Summary Add a user to a team
// @Tags Teams
// @Accept json
// @Produce json
// @Param id path string true "Team ID"
// @Param request body teamModel.AddMemberRequest true "Request"
// @Success 201 {object} map[string]teamModel.MemberResponse
// @Failure 403 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /teams/{id}/members [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) AddMember(c *gin.Context) {
	var req teamModel.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidBody(c)
		return
	}

	actorID, _ := middleware.ActorID(c)
	member, err := h.service.AddMember(c.Request.Context(), actorID, c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"member": member})
}

// RemoveMember handles DELETE /teams/:id/members/:memberId request.
// @Summary Remove a membership
// @Tags Teams
// @Param id path string true "Team ID"
// @Param memberId path string true "Membership ID"
// @Success 204
// @Failure 403 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /teams/{id}/members/{memberId} [delete] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) RemoveMember(c *gin.Context) {
	actorID, _ := middleware.ActorID(c)

	err := h.service.RemoveMember(c.Request.Context(), actorID, c.Param("id"), c.Param("memberId"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	if response.Validation(c, err) {
		return
	}

	var uErr *teamModel.UnauthorizedError
	switch {
	case errors.As(err, &uErr):
		response.Forbidden(c, uErr.Reason == teamModel.ReasonNotAdmin, uErr.Error())
	case errors.Is(err, teamModel.ErrTeamNotFound):
		response.NotFound(c, "team not found")
	case errors.Is(err, teamModel.ErrMemberNotFound):
		response.NotFound(c, "membership not found")
	case errors.Is(err, userModel.ErrUserNotFound):
		response.NotFound(c, "user not found")
	case errors.Is(err, teamModel.ErrDuplicateMembership):
		response.Conflict(c, "ALREADY_MEMBER", err.Error())
	case errors.Is(err, teamModel.ErrLastAdmin):
		response.Conflict(c, "LAST_ADMIN", err.Error())
	case errors.Is(err, teamModel.ErrCannotRemoveSelf):
		response.Conflict(c, "CANNOT_REMOVE_SELF", err.Error())
	default:
		h.logger.Errorw("team request failed", "path", c.FullPath(), "error", err)
		response.Internal(c, err)
	}
}
