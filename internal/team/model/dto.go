// Package model provides domain models and DTOs for team module.
package model

import (
	"strings"
	"time"

	"github.com/festy23/team_tasks/pkg/validation"
)

// CreateTeamRequest represents the request to create a team.
type CreateTeamRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// Validate trims and checks the request.
func (r *CreateTeamRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validation.Struct(r)
}

// AddMemberRequest adds an existing user, identified by id or email.
type AddMemberRequest struct {
	UserID string `json:"user_id,omitempty" validate:"required_without=Email"`
	Email  string `json:"email,omitempty"   validate:"omitempty,email"`
	Role   Role   `json:"role,omitempty"    validate:"omitempty,oneof=admin member"`
}

// Validate checks the request and defaults the role to member.
func (r *AddMemberRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if err := validation.Struct(r); err != nil {
		return err
	}
	if r.UserID != "" {
		if err := validation.Var("user_id", r.UserID, "uuid"); err != nil {
			return err
		}
	}
	if r.Role == "" {
		r.Role = RoleMember
	}
	return nil
}

// MemberResponse is a membership joined with the user's public fields.
type MemberResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Role          Role      `json:"role"`
	JoinedAt      time.Time `json:"joined_at"`
	IsCurrentUser bool      `json:"is_current_user"`
}

// TeamResponse represents a team with its members.
type TeamResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	CreatedAt time.Time        `json:"created_at"`
	Members   []MemberResponse `json:"members"`
}

// NewMemberResponse flattens m, marking the row that belongs to actorID.
func NewMemberResponse(m TeamMember, actorID string) MemberResponse {
	resp := MemberResponse{
		ID:            m.ID,
		UserID:        m.UserID,
		Role:          m.Role,
		JoinedAt:      m.CreatedAt,
		IsCurrentUser: m.UserID == actorID,
	}
	if m.User != nil {
		resp.Username = m.User.Username
		resp.Email = m.User.Email
	}
	return resp
}

// NewTeamResponse builds the response for t with its loaded members.
func NewTeamResponse(t Team, actorID string) TeamResponse {
	members := make([]MemberResponse, 0, len(t.Members))
	for _, m := range t.Members {
		members = append(members, NewMemberResponse(m, actorID))
	}
	return TeamResponse{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt, Members: members}
}
