// Package guard decides whether an actor may view, edit or delete a task.
// Every decision is derived from the actor's membership in the task's team.
package guard

import (
	"context"
	"errors"

	taskModel "github.com/festy23/team_tasks/internal/task/model"
	teamModel "github.com/festy23/team_tasks/internal/team/model"
)

// Memberships is the part of the membership registry the guard consults.
type Memberships interface {
	IsMember(ctx context.Context, userID, teamID string) (bool, error)
	RoleOf(ctx context.Context, userID, teamID string) (teamModel.Role, error)
}

// Guard answers access questions about tasks.
type Guard struct {
	members Memberships
}

// New creates a guard backed by members.
func New(members Memberships) *Guard {
	return &Guard{members: members}
}

// CanAccessTeam allows any member of teamID.
func (g *Guard) CanAccessTeam(ctx context.Context, actorID, teamID string) (taskModel.Decision, error) {
	ok, err := g.members.IsMember(ctx, actorID, teamID)
	if err != nil {
		return taskModel.Decision{}, err
	}
	if !ok {
		return taskModel.Deny(taskModel.ReasonNotMember), nil
	}
	return taskModel.Allow(), nil
}

// CanView allows any member of the task's team.
func (g *Guard) CanView(ctx context.Context, actorID string, task *taskModel.Task) (taskModel.Decision, error) {
	return g.CanAccessTeam(ctx, actorID, task.TeamID)
}

// CanEdit allows any member of the task's team.
func (g *Guard) CanEdit(ctx context.Context, actorID string, task *taskModel.Task) (taskModel.Decision, error) {
	return g.CanAccessTeam(ctx, actorID, task.TeamID)
}

// CanDelete allows only admins of the task's team. Non-members are denied
// as NotMember, members without the admin role as NotAdmin.
func (g *Guard) CanDelete(ctx context.Context, actorID string, task *taskModel.Task) (taskModel.Decision, error) {
	role, err := g.members.RoleOf(ctx, actorID, task.TeamID)
	if err != nil {
		if errors.Is(err, teamModel.ErrMemberNotFound) {
			return taskModel.Deny(taskModel.ReasonNotMember), nil
		}
		return taskModel.Decision{}, err
	}
	if role != teamModel.RoleAdmin {
		return taskModel.Deny(taskModel.ReasonNotAdmin), nil
	}
	return taskModel.Allow(), nil
}
