package model

import (
	"errors"
	"fmt"
)

var (
	// ErrTeamNotFound indicates that the requested team does not exist.
	ErrTeamNotFound = errors.New("team not found")
	// ErrMemberNotFound indicates that the user holds no membership in the team.
	ErrMemberNotFound = errors.New("membership not found")
	// ErrDuplicateMembership indicates that the user already belongs to the team.
	ErrDuplicateMembership = errors.New("user is already a member of the team")
	// ErrLastAdmin indicates that removing the membership would leave the team without an admin.
	ErrLastAdmin = errors.New("team must keep at least one admin")
	// ErrCannotRemoveSelf indicates that an admin tried to remove their own membership.
	ErrCannotRemoveSelf = errors.New("admins cannot remove themselves")
	// ErrUnauthorized matches every *UnauthorizedError with errors.Is.
	ErrUnauthorized = errors.New("unauthorized")
)

// Reason explains why an action was denied.
type Reason string

const (
	// ReasonNotMember means the actor holds no membership in the team.
	ReasonNotMember Reason = "not_member"
	// ReasonNotAdmin means the action requires the admin role.
	ReasonNotAdmin Reason = "not_admin"
)

// UnauthorizedError is returned when the actor is authenticated but not
// allowed to perform the action.
type UnauthorizedError struct {
	Reason Reason
}

// NewUnauthorized creates an UnauthorizedError with reason.
func NewUnauthorized(reason Reason) *UnauthorizedError {
	return &UnauthorizedError{Reason: reason}
}

func (e *UnauthorizedError) Error() string {
	switch e.Reason {
	case ReasonNotMember:
		return "unauthorized: not a member of the team"
	case ReasonNotAdmin:
		return "unauthorized: team admin role required"
	default:
		return fmt.Sprintf("unauthorized: %s", e.Reason)
	}
}

func (e *UnauthorizedError) Unwrap() error { return ErrUnauthorized }
