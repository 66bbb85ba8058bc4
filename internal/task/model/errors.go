package model

import (
	"errors"
	"fmt"

	teamModel "github.com/festy23/team_tasks/internal/team/model"
	"github.com/festy23/team_tasks/pkg/validation"
)

var (
	// ErrTaskNotFound indicates that the requested task does not exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrSubtaskNotFound indicates that the subtask does not exist on the task.
	ErrSubtaskNotFound = errors.New("subtask not found")
	// ErrPersistence matches every *PersistenceError with errors.Is.
	ErrPersistence = errors.New("persistence failure")
)

// Authorization and validation failures share their types with the team module
// so that transports map them the same way everywhere.
type (
	UnauthorizedError = teamModel.UnauthorizedError
	Reason            = teamModel.Reason
	ValidationError   = validation.Error
)

const (
	ReasonNotMember = teamModel.ReasonNotMember
	ReasonNotAdmin  = teamModel.ReasonNotAdmin
)

var (
	ErrUnauthorized = teamModel.ErrUnauthorized
	ErrValidation   = validation.ErrInvalid
)

// PersistenceError wraps a storage failure together with the operation that hit it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("task store: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }

// Decision is the outcome of an access check.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Allow permits the action.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny refuses the action for reason.
func Deny(reason Reason) Decision {
	return Decision{Reason: reason}
}

// Err returns nil for allowed decisions and an *UnauthorizedError otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return teamModel.NewUnauthorized(d.Reason)
}
