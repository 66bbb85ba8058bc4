package model

import (
	"strings"
	"time"

	"github.com/festy23/team_tasks/pkg/validation"
)

// AttachmentInput describes an attachment supplied on task creation.
type AttachmentInput struct {
	Name string `json:"name" validate:"required,max=255"`
	URL  string `json:"url"  validate:"required,url"`
}

// CreateTaskRequest represents the request to create a task.
type CreateTaskRequest struct {
	Title        string            `json:"title"                    validate:"required,min=3,max=255"`
	Content      *string           `json:"content,omitempty"`
	Status       Status            `json:"status,omitempty"         validate:"omitempty,oneof=todo in-progress completed"`
	Priority     Priority          `json:"priority,omitempty"       validate:"omitempty,oneof=low medium high"`
	TeamID       string            `json:"team_id"                  validate:"required,uuid"`
	AssignedToID *string           `json:"assigned_to_id,omitempty" validate:"omitempty,uuid"`
	DueDate      *time.Time        `json:"due_date,omitempty"`
	Subtasks     []string          `json:"subtasks,omitempty"       validate:"dive,required,max=255"`
	Attachments  []AttachmentInput `json:"attachments,omitempty"    validate:"dive"`
}

// Validate normalizes the request, checks it and applies defaults.
func (r *CreateTaskRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	for i := range r.Subtasks {
		r.Subtasks[i] = strings.TrimSpace(r.Subtasks[i])
	}
	if r.AssignedToID != nil && *r.AssignedToID == "" {
		r.AssignedToID = nil
	}
	if err := validation.Struct(r); err != nil {
		return err
	}
	if r.Status == "" {
		r.Status = StatusTodo
	}
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	return nil
}

// UpdateTaskRequest is a partial update. Absent fields keep their stored
// value; assigned_to_id and due_date may be sent as null to clear them.
type UpdateTaskRequest struct {
	Title        *string             `json:"title,omitempty"          validate:"omitempty,min=3,max=255"`
	Content      *string             `json:"content,omitempty"`
	Status       *Status             `json:"status,omitempty"         validate:"omitempty,oneof=todo in-progress completed"`
	Priority     *Priority           `json:"priority,omitempty"       validate:"omitempty,oneof=low medium high"`
	TeamID       *string             `json:"team_id,omitempty"        validate:"omitempty,uuid"`
	AssignedToID Nullable[string]    `json:"assigned_to_id,omitzero"  validate:"-"`
	DueDate      Nullable[time.Time] `json:"due_date,omitzero"        validate:"-"`
}

// Validate normalizes and checks the fields that are present.
func (r *UpdateTaskRequest) Validate() error {
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		r.Title = &title
	}
	if id, ok := r.AssignedToID.Get(); ok {
		if id == "" {
			return validation.New("assigned_to_id", "must not be empty; send null to unassign")
		}
		if err := validation.Var("assigned_to_id", id, "uuid"); err != nil {
			return err
		}
	}
	return validation.Struct(r)
}

// Empty reports whether the request carries no field at all.
func (r *UpdateTaskRequest) Empty() bool {
	return r.Title == nil && r.Content == nil && r.Status == nil && r.Priority == nil &&
		r.TeamID == nil && !r.AssignedToID.Present() && !r.DueDate.Present()
}

// SetSubtaskRequest toggles a subtask.
type SetSubtaskRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

// Validate checks the request.
func (r *SetSubtaskRequest) Validate() error {
	return validation.Struct(r)
}

// ListFilter narrows a task listing. Empty fields do not filter.
type ListFilter struct {
	TeamID       string `form:"team_id"`
	Status       Status `form:"status"`
	AssignedToID string `form:"assigned_to_id"`
}

// Validate checks the filter values.
func (f ListFilter) Validate() error {
	if f.TeamID != "" {
		if err := validation.Var("team_id", f.TeamID, "uuid"); err != nil {
			return err
		}
	}
	if f.AssignedToID != "" {
		if err := validation.Var("assigned_to_id", f.AssignedToID, "uuid"); err != nil {
			return err
		}
	}
	if f.Status != "" {
		return validation.Var("status", string(f.Status), "oneof=todo in-progress completed")
	}
	return nil
}

// Query is the store-level form of ListFilter: the team scope is already resolved.
type Query struct {
	TeamIDs      []string
	Status       Status
	AssignedToID string
}

// UpdateResult carries the updated task and whether the assignee changed.
type UpdateResult struct {
	Task              *Task `json:"task"`
	AssignmentChanged bool  `json:"assignment_changed"`
}
