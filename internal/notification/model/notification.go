// Package model provides domain models for notification module.
package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Type classifies a notification.
type Type string

// TypeTaskAssigned is recorded when a task gets a new assignee.
const TypeTaskAssigned Type = "task_assigned"

// ErrInvalidAssignment indicates an assignment without assignee or task.
var ErrInvalidAssignment = errors.New("assignment requires task and assignee")

// Notification is an append-only record addressed to one user.
// TaskID is not a foreign key: the notification outlives the task.
type Notification struct {
	ID        string    `gorm:"primaryKey;column:id"          json:"id"`
	Type      Type      `gorm:"column:type;not null"          json:"type"`
	Message   string    `gorm:"column:message;not null"       json:"message"`
	UserID    string    `gorm:"column:user_id;not null;index" json:"user_id"`
	TaskID    string    `gorm:"column:task_id;not null;index" json:"task_id"`
	CreatedAt time.Time `gorm:"column:created_at"             json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Notification) TableName() string {
	return "notifications"
}

// BeforeCreate assigns an id to new notifications.
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// Assignment describes a task that has just been given to AssigneeID.
type Assignment struct {
	TaskID     string
	TaskTitle  string
	TeamID     string
	AssigneeID string
}

// Validate checks that the assignment addresses a task and a user.
func (a Assignment) Validate() error {
	if a.TaskID == "" || a.AssigneeID == "" {
		return ErrInvalidAssignment
	}
	return nil
}

// AssignedMessage renders the text of a task_assigned notification.
// Title and team name are embedded verbatim, without escaping.
func AssignedMessage(taskTitle, teamName string) string {
	return fmt.Sprintf("You have been assigned to task \"%s\" in team \"%s\"", taskTitle, teamName)
}

// NewTaskAssigned builds the notification for a.
func NewTaskAssigned(a Assignment, teamName string) *Notification {
	return &Notification{
		Type:    TypeTaskAssigned,
		Message: AssignedMessage(a.TaskTitle, teamName),
		UserID:  a.AssigneeID,
		TaskID:  a.TaskID,
	}
}
