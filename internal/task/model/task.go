// Package model provides domain models and DTOs for task module.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	teamModel "github.com/festy23/team_tasks/internal/team/model"
	userModel "github.com/festy23/team_tasks/internal/user/model"
)

// Status is the progress state of a task. Every status may follow every other.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Priority orders tasks by urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Task is a unit of work owned by exactly one team.
// Matches the tasks table schema.
type Task struct {
	ID           string          `gorm:"primaryKey;column:id"                       json:"id"`
	Title        string          `gorm:"column:title;not null"                      json:"title"`
	Content      *string         `gorm:"column:content"                             json:"content"`
	Status       Status          `gorm:"column:status;not null"                     json:"status"`
	Priority     Priority        `gorm:"column:priority;not null"                   json:"priority"`
	TeamID       string          `gorm:"column:team_id;not null;index"              json:"team_id"`
	AssignedToID *string         `gorm:"column:assigned_to_id;index"                json:"assigned_to_id"`
	DueDate      *time.Time      `gorm:"column:due_date"                            json:"due_date"`
	CreatedAt    time.Time       `gorm:"column:created_at"                          json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"                          json:"updated_at"`
	Subtasks     []Subtask       `gorm:"foreignKey:TaskID"                          json:"subtasks"`
	Attachments  []Attachment    `gorm:"foreignKey:TaskID"                          json:"attachments"`
	Team         *teamModel.Team `gorm:"foreignKey:TeamID"                          json:"team,omitempty"`
	AssignedTo   *userModel.User `gorm:"foreignKey:AssignedToID"                    json:"assigned_to,omitempty"`
}

// TableName specifies the table name for GORM.
func (Task) TableName() string {
	return "tasks"
}

// BeforeCreate assigns an id to new tasks.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Subtask is a checklist item whose lifetime is bound to its task.
type Subtask struct {
	ID        string `gorm:"primaryKey;column:id"          json:"id"`
	TaskID    string `gorm:"column:task_id;not null;index" json:"task_id"`
	Title     string `gorm:"column:title;not null"         json:"title"`
	Completed bool   `gorm:"column:completed;not null"     json:"completed"`
}

// TableName specifies the table name for GORM.
func (Subtask) TableName() string {
	return "subtasks"
}

// BeforeCreate assigns an id to new subtasks.
func (s *Subtask) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// Attachment references a file stored elsewhere.
type Attachment struct {
	ID     string `gorm:"primaryKey;column:id"          json:"id"`
	TaskID string `gorm:"column:task_id;not null;index" json:"task_id"`
	Name   string `gorm:"column:name;not null"          json:"name"`
	URL    string `gorm:"column:url;not null"           json:"url"`
}

// TableName specifies the table name for GORM.
func (Attachment) TableName() string {
	return "attachments"
}

// BeforeCreate assigns an id to new attachments.
func (a *Attachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
