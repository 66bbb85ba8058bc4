// Package repository is the task store: tasks together with their subtasks
// and attachments.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/team_tasks/internal/database/dberr"
	taskModel "github.com/festy23/team_tasks/internal/task/model"
)

// Repository defines the interface for task data access.
// Storage failures are returned as *taskModel.PersistenceError.
type Repository interface {
	// FindByID returns the task with subtasks, attachments, team and assignee loaded.
	FindByID(ctx context.Context, taskID string) (*taskModel.Task, error)

	// FindMany returns tasks matching q, newest first. An empty team scope yields no tasks.
	FindMany(ctx context.Context, q taskModel.Query) ([]taskModel.Task, error)

	// Create inserts the task and its subtasks and attachments.
	Create(ctx context.Context, task *taskModel.Task) error

	// Update applies column updates to the task.
	Update(ctx context.Context, taskID string, fields map[string]interface{}) error

	// DeleteTree removes subtasks, attachments and the task in one transaction.
	DeleteTree(ctx context.Context, taskID string) error

	// SetSubtaskCompleted toggles a subtask that belongs to the task.
	SetSubtaskCompleted(ctx context.Context, taskID, subtaskID string, completed bool) (*taskModel.Subtask, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new task repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) fail(op string, err error, keysAndValues ...interface{}) error {
	r.logger.Errorw(op+" database error", append(keysAndValues, "error", err)...)
	return &taskModel.PersistenceError{Op: op, Err: err}
}

func (r *repository) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Subtasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("subtasks.id")
		}).
		Preload("Attachments", func(db *gorm.DB) *gorm.DB {
			return db.Order("attachments.id")
		}).
		Preload("Team").
		Preload("AssignedTo")
}

func (r *repository) FindByID(ctx context.Context, taskID string) (*taskModel.Task, error) {
	var task taskModel.Task
	err := r.withRelations(r.db.WithContext(ctx)).
		Where("tasks.id = ?", taskID).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || dberr.IsInvalidInput(err) {
			return nil, taskModel.ErrTaskNotFound
		}
		return nil, r.fail("FindByID", err, "task_id", taskID)
	}
	return &task, nil
}

func (r *repository) FindMany(ctx context.Context, q taskModel.Query) ([]taskModel.Task, error) {
	tasks := []taskModel.Task{}
	if len(q.TeamIDs) == 0 {
		return tasks, nil
	}

	query := r.withRelations(r.db.WithContext(ctx)).Where("tasks.team_id IN ?", q.TeamIDs)
	if q.Status != "" {
		query = query.Where("tasks.status = ?", q.Status)
	}
	if q.AssignedToID != "" {
		query = query.Where("tasks.assigned_to_id = ?", q.AssignedToID)
	}

	if err := query.Order("tasks.created_at DESC").Find(&tasks).Error; err != nil {
		return nil, r.fail("FindMany", err, "teams", len(q.TeamIDs))
	}
	return tasks, nil
}

func (r *repository) Create(ctx context.Context, task *taskModel.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return r.fail("Create", err, "team_id", task.TeamID)
	}

	r.logger.Infow("task created",
		"task_id", task.ID,
		"team_id", task.TeamID,
		"subtasks", len(task.Subtasks),
		"attachments", len(task.Attachments),
	)
	return nil
}

func (r *repository) Update(ctx context.Context, taskID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(&taskModel.Task{}).
		Where("id = ?", taskID).
		Updates(fields)
	if result.Error != nil {
		return r.fail("Update", result.Error, "task_id", taskID)
	}
	if result.RowsAffected == 0 {
		return taskModel.ErrTaskNotFound
	}
	return nil
}

func (r *repository) DeleteTree(ctx context.Context, taskID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&taskModel.Subtask{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", taskID).Delete(&taskModel.Attachment{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", taskID).Delete(&taskModel.Task{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return taskModel.ErrTaskNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, taskModel.ErrTaskNotFound) {
			return err
		}
		return r.fail("DeleteTree", err, "task_id", taskID)
	}

	r.logger.Infow("task deleted", "task_id", taskID)
	return nil
}

func (r *repository) SetSubtaskCompleted(
	ctx context.Context,
	taskID, subtaskID string,
	completed bool,
) (*taskModel.Subtask, error) {
	db := r.db.WithContext(ctx)

	result := db.Model(&taskModel.Subtask{}).
		Where("id = ? AND task_id = ?", subtaskID, taskID).
		Update("completed", completed)
	if dberr.IsInvalidInput(result.Error) {
		return nil, taskModel.ErrSubtaskNotFound
	}
	if result.Error != nil {
		return nil, r.fail("SetSubtaskCompleted", result.Error, "task_id", taskID, "subtask_id", subtaskID)
	}
	if result.RowsAffected == 0 {
		return nil, taskModel.ErrSubtaskNotFound
	}

	var subtask taskModel.Subtask
	if err := db.Where("id = ?", subtaskID).First(&subtask).Error; err != nil {
		return nil, r.fail("SetSubtaskCompleted", err, "task_id", taskID, "subtask_id", subtaskID)
	}
	return &subtask, nil
}
