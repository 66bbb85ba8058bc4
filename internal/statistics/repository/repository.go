// Package repository provides data access layer for statistics module.
package repository

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/team_tasks/internal/statistics/model"
)

// Repository defines the interface for statistics data access operations.
type Repository interface {
	// GetAssigneesStatistics returns the workload of every member of the team.
	GetAssigneesStatistics(ctx context.Context, teamID string) ([]model.AssigneeStatistics, error)

	// GetTaskStatistics summarizes the team's tasks. Tasks not completed
	// with a due date before now count as overdue.
	GetTaskStatistics(ctx context.Context, teamID string, now time.Time) (*model.TaskStatistics, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new statistics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// GetAssigneesStatistics returns statistics for all members of the team,
// including members without tasks.
func (r *repository) GetAssigneesStatistics(ctx context.Context, teamID string) ([]model.AssigneeStatistics, error) {
	r.logger.Debugw("GetAssigneesStatistics called", "team_id", teamID)

	var stats []model.AssigneeStatistics

	err := r.db.WithContext(ctx).
		Table("team_members").
		Select(`
			users.id AS user_id,
			users.username,
			COUNT(tasks.id) AS assigned_count,
			COALESCE(SUM(CASE WHEN tasks.status = 'completed' THEN 1 ELSE 0 END), 0) AS completed_count
		`).
		Joins("JOIN users ON users.id = team_members.user_id").
		Joins("LEFT JOIN tasks ON tasks.assigned_to_id = team_members.user_id AND tasks.team_id = team_members.team_id").
		Where("team_members.team_id = ?", teamID).
		Group("users.id, users.username").
		Order("assigned_count DESC, users.username ASC").
		Scan(&stats).Error

	if err != nil {
		r.logger.Errorw("GetAssigneesStatistics database error", "team_id", teamID, "error", err)
		return nil, err
	}

	if stats == nil {
		stats = []model.AssigneeStatistics{}
	}

	r.logger.Debugw("GetAssigneesStatistics completed", "team_id", teamID, "count", len(stats))
	return stats, nil
}

// GetTaskStatistics returns status, due date and checklist counts for the team.
func (r *repository) GetTaskStatistics(ctx context.Context, teamID string, now time.Time) (*model.TaskStatistics, error) {
	r.logger.Debugw("GetTaskStatistics called", "team_id", teamID)

	var result struct {
		TotalTasks      int64 `gorm:"column:total_tasks"`
		TodoTasks       int64 `gorm:"column:todo_tasks"`
		InProgressTasks int64 `gorm:"column:in_progress_tasks"`
		CompletedTasks  int64 `gorm:"column:completed_tasks"`
		OverdueTasks    int64 `gorm:"column:overdue_tasks"`
		UnassignedTasks int64 `gorm:"column:unassigned_tasks"`
	}

	db := r.db.WithContext(ctx)
	err := db.
		Table("tasks").
		Select(`
			COUNT(*) AS total_tasks,
			COALESCE(SUM(CASE WHEN status = 'todo' THEN 1 ELSE 0 END), 0) AS todo_tasks,
			COALESCE(SUM(CASE WHEN status = 'in-progress' THEN 1 ELSE 0 END), 0) AS in_progress_tasks,
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0) AS completed_tasks,
			COALESCE(SUM(CASE WHEN status <> 'completed' AND due_date IS NOT NULL AND due_date < ? THEN 1 ELSE 0 END), 0) AS overdue_tasks,
			COALESCE(SUM(CASE WHEN assigned_to_id IS NULL THEN 1 ELSE 0 END), 0) AS unassigned_tasks
		`, now).
		Where("team_id = ?", teamID).
		Scan(&result).Error
	if err != nil {
		r.logger.Errorw("GetTaskStatistics database error", "team_id", teamID, "error", err)
		return nil, err
	}

	var subtasks int64
	err = db.
		Table("subtasks").
		Joins("JOIN tasks ON tasks.id = subtasks.task_id").
		Where("tasks.team_id = ?", teamID).
		Count(&subtasks).Error
	if err != nil {
		r.logger.Errorw("GetTaskStatistics database error", "team_id", teamID, "error", err)
		return nil, err
	}

	stats := &model.TaskStatistics{
		TotalTasks:      int(result.TotalTasks),
		TodoTasks:       int(result.TodoTasks),
		InProgressTasks: int(result.InProgressTasks),
		CompletedTasks:  int(result.CompletedTasks),
		OverdueTasks:    int(result.OverdueTasks),
		UnassignedTasks: int(result.UnassignedTasks),
	}
	if stats.TotalTasks > 0 {
		stats.AverageSubtasksPerTask = float64(subtasks) / float64(stats.TotalTasks)
	}

	r.logger.Debugw("GetTaskStatistics completed", "team_id", teamID, "total_tasks", stats.TotalTasks)
	return stats, nil
}
