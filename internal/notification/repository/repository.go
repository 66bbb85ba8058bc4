// Package repository is the notification store. Notifications are only
// appended and read; there is no update or delete.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	notificationModel "github.com/festy23/team_tasks/internal/notification/model"
)

// Repository defines the interface for notification data access.
type Repository interface {
	// Append stores a notification.
	Append(ctx context.Context, n *notificationModel.Notification) error

	// ListByUser returns the user's notifications, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]notificationModel.Notification, error)

	// CountByTask counts notifications that reference the task.
	CountByTask(ctx context.Context, taskID string) (int64, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new notification repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) Append(ctx context.Context, n *notificationModel.Notification) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		r.logger.Errorw("Append notification database error", "user_id", n.UserID, "task_id", n.TaskID, "error", err)
		return err
	}

	r.logger.Debugw("notification appended", "id", n.ID, "type", n.Type, "user_id", n.UserID, "task_id", n.TaskID)
	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID string, limit int) ([]notificationModel.Notification, error) {
	notifications := []notificationModel.Notification{}
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&notifications).Error; err != nil {
		r.logger.Errorw("ListByUser database error", "user_id", userID, "error", err)
		return nil, err
	}
	return notifications, nil
}

func (r *repository) CountByTask(ctx context.Context, taskID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&notificationModel.Notification{}).
		Where("task_id = ?", taskID).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("CountByTask database error", "task_id", taskID, "error", err)
		return 0, err
	}
	return count, nil
}
