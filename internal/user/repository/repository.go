// Package repository provides data access layer for user module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/team_tasks/internal/database/dberr"
	"github.com/festy23/team_tasks/internal/user/model"
)

// Repository defines the interface for user data access operations.
type Repository interface {
	// Create inserts a user, reporting ErrEmailTaken or ErrUsernameTaken on conflict.
	Create(ctx context.Context, user *model.User) error

	// GetByID finds user by id.
	GetByID(ctx context.Context, userID string) (*model.User, error)

	// GetByEmail finds user by email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// ExistsByEmail reports whether the email is registered.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByUsername reports whether the username is taken.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new user repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) Create(ctx context.Context, user *model.User) error {
	r.logger.Debugw("Create called", "username", user.Username)

	err := r.db.WithContext(ctx).Create(user).Error
	if err == nil {
		r.logger.Infow("user created", "user_id", user.ID)
		return nil
	}

	if dberr.IsDuplicateKey(err) {
		// The translated error does not name the constraint, so find out which one.
		if taken, lookupErr := r.ExistsByEmail(ctx, user.Email); lookupErr == nil && taken {
			return model.ErrEmailTaken
		}
		return model.ErrUsernameTaken
	}

	r.logger.Errorw("Create database error", "username", user.Username, "error", err)
	return err
}

func (r *repository) GetByID(ctx context.Context, userID string) (*model.User, error) {
	return r.first(ctx, "id = ?", userID)
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *repository) first(ctx context.Context, query string, arg string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrUserNotFound
		}
		r.logger.Errorw("user lookup database error", "query", query, "error", err)
		return nil, err
	}
	return &user, nil
}

func (r *repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *repository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

func (r *repository) exists(ctx context.Context, query string, arg string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where(query, arg).Count(&count).Error
	if err != nil {
		r.logger.Errorw("user existence check failed", "query", query, "error", err)
		return false, err
	}
	return count > 0, nil
}
