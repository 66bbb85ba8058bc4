// Package service provides business logic layer for user module.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/festy23/team_tasks/internal/user/model"
	"github.com/festy23/team_tasks/internal/user/repository"
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// Service defines the interface for user business logic operations.
type Service interface {
	// Register creates an account with a bcrypt password hash.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)

	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)

	// GetProfile returns the caller's account.
	GetProfile(ctx context.Context, userID string) (*model.User, error)
}

type service struct {
	repo       repository.Repository
	tokens     TokenIssuer
	logger     *zap.SugaredLogger
	bcryptCost int
}

// New creates a new user service instance.
func New(repo repository.Repository, tokens TokenIssuer, logger *zap.SugaredLogger) Service {
	return &service{repo: repo, tokens: tokens, logger: logger, bcryptCost: bcrypt.DefaultCost}
}

func (s *service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		s.logger.Debugw("Register validation failed", "error", err)
		return nil, err
	}

	taken, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, model.ErrEmailTaken
	}
	taken, err = s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, model.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Infow("Register completed", "user_id", user.ID)
	return user, nil
}

func (s *service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Debugw("Login rejected", "user_id", user.ID)
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Errorw("Login failed to issue token", "user_id", user.ID, "error", err)
		return nil, err
	}

	s.logger.Infow("Login completed", "user_id", user.ID)
	return &model.LoginResponse{Token: token, User: *user}, nil
}

func (s *service) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, model.ErrUserNotFound
	}
	return s.repo.GetByID(ctx, userID)
}
