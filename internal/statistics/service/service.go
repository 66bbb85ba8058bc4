// Package service provides business logic layer for statistics module.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/festy23/team_tasks/internal/statistics/model"
	"github.com/festy23/team_tasks/internal/statistics/repository"
	teamModel "github.com/festy23/team_tasks/internal/team/model"
)

// Teams checks that the team exists and the actor belongs to it.
type Teams interface {
	GetByID(ctx context.Context, teamID string) (*teamModel.Team, error)
	IsMember(ctx context.Context, userID, teamID string) (bool, error)
}

// Service defines the interface for statistics business logic operations.
type Service interface {
	// GetAssigneesStatistics returns the workload of each member of a team the actor belongs to.
	GetAssigneesStatistics(ctx context.Context, actorID, teamID string) (*model.AssigneesStatisticsResponse, error)

	// GetTaskStatistics summarizes the tasks of a team the actor belongs to.
	GetTaskStatistics(ctx context.Context, actorID, teamID string) (*model.TaskStatisticsResponse, error)
}

type service struct {
	repo   repository.Repository
	teams  Teams
	now    func() time.Time
	logger *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(repo repository.Repository, teams Teams, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		teams:  teams,
		now:    time.Now,
		logger: logger,
	}
}

// GetAssigneesStatistics returns statistics for all members of the team.
func (s *service) GetAssigneesStatistics(
	ctx context.Context,
	actorID, teamID string,
) (*model.AssigneesStatisticsResponse, error) {
	s.logger.Debugw("GetAssigneesStatistics called", "team_id", teamID, "actor_id", actorID)

	if err := s.requireMember(ctx, actorID, teamID); err != nil {
		return nil, err
	}

	assignees, err := s.repo.GetAssigneesStatistics(ctx, teamID)
	if err != nil {
		s.logger.Errorw("GetAssigneesStatistics failed", "team_id", teamID, "error", err)
		return nil, err
	}

	if assignees == nil {
		assignees = []model.AssigneeStatistics{}
	}

	return &model.AssigneesStatisticsResponse{
		TeamID:    teamID,
		Assignees: assignees,
		Total:     len(assignees),
	}, nil
}

// GetTaskStatistics returns statistics for the team's tasks.
func (s *service) GetTaskStatistics(ctx context.Context, actorID, teamID string) (*model.TaskStatisticsResponse, error) {
	s.logger.Debugw("GetTaskStatistics called", "team_id", teamID, "actor_id", actorID)

	if err := s.requireMember(ctx, actorID, teamID); err != nil {
		return nil, err
	}

	stats, err := s.repo.GetTaskStatistics(ctx, teamID, s.now().UTC())
	if err != nil {
		s.logger.Errorw("GetTaskStatistics failed", "team_id", teamID, "error", err)
		return nil, err
	}

	return &model.TaskStatisticsResponse{
		TeamID:     teamID,
		Statistics: *stats,
	}, nil
}

func (s *service) requireMember(ctx context.Context, actorID, teamID string) error {
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		return err
	}

	ok, err := s.teams.IsMember(ctx, actorID, teamID)
	if err != nil {
		return err
	}
	if !ok {
		return teamModel.NewUnauthorized(teamModel.ReasonNotMember)
	}
	return nil
}
