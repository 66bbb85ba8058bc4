// Package service provides business logic layer for team module.
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	teamModel "github.com/festy23/team_tasks/internal/team/model"
	"github.com/festy23/team_tasks/internal/team/repository"
	userModel "github.com/festy23/team_tasks/internal/user/model"
)

// UserLookup resolves the user being added to a team.
type UserLookup interface {
	GetByID(ctx context.Context, userID string) (*userModel.User, error)
	GetByEmail(ctx context.Context, email string) (*userModel.User, error)
}

// Service defines the interface for team business logic operations.
type Service interface {
	// CreateTeam creates a team whose first member is the actor as admin.
	CreateTeam(ctx context.Context, actorID string, req *teamModel.CreateTeamRequest) (*teamModel.TeamResponse, error)

	// ListTeams returns the actor's teams with their members.
	ListTeams(ctx context.Context, actorID string) ([]teamModel.TeamResponse, error)

	// GetMembers returns the members of a team the actor belongs to.
	GetMembers(ctx context.Context, actorID, teamID string) ([]teamModel.MemberResponse, error)

	// AddMember adds an existing user to the team. Admin only.
	AddMember(ctx context.Context, actorID, teamID string, req *teamModel.AddMemberRequest) (*teamModel.MemberResponse, error)

	// RemoveMember deletes a membership of the team. Admin only.
	RemoveMember(ctx context.Context, actorID, teamID, membershipID string) error
}

type service struct {
	repo   repository.Repository
	users  UserLookup
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team service instance.
func New(repo repository.Repository, users UserLookup, db *gorm.DB, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		users:  users,
		db:     db,
		logger: logger,
	}
}

// CreateTeam creates the team and the creator's admin membership in one transaction.
func (s *service) CreateTeam(
	ctx context.Context,
	actorID string,
	req *teamModel.CreateTeamRequest,
) (*teamModel.TeamResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var result *teamModel.TeamResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		team, err := txRepo.Create(ctx, req.Name)
		if err != nil {
			return err
		}
		if _, err := txRepo.AddMember(ctx, team.ID, actorID, teamModel.RoleAdmin); err != nil {
			return err
		}

		members, err := txRepo.GetMembers(ctx, team.ID)
		if err != nil {
			return err
		}
		team.Members = members

		resp := teamModel.NewTeamResponse(*team, actorID)
		result = &resp
		return nil
	})
	if err != nil {
		s.logger.Errorw("CreateTeam failed", "actor_id", actorID, "error", err)
		return nil, err
	}

	s.logger.Infow("team created", "team_id", result.ID, "actor_id", actorID)
	return result, nil
}

func (s *service) ListTeams(ctx context.Context, actorID string) ([]teamModel.TeamResponse, error) {
	teams, err := s.repo.ListForUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	resp := make([]teamModel.TeamResponse, 0, len(teams))
	for _, team := range teams {
		resp = append(resp, teamModel.NewTeamResponse(team, actorID))
	}
	return resp, nil
}

func (s *service) GetMembers(ctx context.Context, actorID, teamID string) ([]teamModel.MemberResponse, error) {
	if _, err := s.repo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}

	isMember, err := s.repo.IsMember(ctx, actorID, teamID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, teamModel.NewUnauthorized(teamModel.ReasonNotMember)
	}

	members, err := s.repo.GetMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}

	resp := make([]teamModel.MemberResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, teamModel.NewMemberResponse(m, actorID))
	}
	return resp, nil
}

func (s *service) AddMember(
	ctx context.Context,
	actorID, teamID string,
	req *teamModel.AddMemberRequest,
) (*teamModel.MemberResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireAdmin(ctx, actorID, teamID); err != nil {
		return nil, err
	}

	var (
		user *userModel.User
		err  error
	)
	if req.UserID != "" {
		user, err = s.users.GetByID(ctx, req.UserID)
	} else {
		user, err = s.users.GetByEmail(ctx, req.Email)
	}
	if err != nil {
		return nil, err
	}

	member, err := s.repo.AddMember(ctx, teamID, user.ID, req.Role)
	if err != nil {
		return nil, err
	}
	member.User = user

	s.logger.Infow("AddMember completed", "team_id", teamID, "user_id", user.ID, "role", req.Role, "actor_id", actorID)
	resp := teamModel.NewMemberResponse(*member, actorID)
	return &resp, nil
}

// RemoveMember refuses self-removal and removing the team's last admin;
// the registry itself enforces neither.
func (s *service) RemoveMember(ctx context.Context, actorID, teamID, membershipID string) error {
	if err := s.requireAdmin(ctx, actorID, teamID); err != nil {
		return err
	}

	member, err := s.repo.GetMember(ctx, membershipID)
	if err != nil {
		return err
	}
	if member.TeamID != teamID {
		return teamModel.ErrMemberNotFound
	}
	if member.UserID == actorID {
		return teamModel.ErrCannotRemoveSelf
	}

	if member.Role == teamModel.RoleAdmin {
		admins, err := s.repo.CountAdmins(ctx, teamID)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return teamModel.ErrLastAdmin
		}
	}

	if err := s.repo.RemoveMember(ctx, membershipID); err != nil {
		return err
	}

	s.logger.Infow("RemoveMember completed", "team_id", teamID, "membership_id", membershipID, "actor_id", actorID)
	return nil
}

// requireAdmin checks that the team exists and the actor administers it.
// Non-members are denied with the same reason as plain members.
func (s *service) requireAdmin(ctx context.Context, actorID, teamID string) error {
	if _, err := s.repo.GetByID(ctx, teamID); err != nil {
		return err
	}

	role, err := s.repo.RoleOf(ctx, actorID, teamID)
	if err != nil && !errors.Is(err, teamModel.ErrMemberNotFound) {
		return err
	}
	if role != teamModel.RoleAdmin {
		return teamModel.NewUnauthorized(teamModel.ReasonNotAdmin)
	}
	return nil
}
