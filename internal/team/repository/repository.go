// Package repository is the membership registry: teams and who belongs to
// them with which role.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/team_tasks/internal/database/dberr"
	teamModel "github.com/festy23/team_tasks/internal/team/model"
)

// Repository defines the interface for team and membership data access.
type Repository interface {
	// IsMember reports whether a membership row exists for (teamID, userID).
	IsMember(ctx context.Context, userID, teamID string) (bool, error)

	// RoleOf returns the user's role in the team or ErrMemberNotFound.
	RoleOf(ctx context.Context, userID, teamID string) (teamModel.Role, error)

	// AddMember creates a membership or returns ErrDuplicateMembership.
	AddMember(ctx context.Context, teamID, userID string, role teamModel.Role) (*teamModel.TeamMember, error)

	// RemoveMember deletes a membership by id. It does not protect the last admin.
	RemoveMember(ctx context.Context, membershipID string) error

	// Create creates a new team.
	Create(ctx context.Context, name string) (*teamModel.Team, error)

	// GetByID finds a team by id.
	GetByID(ctx context.Context, teamID string) (*teamModel.Team, error)

	// ListForUser returns the user's teams with members and their users loaded.
	ListForUser(ctx context.Context, userID string) ([]teamModel.Team, error)

	// GetMembers returns the team's memberships with users loaded, oldest first.
	GetMembers(ctx context.Context, teamID string) ([]teamModel.TeamMember, error)

	// GetMember finds a membership by id.
	GetMember(ctx context.Context, membershipID string) (*teamModel.TeamMember, error)

	// CountAdmins counts admin memberships of the team.
	CountAdmins(ctx context.Context, teamID string) (int64, error)

	// TeamIDsForUser returns the ids of every team the user belongs to.
	TeamIDsForUser(ctx context.Context, userID string) ([]string, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func (r *repository) IsMember(ctx context.Context, userID, teamID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&teamModel.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error
	if dberr.IsInvalidInput(err) {
		return false, nil
	}
	if err != nil {
		r.logger.Errorw("IsMember database error", "team_id", teamID, "user_id", userID, "error", err)
		return false, err
	}
	return count > 0, nil
}

func (r *repository) RoleOf(ctx context.Context, userID, teamID string) (teamModel.Role, error) {
	var member teamModel.TeamMember
	err := r.db.WithContext(ctx).
		Select("role").
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Take(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || dberr.IsInvalidInput(err) {
			return "", teamModel.ErrMemberNotFound
		}
		r.logger.Errorw("RoleOf database error", "team_id", teamID, "user_id", userID, "error", err)
		return "", err
	}
	return member.Role, nil
}

func (r *repository) AddMember(
	ctx context.Context,
	teamID, userID string,
	role teamModel.Role,
) (*teamModel.TeamMember, error) {
	member := &teamModel.TeamMember{
		TeamID: teamID,
		UserID: userID,
		Role:   role,
	}

	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		if dberr.IsDuplicateKey(err) {
			return nil, teamModel.ErrDuplicateMembership
		}
		r.logger.Errorw("AddMember database error", "team_id", teamID, "user_id", userID, "error", err)
		return nil, err
	}

	r.logger.Infow("member added", "team_id", teamID, "user_id", userID, "role", role)
	return member, nil
}

func (r *repository) RemoveMember(ctx context.Context, membershipID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", membershipID).
		Delete(&teamModel.TeamMember{})
	if dberr.IsInvalidInput(result.Error) {
		return teamModel.ErrMemberNotFound
	}
	if result.Error != nil {
		r.logger.Errorw("RemoveMember database error", "membership_id", membershipID, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return teamModel.ErrMemberNotFound
	}

	r.logger.Infow("member removed", "membership_id", membershipID)
	return nil
}

func (r *repository) Create(ctx context.Context, name string) (*teamModel.Team, error) {
	team := &teamModel.Team{Name: name}
	if err := r.db.WithContext(ctx).Create(team).Error; err != nil {
		r.logger.Errorw("Create team database error", "name", name, "error", err)
		return nil, err
	}
	return team, nil
}

func (r *repository) GetByID(ctx context.Context, teamID string) (*teamModel.Team, error) {
	var team teamModel.Team
	err := r.db.WithContext(ctx).Where("id = ?", teamID).First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || dberr.IsInvalidInput(err) {
			return nil, teamModel.ErrTeamNotFound
		}
		r.logger.Errorw("GetByID database error", "team_id", teamID, "error", err)
		return nil, err
	}
	return &team, nil
}

func (r *repository) ListForUser(ctx context.Context, userID string) ([]teamModel.Team, error) {
	var teams []teamModel.Team
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.db.WithContext(ctx).Model(&teamModel.TeamMember{}).Select("team_id").Where("user_id = ?", userID)).
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("team_members.created_at ASC")
		}).
		Preload("Members.User").
		Order("teams.created_at ASC").
		Find(&teams).Error
	if err != nil {
		r.logger.Errorw("ListForUser database error", "user_id", userID, "error", err)
		return nil, err
	}
	if teams == nil {
		teams = []teamModel.Team{}
	}
	return teams, nil
}

func (r *repository) GetMembers(ctx context.Context, teamID string) ([]teamModel.TeamMember, error) {
	var members []teamModel.TeamMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("team_id = ?", teamID).
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		r.logger.Errorw("GetMembers database error", "team_id", teamID, "error", err)
		return nil, err
	}
	if members == nil {
		members = []teamModel.TeamMember{}
	}
	return members, nil
}

func (r *repository) GetMember(ctx context.Context, membershipID string) (*teamModel.TeamMember, error) {
	var member teamModel.TeamMember
	err := r.db.WithContext(ctx).Preload("User").Where("id = ?", membershipID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || dberr.IsInvalidInput(err) {
			return nil, teamModel.ErrMemberNotFound
		}
		r.logger.Errorw("GetMember database error", "membership_id", membershipID, "error", err)
		return nil, err
	}
	return &member, nil
}

func (r *repository) CountAdmins(ctx context.Context, teamID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&teamModel.TeamMember{}).
		Where("team_id = ? AND role = ?", teamID, teamModel.RoleAdmin).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("CountAdmins database error", "team_id", teamID, "error", err)
		return 0, err
	}
	return count, nil
}

func (r *repository) TeamIDsForUser(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&teamModel.TeamMember{}).
		Where("user_id = ?", userID).
		Pluck("team_id", &ids).Error
	if err != nil {
		r.logger.Errorw("TeamIDsForUser database error", "user_id", userID, "error", err)
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
