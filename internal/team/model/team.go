package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "github.com/festy23/team_tasks/internal/user/model"
)

// Role is a member's permission level within one team.
type Role string

const (
	// RoleAdmin may manage members and delete tasks.
	RoleAdmin Role = "admin"
	// RoleMember may view, create and edit tasks.
	RoleMember Role = "member"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// Team represents a team entity in the system.
// Matches the teams table schema.
type Team struct {
	ID        string       `gorm:"primaryKey;column:id"     json:"id"`
	Name      string       `gorm:"column:name;not null"     json:"name"`
	CreatedAt time.Time    `gorm:"column:created_at"        json:"created_at"`
	UpdatedAt time.Time    `gorm:"column:updated_at"        json:"-"`
	Members   []TeamMember `gorm:"foreignKey:TeamID"        json:"-"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// BeforeCreate assigns an id to new teams.
func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TeamMember links a user to a team with a role. At most one row exists
// per (team, user).
type TeamMember struct {
	ID        string          `gorm:"primaryKey;column:id"                                            json:"id"`
	TeamID    string          `gorm:"column:team_id;not null;uniqueIndex:uq_team_members_team_user"  json:"team_id"`
	UserID    string          `gorm:"column:user_id;not null;uniqueIndex:uq_team_members_team_user"  json:"user_id"`
	Role      Role            `gorm:"column:role;not null;default:member"                             json:"role"`
	CreatedAt time.Time       `gorm:"column:created_at"                                               json:"created_at"`
	User      *userModel.User `gorm:"foreignKey:UserID"                                               json:"-"`
}

// TableName specifies the table name for GORM.
func (TeamMember) TableName() string {
	return "team_members"
}

// BeforeCreate assigns an id to new memberships.
func (m *TeamMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
