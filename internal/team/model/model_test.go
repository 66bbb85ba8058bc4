package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userModel "github.com/festy23/team_tasks/internal/user/model"
	"github.com/festy23/team_tasks/pkg/validation"
)

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleMember.Valid())
	assert.False(t, Role("owner").Valid())
	assert.False(t, Role("").Valid())
}

func TestUnauthorizedError(t *testing.T) {
	var err error = NewUnauthorized(ReasonNotAdmin)

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "unauthorized: team admin role required", err.Error())

	var uErr *UnauthorizedError
	require.True(t, errors.As(err, &uErr))
	assert.Equal(t, ReasonNotAdmin, uErr.Reason)
}

func TestCreateTeamRequest_Validate(t *testing.T) {
	req := &CreateTeamRequest{Name: "  Platform  "}
	require.NoError(t, req.Validate())
	assert.Equal(t, "Platform", req.Name)

	err := (&CreateTeamRequest{Name: "   "}).Validate()
	var vErr *validation.Error
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "name", vErr.Field)
}

func TestAddMemberRequest_Validate(t *testing.T) {
	t.Run("defaults role", func(t *testing.T) {
		req := &AddMemberRequest{UserID: "7c9e6679-7425-40de-944b-e07fc1f90ae7"}
		require.NoError(t, req.Validate())
		assert.Equal(t, RoleMember, req.Role)
	})

	t.Run("email identifies user", func(t *testing.T) {
		req := &AddMemberRequest{Email: " Bob@Example.com", Role: RoleAdmin}
		require.NoError(t, req.Validate())
		assert.Equal(t, "bob@example.com", req.Email)
		assert.Equal(t, RoleAdmin, req.Role)
	})

	t.Run("needs a user", func(t *testing.T) {
		err := (&AddMemberRequest{}).Validate()
		var vErr *validation.Error
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "user_id", vErr.Field)
	})

	t.Run("malformed user id", func(t *testing.T) {
		err := (&AddMemberRequest{UserID: "bob"}).Validate()
		var vErr *validation.Error
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "user_id", vErr.Field)
	})

	t.Run("unknown role", func(t *testing.T) {
		err := (&AddMemberRequest{UserID: "7c9e6679-7425-40de-944b-e07fc1f90ae7", Role: "owner"}).Validate()
		var vErr *validation.Error
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "role", vErr.Field)
	})
}

func TestNewTeamResponse_FlagsCurrentUser(t *testing.T) {
	joined := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	team := Team{
		ID:   "t1",
		Name: "Platform",
		Members: []TeamMember{
			{ID: "m1", UserID: "u1", Role: RoleAdmin, CreatedAt: joined, User: &userModel.User{Username: "alice", Email: "alice@example.com"}},
			{ID: "m2", UserID: "u2", Role: RoleMember},
		},
	}

	resp := NewTeamResponse(team, "u2")

	require.Len(t, resp.Members, 2)
	assert.False(t, resp.Members[0].IsCurrentUser)
	assert.Equal(t, "alice", resp.Members[0].Username)
	assert.Equal(t, joined, resp.Members[0].JoinedAt)
	assert.True(t, resp.Members[1].IsCurrentUser)
	assert.Empty(t, resp.Members[1].Username)
}

func TestBeforeCreate_AssignsIDs(t *testing.T) {
	team := &Team{}
	require.NoError(t, team.BeforeCreate(nil))
	assert.NotEmpty(t, team.ID)

	member := &TeamMember{ID: "keep"}
	require.NoError(t, member.BeforeCreate(nil))
	assert.Equal(t, "keep", member.ID)
}
