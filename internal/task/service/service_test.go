package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/team_tasks/internal/database/dbtest"
	notificationModel "github.com/festy23/team_tasks/internal/notification/model"
	"github.com/festy23/team_tasks/internal/notification/notifier"
	notificationRepository "github.com/festy23/team_tasks/internal/notification/repository"
	taskModel "github.com/festy23/team_tasks/internal/task/model"
	"github.com/festy23/team_tasks/internal/task/repository"
	teamModel "github.com/festy23/team_tasks/internal/team/model"
	teamRepository "github.com/festy23/team_tasks/internal/team/repository"
	userModel "github.com/festy23/team_tasks/internal/user/model"
)

type fixture struct {
	db            *gorm.DB
	svc           Service
	teams         teamRepository.Repository
	notifications notificationRepository.Repository

	alice, bob, carol *userModel.User
	platform, mobile  *teamModel.Team
}

// setupFixture builds Platform (alice admin, bob member) and Mobile
// (alice admin, carol member). Notifications are written synchronously.
func setupFixture(t *testing.T) *fixture {
	db := dbtest.Open(t,
		&userModel.User{}, &teamModel.Team{}, &teamModel.TeamMember{},
		&taskModel.Task{}, &taskModel.Subtask{}, &taskModel.Attachment{},
		&notificationModel.Notification{},
	)
	logger := zap.NewNop().Sugar()
	ctx := context.Background()

	f := &fixture{
		db:            db,
		teams:         teamRepository.New(db, logger),
		notifications: notificationRepository.New(db, logger),
	}
	f.svc = New(
		repository.New(db, logger),
		f.teams,
		notifier.New(f.teams, f.notifications, nil, logger),
		logger,
	)

	users := make([]*userModel.User, 0, 3)
	for _, name := range []string{"alice", "bob", "carol"} {
		u := &userModel.User{Username: name, Email: name + "@example.com", PasswordHash: "h"}
		require.NoError(t, db.Create(u).Error)
		users = append(users, u)
	}
	f.alice, f.bob, f.carol = users[0], users[1], users[2]

	var err error
	f.platform, err = f.teams.Create(ctx, "Platform")
	require.NoError(t, err)
	f.mobile, err = f.teams.Create(ctx, "Mobile")
	require.NoError(t, err)

	for _, m := range []struct {
		team *teamModel.Team
		user *userModel.User
		role teamModel.Role
	}{
		{f.platform, f.alice, teamModel.RoleAdmin},
		{f.platform, f.bob, teamModel.RoleMember},
		{f.mobile, f.alice, teamModel.RoleAdmin},
		{f.mobile, f.carol, teamModel.RoleMember},
	} {
		_, err := f.teams.AddMember(ctx, m.team.ID, m.user.ID, m.role)
		require.NoError(t, err)
	}
	return f
}

func (f *fixture) createTask(t *testing.T, actor *userModel.User, req taskModel.CreateTaskRequest) *taskModel.Task {
	task, err := f.svc.CreateTask(context.Background(), actor.ID, &req)
	require.NoError(t, err)
	return task
}

func (f *fixture) notificationsFor(t *testing.T, user *userModel.User) []notificationModel.Notification {
	list, err := f.notifications.ListByUser(context.Background(), user.ID, 0)
	require.NoError(t, err)
	return list
}

func requireUnauthorized(t *testing.T, err error, reason taskModel.Reason) {
	t.Helper()
	require.ErrorIs(t, err, taskModel.ErrUnauthorized)
	var uErr *taskModel.UnauthorizedError
	require.True(t, errors.As(err, &uErr))
	assert.Equal(t, reason, uErr.Reason)
}

func requireValidation(t *testing.T, err error, field string) {
	t.Helper()
	require.ErrorIs(t, err, taskModel.ErrValidation)
	var vErr *taskModel.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, field, vErr.Field)
}

func strPtr(s string) *string { return &s }

func TestService_CreateTask(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	t.Run("member creates with defaults and children", func(t *testing.T) {
		task := f.createTask(t, f.bob, taskModel.CreateTaskRequest{
			Title:       "Write docs",
			TeamID:      f.platform.ID,
			Subtasks:    []string{"outline", "draft"},
			Attachments: []taskModel.AttachmentInput{{Name: "brief", URL: "https://example.com/brief.pdf"}},
		})

		assert.Equal(t, taskModel.StatusTodo, task.Status)
		assert.Equal(t, taskModel.PriorityMedium, task.Priority)
		assert.Nil(t, task.AssignedToID)
		require.Len(t, task.Subtasks, 2)
		for _, s := range task.Subtasks {
			assert.False(t, s.Completed)
		}
		require.Len(t, task.Attachments, 1)
		assert.Equal(t, "brief", task.Attachments[0].Name)
		require.NotNil(t, task.Team)
		assert.Equal(t, "Platform", task.Team.Name)
	})

	t.Run("non-member is refused", func(t *testing.T) {
		_, err := f.svc.CreateTask(ctx, f.carol.ID, &taskModel.CreateTaskRequest{Title: "Sneaky", TeamID: f.platform.ID})
		requireUnauthorized(t, err, taskModel.ReasonNotMember)
	})

	t.Run("invalid title", func(t *testing.T) {
		_, err := f.svc.CreateTask(ctx, f.bob.ID, &taskModel.CreateTaskRequest{Title: "ab", TeamID: f.platform.ID})
		requireValidation(t, err, "title")
	})

	t.Run("assignee outside the team", func(t *testing.T) {
		_, err := f.svc.CreateTask(ctx, f.bob.ID, &taskModel.CreateTaskRequest{
			Title: "Review", TeamID: f.platform.ID, AssignedToID: &f.carol.ID,
		})
		requireValidation(t, err, "assigned_to_id")
	})

	t.Run("assignee is notified", func(t *testing.T) {
		task := f.createTask(t, f.alice, taskModel.CreateTaskRequest{
			Title: "Release", TeamID: f.platform.ID, AssignedToID: &f.bob.ID,
		})

		list := f.notificationsFor(t, f.bob)
		require.Len(t, list, 1)
		assert.Equal(t, task.ID, list[0].TaskID)
		assert.Equal(t, notificationModel.TypeTaskAssigned, list[0].Type)
		assert.Equal(t, `You have been assigned to task "Release" in team "Platform"`, list[0].Message)
	})
}

func TestService_GetTask(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)
	task := f.createTask(t, f.alice, taskModel.CreateTaskRequest{Title: "Plan", TeamID: f.platform.ID})

	got, err := f.svc.GetTask(ctx, f.bob.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Plan", got.Title)

	_, err = f.svc.GetTask(ctx, f.carol.ID, task.ID)
	requireUnauthorized(t, err, taskModel.ReasonNotMember)

	_, err = f.svc.GetTask(ctx, f.bob.ID, "missing")
	assert.ErrorIs(t, err, taskModel.ErrTaskNotFound)
}

func TestService_ListTasks(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)
	platformTask := f.createTask(t, f.alice, taskModel.CreateTaskRequest{Title: "Platform work", TeamID: f.platform.ID, AssignedToID: &f.bob.ID})
	f.createTask(t, f.alice, taskModel.CreateTaskRequest{Title: "Mobile work", TeamID: f.mobile.ID})

	tasks, err := f.svc.ListTasks(ctx, f.bob.ID, taskModel.ListFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, platformTask.ID, tasks[0].ID)

	tasks, err = f.svc.ListTasks(ctx, f.alice.ID, taskModel.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	tasks, err = f.svc.ListTasks(ctx, f.alice.ID, taskModel.ListFilter{AssignedToID: f.bob.ID})
	require.NoError(t, err)
	assert.Len(t, tasks, 1)

	_, err = f.svc.ListTasks(ctx, f.bob.ID, taskModel.ListFilter{TeamID: f.mobile.ID})
	requireUnauthorized(t, err, taskModel.ReasonNotMember)

	_, err = f.svc.ListTasks(ctx, f.bob.ID, taskModel.ListFilter{Status: "blocked"})
	requireValidation(t, err, "status")
}

func TestService_UpdateTask_Partial(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	task := f.createTask(t, f.alice, taskModel.CreateTaskRequest{
		Title:    "Original",
		Content:  strPtr("body"),
		Priority: taskModel.PriorityHigh,
		TeamID:   f.platform.ID,
		DueDate:  &due,
	})

	t.Run("absent fields are untouched", func(t *testing.T) {
		status := taskModel.StatusInProgress
		res, err := f.svc.UpdateTask(ctx, f.bob.ID, task.ID, &taskModel.UpdateTaskRequest{Status: &status})
		require.NoError(t, err)

		assert.False(t, res.AssignmentChanged)
		assert.Equal(t, taskModel.StatusInProgress, res.Task.Status)
		assert.Equal(t, "Original", res.Task.Title)
		assert.Equal(t, taskModel.PriorityHigh, res.Task.Priority)
		require.NotNil(t, res.Task.Content)
		assert.Equal(t, "body", *res.Task.Content)
		require.NotNil(t, res.Task.DueDate)
		assert.True(t, due.Equal(*res.Task.DueDate))
	})

	t.Run("explicit null clears due date", func(t *testing.T) {
		res, err := f.svc.UpdateTask(ctx, f.bob.ID, task.ID, &taskModel.UpdateTaskRequest{DueDate: taskModel.Null[time.Time]()})
		require.NoError(t, err)
		assert.Nil(t, res.Task.DueDate)
		assert.Equal(t, "Original", res.Task.Title)
	})

	t.Run("invalid update changes nothing", func(t *testing.T) {
		_, err := f.svc.UpdateTask(ctx, f.bob.ID, task.ID, &taskModel.UpdateTaskRequest{Title: strPtr("no")})
		requireValidation(t, err, "title")

		got, err := f.svc.GetTask(ctx, f.bob.ID, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "Original", got.Title)
	})

	t.Run("non-member is refused", func(t *testing.T) {
		_, err := f.svc.UpdateTask(ctx, f.carol.ID, task.ID, &taskModel.UpdateTaskRequest{Title: strPtr("Hijacked")})
		requireUnauthorized(t, err, taskModel.ReasonNotMember)
	})

	t.Run("missing task", func(t *testing.T) {
		_, err := f.svc.UpdateTask(ctx, f.bob.ID, "missing", &taskModel.UpdateTaskRequest{})
		assert.ErrorIs(t, err, taskModel.ErrTaskNotFound)
	})
}

func TestService_UpdateTask_Assignment(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)
	task := f.createTask(t, f.alice, taskModel.CreateTaskRequest{Title: "Triage", TeamID: f.platform.ID})

	t.Run("new assignee is notified once", func(t *testing.T) {
		res, err := f.svc.UpdateTask(ctx, f.alice.ID, task.ID, &taskModel.UpdateTaskRequest{AssignedToID: taskModel.Value(f.bob.ID)})
		require.NoError(t, err)
		assert.True(t, res.AssignmentChanged)
		require.NotNil(t, res.Task.AssignedTo)
		assert.Equal(t, "bob", res.Task.AssignedTo.Username)

		list := f.notificationsFor(t, f.bob)
		require.Len(t, list, 1)
		assert.Equal(t, `You have been assigned to task "Triage" in team "Platform"`, list[0].Message)
	})

	t.Run("same assignee is not a change", func(t *testing.T) {
		res, err := f.svc.UpdateTask(ctx, f.alice.ID, task.ID, &taskModel.UpdateTaskRequest{AssignedToID: taskModel.Value(f.bob.ID)})
		require.NoError(t, err)
		assert.False(t, res.AssignmentChanged)
		assert.Len(t, f.notificationsFor(t, f.bob), 1)
	})

	t.Run("absent assignee is not a change", func(t *testing.T) {
		res, err := f.svc.UpdateTask(ctx, f.alice.ID, task.ID, &taskModel.UpdateTaskRequest{Title: strPtr("Triage v2")})
		require.NoError(t, err)
		assert.False(t, res.AssignmentChanged)
		require.NotNil(t, res.Task.AssignedToID)
		assert.Equal(t, f.bob.ID, *res.Task.AssignedToID)
	})

	t.Run("unassigning changes without notifying", func(t *testing.T) {
		var before int64
		require.NoError(t, f.db.Model(&notificationModel.Notification{}).Count(&before).Error)

		res, err := f.svc.UpdateTask(ctx, f.alice.ID, task.ID, &taskModel.UpdateTaskRequest{AssignedToID: taskModel.Null[string]()})
		require.NoError(t, err)
		assert.True(t, res.AssignmentChanged)
		assert.Nil(t, res.Task.AssignedToID)

		var after int64
		require.NoError(t, f.db.Model(&notificationModel.Notification{}).Count(&after).Error)
		assert.Equal(t, before, after)
	})

	t.Run("assignee outside the team", func(t *testing.T) {
		_, err := f.svc.UpdateTask(ctx, f.alice.ID, task.ID, &taskModel.UpdateTaskRequest{AssignedToID: taskModel.Value(f.carol.ID)})
		requireValidation(t, err, "assigned_to_id")
		assert.Empty(t, f.notificationsFor(t, f.carol))
	})
}

func TestService_UpdateTask_TeamReassignment(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)
	task := f.createTask(t, f.alice, taskModel.CreateTaskRequest{Title: "Port", TeamID: f.platform.ID, AssignedToID: &f.bob.ID})

	t.Run("actor must belong to the new team", func(t *testing.T) {
		_, err := f.svc.UpdateTask(ctx, f.bob.ID, task.ID, &taskModel.UpdateTaskRequest{TeamID: &f.mobile.ID})
		requireUnauthorized(t, err, taskModel.ReasonNotMember)
	})

	t.Run("assignee must belong to the new team", func(t *testing.T) {
		_, err := f.svc.UpdateTask(ctx, f.alice.ID, task.ID, &taskModel.UpdateTaskRequest{TeamID: &f.mobile.ID})
		requireValidation(t, err, "assigned_to_id")
	})

	t.Run("moves with a new assignee", func(t *testing.T) {
		res, err := f.svc.UpdateTask(ctx, f.alice.ID, task.ID, &taskModel.UpdateTaskRequest{
			TeamID:       &f.mobile.ID,
			AssignedToID: taskModel.Value(f.carol.ID),
		})
		require.NoError(t, err)
		assert.True(t, res.AssignmentChanged)
		assert.Equal(t, f.mobile.ID, res.Task.TeamID)

		list := f.notificationsFor(t, f.carol)
		require.Len(t, list, 1)
		assert.Equal(t, `You have been assigned to task "Port" in team "Mobile"`, list[0].Message)

		_, err = f.svc.GetTask(ctx, f.bob.ID, task.ID)
		requireUnauthorized(t, err, taskModel.ReasonNotMember)
	})
}

func TestService_DeleteTask(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)
	task := f.createTask(t, f.bob, taskModel.CreateTaskRequest{
		Title:        "Obsolete",
		TeamID:       f.platform.ID,
		AssignedToID: &f.bob.ID,
		Subtasks:     []string{"one", "two"},
		Attachments:  []taskModel.AttachmentInput{{Name: "a", URL: "https://example.com/a"}},
	})

	requireUnauthorized(t, f.svc.DeleteTask(ctx, f.bob.ID, task.ID), taskModel.ReasonNotAdmin)
	requireUnauthorized(t, f.svc.DeleteTask(ctx, f.carol.ID, task.ID), taskModel.ReasonNotMember)

	require.NoError(t, f.svc.DeleteTask(ctx, f.alice.ID, task.ID))

	_, err := f.svc.GetTask(ctx, f.alice.ID, task.ID)
	assert.ErrorIs(t, err, taskModel.ErrTaskNotFound)

	var subtasks, attachments int64
	require.NoError(t, f.db.Model(&taskModel.Subtask{}).Where("task_id = ?", task.ID).Count(&subtasks).Error)
	require.NoError(t, f.db.Model(&taskModel.Attachment{}).Where("task_id = ?", task.ID).Count(&attachments).Error)
	assert.Zero(t, subtasks)
	assert.Zero(t, attachments)

	count, err := f.notifications.CountByTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.ErrorIs(t, f.svc.DeleteTask(ctx, f.alice.ID, task.ID), taskModel.ErrTaskNotFound)
}

func TestService_SetSubtaskCompleted(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)
	task := f.createTask(t, f.alice, taskModel.CreateTaskRequest{Title: "Checklist", TeamID: f.platform.ID, Subtasks: []string{"step"}})
	subtaskID := task.Subtasks[0].ID

	sub, err := f.svc.SetSubtaskCompleted(ctx, f.bob.ID, task.ID, subtaskID, true)
	require.NoError(t, err)
	assert.True(t, sub.Completed)

	_, err = f.svc.SetSubtaskCompleted(ctx, f.carol.ID, task.ID, subtaskID, false)
	requireUnauthorized(t, err, taskModel.ReasonNotMember)

	_, err = f.svc.SetSubtaskCompleted(ctx, f.bob.ID, task.ID, "missing", true)
	assert.ErrorIs(t, err, taskModel.ErrSubtaskNotFound)
}

// Alice creates a team, adds Bob and assigns him a task; Carol stays outside.
func TestService_TeamScenario(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	team, err := f.teams.Create(ctx, "Launch")
	require.NoError(t, err)
	_, err = f.teams.AddMember(ctx, team.ID, f.alice.ID, teamModel.RoleAdmin)
	require.NoError(t, err)
	_, err = f.teams.AddMember(ctx, team.ID, f.bob.ID, teamModel.RoleMember)
	require.NoError(t, err)

	task := f.createTask(t, f.alice, taskModel.CreateTaskRequest{Title: "Launch checklist", TeamID: team.ID, AssignedToID: &f.bob.ID})
	require.Len(t, f.notificationsFor(t, f.bob), 1)

	status := taskModel.StatusCompleted
	res, err := f.svc.UpdateTask(ctx, f.bob.ID, task.ID, &taskModel.UpdateTaskRequest{Status: &status})
	require.NoError(t, err)
	assert.False(t, res.AssignmentChanged)
	assert.Len(t, f.notificationsFor(t, f.bob), 1)

	_, err = f.svc.UpdateTask(ctx, f.carol.ID, task.ID, &taskModel.UpdateTaskRequest{Status: &status})
	requireUnauthorized(t, err, taskModel.ReasonNotMember)

	requireUnauthorized(t, f.svc.DeleteTask(ctx, f.bob.ID, task.ID), taskModel.ReasonNotAdmin)
	require.NoError(t, f.svc.DeleteTask(ctx, f.alice.ID, task.ID))

	_, err = f.svc.GetTask(ctx, f.alice.ID, task.ID)
	assert.ErrorIs(t, err, taskModel.ErrTaskNotFound)
}

func TestService_ReassignWithinTeam(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	team, err := f.teams.Create(ctx, "Launch")
	require.NoError(t, err)
	for _, m := range []struct {
		user *userModel.User
		role teamModel.Role
	}{
		{f.alice, teamModel.RoleAdmin},
		{f.bob, teamModel.RoleMember},
		{f.carol, teamModel.RoleMember},
	} {
		_, err := f.teams.AddMember(ctx, team.ID, m.user.ID, m.role)
		require.NoError(t, err)
	}

	task := f.createTask(t, f.alice, taskModel.CreateTaskRequest{Title: "Launch checklist", TeamID: team.ID, AssignedToID: &f.bob.ID})
	before := f.notificationsFor(t, f.bob)
	require.Len(t, before, 1)

	res, err := f.svc.UpdateTask(ctx, f.alice.ID, task.ID, &taskModel.UpdateTaskRequest{AssignedToID: taskModel.Value(f.carol.ID)})
	require.NoError(t, err)
	assert.True(t, res.AssignmentChanged)
	require.NotNil(t, res.Task.AssignedToID)
	assert.Equal(t, f.carol.ID, *res.Task.AssignedToID)

	after := f.notificationsFor(t, f.bob)
	require.Len(t, after, 1)
	assert.Equal(t, before[0].ID, after[0].ID)
	assert.Equal(t, before[0].Message, after[0].Message)

	carols := f.notificationsFor(t, f.carol)
	require.Len(t, carols, 1)
	assert.Equal(t, notificationModel.TypeTaskAssigned, carols[0].Type)
	assert.Equal(t, task.ID, carols[0].TaskID)
	assert.Equal(t, `You have been assigned to task "Launch checklist" in team "Launch"`, carols[0].Message)

	var total int64
	require.NoError(t, f.db.Model(&notificationModel.Notification{}).Where("task_id = ?", task.ID).Count(&total).Error)
	assert.EqualValues(t, 2, total)
}

type failingSink struct{}

func (failingSink) Append(context.Context, *notificationModel.Notification) error {
	return errors.New("sink unavailable")
}

func TestService_NotificationFailureDoesNotFailUpdate(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)
	logger := zap.NewNop().Sugar()
	svc := New(repository.New(f.db, logger), f.teams, notifier.New(f.teams, failingSink{}, nil, logger), logger)

	task, err := svc.CreateTask(ctx, f.alice.ID, &taskModel.CreateTaskRequest{Title: "Resilient", TeamID: f.platform.ID, AssignedToID: &f.bob.ID})
	require.NoError(t, err)

	res, err := svc.UpdateTask(ctx, f.alice.ID, task.ID, &taskModel.UpdateTaskRequest{AssignedToID: taskModel.Value(f.alice.ID)})
	require.NoError(t, err)
	assert.True(t, res.AssignmentChanged)
	assert.Equal(t, f.alice.ID, *res.Task.AssignedToID)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) FindByID(ctx context.Context, taskID string) (*taskModel.Task, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taskModel.Task), args.Error(1)
}

func (m *mockStore) FindMany(ctx context.Context, q taskModel.Query) ([]taskModel.Task, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]taskModel.Task), args.Error(1)
}

func (m *mockStore) Create(ctx context.Context, task *taskModel.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *mockStore) Update(ctx context.Context, taskID string, fields map[string]interface{}) error {
	return m.Called(ctx, taskID, fields).Error(0)
}

func (m *mockStore) DeleteTree(ctx context.Context, taskID string) error {
	return m.Called(ctx, taskID).Error(0)
}

func (m *mockStore) SetSubtaskCompleted(
	ctx context.Context,
	taskID, subtaskID string,
	completed bool,
) (*taskModel.Subtask, error) {
	args := m.Called(ctx, taskID, subtaskID, completed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taskModel.Subtask), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, a notificationModel.Assignment) {
	m.Called(ctx, a)
}

const mockTaskID = "5a0f3c2e-1d4b-4e6f-8a9b-0c1d2e3f4a5b"

func TestService_PersistenceFailure(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)
	storeErr := &taskModel.PersistenceError{Op: "Update", Err: errors.New("connection reset")}
	task := &taskModel.Task{ID: mockTaskID, Title: "Flaky", TeamID: f.platform.ID}

	store := new(mockStore)
	store.On("FindByID", ctx, mockTaskID).Return(task, nil)
	store.On("Update", ctx, mockTaskID, mock.Anything).Return(storeErr)
	store.On("DeleteTree", ctx, mockTaskID).Return(storeErr)
	notify := new(mockNotifier)

	svc := New(store, f.teams, notify, zap.NewNop().Sugar())

	_, err := svc.UpdateTask(ctx, f.alice.ID, mockTaskID, &taskModel.UpdateTaskRequest{AssignedToID: taskModel.Value(f.bob.ID)})
	assert.ErrorIs(t, err, taskModel.ErrPersistence)
	notify.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)

	assert.ErrorIs(t, svc.DeleteTask(ctx, f.alice.ID, mockTaskID), taskModel.ErrPersistence)
}

func TestService_UpdateTask_WritesOnlyPresentFields(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)
	task := &taskModel.Task{ID: mockTaskID, Title: "Mocked", TeamID: f.platform.ID, AssignedToID: &f.bob.ID}
	priority := taskModel.PriorityLow

	store := new(mockStore)
	store.On("FindByID", ctx, mockTaskID).Return(task, nil)
	store.On("Update", ctx, mockTaskID, map[string]interface{}{
		"priority": priority,
		"due_date": nil,
	}).Return(nil).Once()
	notify := new(mockNotifier)

	svc := New(store, f.teams, notify, zap.NewNop().Sugar())
	res, err := svc.UpdateTask(ctx, f.alice.ID, mockTaskID, &taskModel.UpdateTaskRequest{
		Priority: &priority,
		DueDate:  taskModel.Null[time.Time](),
	})
	require.NoError(t, err)
	assert.False(t, res.AssignmentChanged)

	store.AssertExpectations(t)
	notify.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestService_MalformedIDs(t *testing.T) {
	ctx := context.Background()
	f := setupFixture(t)

	store := new(mockStore)
	svc := New(store, f.teams, new(mockNotifier), zap.NewNop().Sugar())

	_, err := svc.GetTask(ctx, f.alice.ID, "abc")
	assert.ErrorIs(t, err, taskModel.ErrTaskNotFound)
	_, err = svc.UpdateTask(ctx, f.alice.ID, "abc", &taskModel.UpdateTaskRequest{})
	assert.ErrorIs(t, err, taskModel.ErrTaskNotFound)
	assert.ErrorIs(t, svc.DeleteTask(ctx, f.alice.ID, "abc"), taskModel.ErrTaskNotFound)
	_, err = svc.SetSubtaskCompleted(ctx, f.alice.ID, "abc", "def", true)
	assert.ErrorIs(t, err, taskModel.ErrTaskNotFound)
	store.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)

	task := &taskModel.Task{ID: mockTaskID, TeamID: f.platform.ID}
	store.On("FindByID", ctx, mockTaskID).Return(task, nil)
	_, err = svc.SetSubtaskCompleted(ctx, f.alice.ID, mockTaskID, "def", true)
	assert.ErrorIs(t, err, taskModel.ErrSubtaskNotFound)
	store.AssertNotCalled(t, "SetSubtaskCompleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	_, err = svc.CreateTask(ctx, f.alice.ID, &taskModel.CreateTaskRequest{Title: "Bad team", TeamID: "abc"})
	requireValidation(t, err, "team_id")
	_, err = svc.ListTasks(ctx, f.alice.ID, taskModel.ListFilter{TeamID: "abc"})
	requireValidation(t, err, "team_id")
}
