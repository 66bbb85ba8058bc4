// Package service provides business logic layer for task module.
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	notificationModel "github.com/festy23/team_tasks/internal/notification/model"
	"github.com/festy23/team_tasks/internal/task/guard"
	taskModel "github.com/festy23/team_tasks/internal/task/model"
	"github.com/festy23/team_tasks/internal/task/repository"
	"github.com/festy23/team_tasks/pkg/validation"
)

// Memberships is the part of the membership registry the task lifecycle reads.
type Memberships interface {
	guard.Memberships
	TeamIDsForUser(ctx context.Context, userID string) ([]string, error)
}

// AssignmentNotifier is told about every new assignee. It never fails the caller.
type AssignmentNotifier interface {
	Notify(ctx context.Context, a notificationModel.Assignment)
}

// Service defines the interface for task business logic operations.
type Service interface {
	// CreateTask creates a task with its subtasks and attachments in a team the actor belongs to.
	CreateTask(ctx context.Context, actorID string, req *taskModel.CreateTaskRequest) (*taskModel.Task, error)

	// GetTask returns a task of one of the actor's teams.
	GetTask(ctx context.Context, actorID, taskID string) (*taskModel.Task, error)

	// ListTasks returns tasks of the actor's teams matching filter.
	ListTasks(ctx context.Context, actorID string, filter taskModel.ListFilter) ([]taskModel.Task, error)

	// UpdateTask applies a partial update and reports whether the assignee changed.
	UpdateTask(ctx context.Context, actorID, taskID string, req *taskModel.UpdateTaskRequest) (*taskModel.UpdateResult, error)

	// DeleteTask removes the task with its subtasks and attachments. Admin only.
	DeleteTask(ctx context.Context, actorID, taskID string) error

	// SetSubtaskCompleted toggles a checklist item of the task.
	SetSubtaskCompleted(ctx context.Context, actorID, taskID, subtaskID string, completed bool) (*taskModel.Subtask, error)
}

type service struct {
	store    repository.Repository
	members  Memberships
	guard    *guard.Guard
	notifier AssignmentNotifier
	logger   *zap.SugaredLogger
}

// New creates a new task service instance.
func New(
	store repository.Repository,
	members Memberships,
	notifier AssignmentNotifier,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		store:    store,
		members:  members,
		guard:    guard.New(members),
		notifier: notifier,
		logger:   logger,
	}
}

func (s *service) CreateTask(
	ctx context.Context,
	actorID string,
	req *taskModel.CreateTaskRequest,
) (*taskModel.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.authorizeTeam(ctx, actorID, req.TeamID); err != nil {
		return nil, err
	}
	if req.AssignedToID != nil {
		if err := s.requireAssignable(ctx, *req.AssignedToID, req.TeamID); err != nil {
			return nil, err
		}
	}

	task := &taskModel.Task{
		Title:        req.Title,
		Content:      req.Content,
		Status:       req.Status,
		Priority:     req.Priority,
		TeamID:       req.TeamID,
		AssignedToID: req.AssignedToID,
		DueDate:      req.DueDate,
		Subtasks:     make([]taskModel.Subtask, 0, len(req.Subtasks)),
		Attachments:  make([]taskModel.Attachment, 0, len(req.Attachments)),
	}
	for _, title := range req.Subtasks {
		task.Subtasks = append(task.Subtasks, taskModel.Subtask{Title: title})
	}
	for _, a := range req.Attachments {
		task.Attachments = append(task.Attachments, taskModel.Attachment{Name: a.Name, URL: a.URL})
	}

	if err := s.store.Create(ctx, task); err != nil {
		return nil, s.storeFailure("CreateTask", actorID, err)
	}

	created, err := s.store.FindByID(ctx, task.ID)
	if err != nil {
		return nil, s.storeFailure("CreateTask", actorID, err)
	}

	s.logger.Infow("task created", "task_id", created.ID, "team_id", created.TeamID, "actor_id", actorID)
	if created.AssignedToID != nil {
		s.notifyAssigned(ctx, created)
	}
	return created, nil
}

func (s *service) GetTask(ctx context.Context, actorID, taskID string) (*taskModel.Task, error) {
	task, err := s.loadTask(ctx, "GetTask", actorID, taskID)
	if err != nil {
		return nil, err
	}

	decision, err := s.guard.CanView(ctx, actorID, task)
	if err != nil {
		return nil, err
	}
	if err := decision.Err(); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *service) ListTasks(
	ctx context.Context,
	actorID string,
	filter taskModel.ListFilter,
) ([]taskModel.Task, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var teamIDs []string
	if filter.TeamID != "" {
		if err := s.authorizeTeam(ctx, actorID, filter.TeamID); err != nil {
			return nil, err
		}
		teamIDs = []string{filter.TeamID}
	} else {
		ids, err := s.members.TeamIDsForUser(ctx, actorID)
		if err != nil {
			return nil, err
		}
		teamIDs = ids
	}

	tasks, err := s.store.FindMany(ctx, taskModel.Query{
		TeamIDs:      teamIDs,
		Status:       filter.Status,
		AssignedToID: filter.AssignedToID,
	})
	if err != nil {
		return nil, s.storeFailure("ListTasks", actorID, err)
	}
	return tasks, nil
}

// UpdateTask writes only the fields present in req. Moving the task to
// another team requires membership there, and the resulting assignee must
// belong to the resulting team.
func (s *service) UpdateTask(
	ctx context.Context,
	actorID, taskID string,
	req *taskModel.UpdateTaskRequest,
) (*taskModel.UpdateResult, error) {
	task, err := s.loadTask(ctx, "UpdateTask", actorID, taskID)
	if err != nil {
		return nil, err
	}

	decision, err := s.guard.CanEdit(ctx, actorID, task)
	if err != nil {
		return nil, err
	}
	if err := decision.Err(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Priority != nil {
		fields["priority"] = *req.Priority
	}

	teamID := task.TeamID
	if req.TeamID != nil && *req.TeamID != task.TeamID {
		if err := s.authorizeTeam(ctx, actorID, *req.TeamID); err != nil {
			return nil, err
		}
		teamID = *req.TeamID
		fields["team_id"] = teamID
	}

	assignee := task.AssignedToID
	assignmentChanged := false
	if req.AssignedToID.Present() {
		assignee = req.AssignedToID.Ptr()
		assignmentChanged = !sameAssignee(assignee, task.AssignedToID)
		fields["assigned_to_id"] = orNil(assignee)
	}
	if assignee != nil && (assignmentChanged || teamID != task.TeamID) {
		if err := s.requireAssignable(ctx, *assignee, teamID); err != nil {
			return nil, err
		}
	}

	if req.DueDate.Present() {
		fields["due_date"] = orNil(req.DueDate.Ptr())
	}

	if err := s.store.Update(ctx, task.ID, fields); err != nil {
		return nil, s.storeFailure("UpdateTask", actorID, err)
	}

	updated, err := s.store.FindByID(ctx, task.ID)
	if err != nil {
		return nil, s.storeFailure("UpdateTask", actorID, err)
	}

	s.logger.Infow("task updated",
		"task_id", task.ID,
		"actor_id", actorID,
		"fields", len(fields),
		"assignment_changed", assignmentChanged,
	)
	if assignmentChanged && updated.AssignedToID != nil {
		s.notifyAssigned(ctx, updated)
	}

	return &taskModel.UpdateResult{Task: updated, AssignmentChanged: assignmentChanged}, nil
}

func (s *service) DeleteTask(ctx context.Context, actorID, taskID string) error {
	task, err := s.loadTask(ctx, "DeleteTask", actorID, taskID)
	if err != nil {
		return err
	}

	decision, err := s.guard.CanDelete(ctx, actorID, task)
	if err != nil {
		return err
	}
	if err := decision.Err(); err != nil {
		return err
	}

	if err := s.store.DeleteTree(ctx, task.ID); err != nil {
		return s.storeFailure("DeleteTask", actorID, err)
	}

	s.logger.Infow("task deleted", "task_id", task.ID, "team_id", task.TeamID, "actor_id", actorID)
	return nil
}

func (s *service) SetSubtaskCompleted(
	ctx context.Context,
	actorID, taskID, subtaskID string,
	completed bool,
) (*taskModel.Subtask, error) {
	task, err := s.loadTask(ctx, "SetSubtaskCompleted", actorID, taskID)
	if err != nil {
		return nil, err
	}

	decision, err := s.guard.CanEdit(ctx, actorID, task)
	if err != nil {
		return nil, err
	}
	if err := decision.Err(); err != nil {
		return nil, err
	}

	if !validation.IsUUID(subtaskID) {
		return nil, taskModel.ErrSubtaskNotFound
	}
	subtask, err := s.store.SetSubtaskCompleted(ctx, task.ID, subtaskID, completed)
	if err != nil {
		return nil, s.storeFailure("SetSubtaskCompleted", actorID, err)
	}
	return subtask, nil
}

// loadTask fetches the task. Ids that are not UUIDs cannot exist and are
// reported as not found without a store round trip.
func (s *service) loadTask(ctx context.Context, op, actorID, taskID string) (*taskModel.Task, error) {
	if !validation.IsUUID(taskID) {
		return nil, taskModel.ErrTaskNotFound
	}
	task, err := s.store.FindByID(ctx, taskID)
	if err != nil {
		return nil, s.storeFailure(op, actorID, err)
	}
	return task, nil
}

func (s *service) authorizeTeam(ctx context.Context, actorID, teamID string) error {
	decision, err := s.guard.CanAccessTeam(ctx, actorID, teamID)
	if err != nil {
		return err
	}
	return decision.Err()
}

func (s *service) requireAssignable(ctx context.Context, userID, teamID string) error {
	ok, err := s.members.IsMember(ctx, userID, teamID)
	if err != nil {
		return err
	}
	if !ok {
		return validation.New("assigned_to_id", "must be a member of the team")
	}
	return nil
}

func (s *service) notifyAssigned(ctx context.Context, task *taskModel.Task) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, notificationModel.Assignment{
		TaskID:     task.ID,
		TaskTitle:  task.Title,
		TeamID:     task.TeamID,
		AssigneeID: *task.AssignedToID,
	})
}

func (s *service) storeFailure(op, actorID string, err error) error {
	if errors.Is(err, taskModel.ErrPersistence) {
		s.logger.Errorw(op+" failed", "actor_id", actorID, "error", err)
	}
	return err
}

func sameAssignee(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func orNil[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
