// Package notifier turns task assignments into notifications.
package notifier

import (
	"context"

	"go.uber.org/zap"

	notificationModel "github.com/festy23/team_tasks/internal/notification/model"
	teamModel "github.com/festy23/team_tasks/internal/team/model"
	"github.com/festy23/team_tasks/pkg/reporter"
)

// Sink receives built notifications.
type Sink interface {
	Append(ctx context.Context, n *notificationModel.Notification) error
}

// TeamLookup resolves the team name shown in the message.
type TeamLookup interface {
	GetByID(ctx context.Context, teamID string) (*teamModel.Team, error)
}

// Notifier records an assignment notification for the new assignee.
// Failures are logged and reported, never returned: a lost notification
// must not fail the task mutation that caused it.
type Notifier struct {
	teams    TeamLookup
	sink     Sink
	reporter reporter.Reporter
	logger   *zap.SugaredLogger
}

// New creates a notifier. A nil reporter discards reports.
func New(teams TeamLookup, sink Sink, rep reporter.Reporter, logger *zap.SugaredLogger) *Notifier {
	if rep == nil {
		rep = reporter.Nop{}
	}
	return &Notifier{teams: teams, sink: sink, reporter: rep, logger: logger}
}

// Notify builds a task_assigned notification for a and hands it to the sink.
func (n *Notifier) Notify(ctx context.Context, a notificationModel.Assignment) {
	if err := a.Validate(); err != nil {
		n.fail("validate", a, err)
		return
	}

	// The mutation has already committed; a client going away must not
	// drop its notification.
	ctx = context.WithoutCancel(ctx)

	team, err := n.teams.GetByID(ctx, a.TeamID)
	if err != nil {
		n.fail("team_lookup", a, err)
		return
	}

	if err := n.sink.Append(ctx, notificationModel.NewTaskAssigned(a, team.Name)); err != nil {
		n.fail("append", a, err)
		return
	}

	n.logger.Debugw("assignment notification queued", "task_id", a.TaskID, "user_id", a.AssigneeID)
}

func (n *Notifier) fail(stage string, a notificationModel.Assignment, err error) {
	n.logger.Warnw("assignment notification failed",
		"stage", stage,
		"task_id", a.TaskID,
		"team_id", a.TeamID,
		"user_id", a.AssigneeID,
		"error", err,
	)
	n.reporter.Report(err, map[string]string{
		"component": "notifier",
		"stage":     stage,
		"task_id":   a.TaskID,
	})
}
