// Package outbox decouples notification writes from the request that caused
// them. Appends are queued on a bounded channel and a single worker writes
// them to the notification store.
package outbox

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	notificationModel "github.com/festy23/team_tasks/internal/notification/model"
)

var (
	// ErrOutboxFull is returned by Append when the queue has no free slot.
	ErrOutboxFull = errors.New("notification outbox is full")
	// ErrOutboxClosed is returned by Append after Close.
	ErrOutboxClosed = errors.New("notification outbox is closed")
)

const (
	// DefaultWriteTimeout bounds a single store write.
	DefaultWriteTimeout = 5 * time.Second

	failureBuffer = 16
)

// Store persists notifications.
type Store interface {
	Append(ctx context.Context, n *notificationModel.Notification) error
}

// Failure is a notification the worker could not store.
type Failure struct {
	Notification *notificationModel.Notification
	Err          error
}

// Outbox is a Sink whose Append never blocks.
type Outbox struct {
	store        Store
	logger       *zap.SugaredLogger
	writeTimeout time.Duration

	queue    chan *notificationModel.Notification
	failures chan Failure
	done     chan struct{}

	mu        sync.RWMutex
	closed    bool
	startOnce sync.Once
	closeOnce sync.Once
}

// New creates an outbox holding up to buffer pending notifications.
func New(store Store, buffer int, logger *zap.SugaredLogger) *Outbox {
	if buffer <= 0 {
		buffer = 1
	}
	return &Outbox{
		store:        store,
		logger:       logger,
		writeTimeout: DefaultWriteTimeout,
		queue:        make(chan *notificationModel.Notification, buffer),
		failures:     make(chan Failure, failureBuffer),
		done:         make(chan struct{}),
	}
}

// Start launches the worker. Calling it more than once has no effect.
func (o *Outbox) Start() {
	o.startOnce.Do(func() {
		go o.run()
	})
}

// Append queues n without blocking.
func (o *Outbox) Append(_ context.Context, n *notificationModel.Notification) error {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.closed {
		return ErrOutboxClosed
	}
	select {
	case o.queue <- n:
		return nil
	default:
		return ErrOutboxFull
	}
}

// Pending returns the number of queued notifications.
func (o *Outbox) Pending() int {
	return len(o.queue)
}

// Capacity returns the queue size.
func (o *Outbox) Capacity() int {
	return cap(o.queue)
}

// Failures publishes notifications the worker failed to store. Failures are
// dropped when the channel is not drained. It is closed once the worker stops.
func (o *Outbox) Failures() <-chan Failure {
	return o.failures
}

// Close stops accepting notifications, waits for the queue to drain and
// stops the worker. It returns ctx.Err() if draining outlives ctx.
func (o *Outbox) Close(ctx context.Context) error {
	o.closeOnce.Do(func() {
		o.mu.Lock()
		o.closed = true
		close(o.queue)
		o.mu.Unlock()

		o.Start()
	})

	select {
	case <-o.done:
		return nil
	case <-ctx.Done():
		o.logger.Warnw("outbox close timed out", "pending", o.Pending())
		return ctx.Err()
	}
}

func (o *Outbox) run() {
	defer close(o.done)
	defer close(o.failures)

	for n := range o.queue {
		o.deliver(n)
	}
}

func (o *Outbox) deliver(n *notificationModel.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), o.writeTimeout)
	defer cancel()

	if err := o.store.Append(ctx, n); err != nil {
		o.logger.Errorw("outbox write failed", "user_id", n.UserID, "task_id", n.TaskID, "error", err)
		select {
		case o.failures <- Failure{Notification: n, Err: err}:
		default:
		}
	}
}
