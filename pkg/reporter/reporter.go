// Package reporter forwards unexpected errors to an error tracker.
package reporter

import (
	"time"

	"github.com/getsentry/sentry-go"
)

// Reporter captures errors that should not be lost in logs alone.
type Reporter interface {
	Report(err error, tags map[string]string)
	Flush(timeout time.Duration) bool
}

// Nop discards every report.
type Nop struct{}

func (Nop) Report(error, map[string]string) {}

func (Nop) Flush(time.Duration) bool { return true }

// Sentry reports errors through its own sentry hub.
type Sentry struct {
	hub *sentry.Hub
}

// New returns a Sentry reporter when dsn is set and Nop otherwise.
func New(dsn, environment string) (Reporter, error) {
	if dsn == "" {
		return Nop{}, nil
	}
	return NewSentry(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
	})
}

// NewSentry builds a reporter from explicit client options.
func NewSentry(opts sentry.ClientOptions) (*Sentry, error) {
	client, err := sentry.NewClient(opts)
	if err != nil {
		return nil, err
	}
	return &Sentry{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

// Report captures err with the given tags.
func (s *Sentry) Report(err error, tags map[string]string) {
	if err == nil {
		return
	}
	s.hub.WithScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		s.hub.CaptureException(err)
	})
}

// Flush waits for buffered events to be sent.
func (s *Sentry) Flush(timeout time.Duration) bool {
	return s.hub.Flush(timeout)
}
