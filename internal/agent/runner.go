package agent

import (
	"context"
)

// Runner drives the root pipeline for stored sessions. Each run blocks until
// the pipeline reaches a terminal result; callers get no intermediate events.
type Runner struct {
	app      string
	sessions *SessionService
	pipeline *Pipeline
}

// NewRunner creates a runner scoped to one application name.
func NewRunner(app string, sessions *SessionService, pipeline *Pipeline) *Runner {
	return &Runner{app: app, sessions: sessions, pipeline: pipeline}
}

// App returns the application name sessions are created under.
func (r *Runner) App() string {
	return r.app
}

// Run executes the pipeline against the named session and blocks until it
// completes or fails.
func (r *Runner) Run(ctx context.Context, userID, sessionID string) error {
	sess, err := r.sessions.Get(r.app, userID, sessionID)
	if err != nil {
		return err
	}
	return r.pipeline.Run(ctx, sess.State)
}
