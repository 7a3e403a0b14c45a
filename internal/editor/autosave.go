package editor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-methodlib/internal/logging"
	"github.com/goliatone/go-methodlib/internal/scheduler"
	"github.com/goliatone/go-methodlib/pkg/interfaces"
)

const (
	// DefaultAutosaveInterval matches the editor's 30 second tick.
	DefaultAutosaveInterval = 30 * time.Second

	payloadSessionID = "session_id"
)

// Autosaver schedules one recurring autosave job per open session.
type Autosaver struct {
	registry  *Registry
	scheduler interfaces.Scheduler
	interval  time.Duration
	now       func() time.Time
	logger    interfaces.Logger
}

var (
	_ Hook       = (*Autosaver)(nil)
	_ ResumeHook = (*Autosaver)(nil)
)

type AutosaverOption func(*Autosaver)

func WithAutosaveInterval(interval time.Duration) AutosaverOption {
	return func(a *Autosaver) {
		if interval > 0 {
			a.interval = interval
		}
	}
}

func WithAutosaveClock(clock func() time.Time) AutosaverOption {
	return func(a *Autosaver) {
		if clock != nil {
			a.now = clock
		}
	}
}

func WithAutosaveLogger(logger interfaces.Logger) AutosaverOption {
	return func(a *Autosaver) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAutosaver builds the autosaver and registers it as a registry hook.
func NewAutosaver(registry *Registry, jobs interfaces.Scheduler, opts ...AutosaverOption) *Autosaver {
	a := &Autosaver{
		registry:  registry,
		scheduler: jobs,
		interval:  DefaultAutosaveInterval,
		now:       time.Now,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	if registry != nil {
		registry.Use(a)
	}
	return a
}

// Interval returns the delay between ticks.
func (a *Autosaver) Interval() time.Duration { return a.interval }

// Schedule enqueues the next tick, replacing any pending one.
func (a *Autosaver) Schedule(ctx context.Context, sessionID string) error {
	_, err := a.scheduler.Enqueue(ctx, interfaces.JobSpec{
		Key:         scheduler.DraftAutosaveJobKey(sessionID),
		Type:        scheduler.JobTypeDraftAutosave,
		RunAt:       a.now().Add(a.interval),
		Payload:     map[string]any{payloadSessionID: sessionID},
		MaxAttempts: 1,
	})
	return err
}

// SessionOpened arms the tick for creation-mode sessions.
func (a *Autosaver) SessionOpened(ctx context.Context, session *Session) error {
	if session.Mode() != ModeCreate {
		return nil
	}
	return a.Schedule(ctx, session.ID())
}

// SessionResumed re-arms the tick once a committed draft is edited again.
func (a *Autosaver) SessionResumed(ctx context.Context, session *Session) error {
	if session.Mode() != ModeCreate {
		return nil
	}
	if err := a.Schedule(ctx, session.ID()); err != nil {
		a.logger.Error("editor.autosave_rearm_failed", "session_id", session.ID(), "error", err)
		return err
	}
	return nil
}

func (a *Autosaver) SessionClosed(ctx context.Context, sessionID string) error {
	err := a.scheduler.CancelByKey(ctx, scheduler.DraftAutosaveJobKey(sessionID))
	if errors.Is(err, interfaces.ErrJobNotFound) {
		return nil
	}
	return err
}

// Handle processes one autosave job. Ticks for sessions that are gone,
// discarded or committed are dropped; editing sessions are written and
// rescheduled.
func (a *Autosaver) Handle(ctx context.Context, job *interfaces.Job) error {
	sessionID, _ := job.Payload[payloadSessionID].(string)
	if sessionID == "" {
		return fmt.Errorf("editor: autosave job %s missing %s", job.ID, payloadSessionID)
	}
	logger := a.logger.WithContext(ctx)
	session, err := a.registry.Get(sessionID)
	if err != nil {
		logger.Debug("editor.autosave_session_gone", "session_id", sessionID)
		return nil
	}
	switch session.State() {
	case StateDiscarded, StateSaved, StatePublished:
		logger.Debug("editor.autosave_parked", "session_id", sessionID, "state", session.State())
		return nil
	}

	wrote, saveErr := session.Autosave(ctx)
	if wrote {
		logger.Debug("editor.autosave_tick", "session_id", sessionID)
	}
	if err := a.Schedule(ctx, sessionID); err != nil {
		return errors.Join(saveErr, err)
	}
	return saveErr
}
