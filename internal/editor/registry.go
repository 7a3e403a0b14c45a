package editor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var ErrSessionNotFound = errors.New("editor: session not found")

// Hook observes sessions entering and leaving a Registry.
type Hook interface {
	SessionOpened(ctx context.Context, session *Session) error
	SessionClosed(ctx context.Context, sessionID string) error
}

// ResumeHook is an optional Hook extension notified when a saved or
// published session is edited again.
type ResumeHook interface {
	SessionResumed(ctx context.Context, session *Session) error
}

// Registry keeps open sessions by id.
type Registry struct {
	mu       sync.RWMutex
	base     Options
	sessions map[string]*Session
	hooks    []Hook
}

// NewRegistry returns a registry that opens sessions from base. SessionID and
// MethodID in base are ignored.
func NewRegistry(base Options) *Registry {
	base.SessionID = ""
	base.MethodID = ""
	return &Registry{base: base, sessions: make(map[string]*Session)}
}

// Use registers a hook for sessions opened afterwards.
func (r *Registry) Use(hook Hook) {
	if hook == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, hook)
}

// Open starts a session. An empty methodID opens creation mode.
func (r *Registry) Open(ctx context.Context, methodID string) (*Session, error) {
	opts := r.base
	opts.MethodID = methodID
	onResume := opts.OnResume
	opts.OnResume = func(s *Session) {
		if onResume != nil {
			onResume(s)
		}
		_ = r.resumed(context.Background(), s)
	}
	session, err := Open(ctx, opts)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.sessions[session.ID()] = session
	hooks := append([]Hook(nil), r.hooks...)
	r.mu.Unlock()

	for _, hook := range hooks {
		if err := hook.SessionOpened(ctx, session); err != nil {
			r.remove(ctx, session.ID())
			return nil, fmt.Errorf("editor: open session hook: %w", err)
		}
	}
	return session, nil
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, id)
	}
	return session, nil
}

// Sessions returns the open sessions ordered by id.
func (r *Registry) Sessions() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Session, 0, len(r.sessions))
	for _, session := range r.sessions {
		out = append(out, session)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Discard clears the session's snapshot and forgets it.
func (r *Registry) Discard(ctx context.Context, id string) error {
	session, err := r.Get(id)
	if err != nil {
		return err
	}
	if err := session.Discard(ctx); err != nil {
		return err
	}
	return r.remove(ctx, id)
}

// Close forgets a session without touching its snapshot.
func (r *Registry) Close(ctx context.Context, id string) error {
	if _, err := r.Get(id); err != nil {
		return err
	}
	return r.remove(ctx, id)
}

func (r *Registry) resumed(ctx context.Context, session *Session) error {
	r.mu.RLock()
	hooks := append([]Hook(nil), r.hooks...)
	r.mu.RUnlock()

	var errs []error
	for _, hook := range hooks {
		if rh, ok := hook.(ResumeHook); ok {
			if err := rh.SessionResumed(ctx, session); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) remove(ctx context.Context, id string) error {
	r.mu.Lock()
	delete(r.sessions, id)
	hooks := append([]Hook(nil), r.hooks...)
	r.mu.Unlock()

	var errs []error
	for _, hook := range hooks {
		if err := hook.SessionClosed(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
