package commands

import (
	"errors"
	"testing"

	command "github.com/goliatone/go-command"
)

type stubRegistry struct {
	handlers []any
	err      error
}

func (r *stubRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return r.err
}

type stubSubscription struct{ released bool }

func (s *stubSubscription) Unsubscribe() { s.released = true }

type stubDispatcher struct{ subs []*stubSubscription }

func (d *stubDispatcher) RegisterCommand(any) (CommandSubscription, error) {
	sub := &stubSubscription{}
	d.subs = append(d.subs, sub)
	return sub, nil
}

func TestRegisterFansOutToIntegrations(t *testing.T) {
	registry := &stubRegistry{}
	dispatcher := &stubDispatcher{}

	result, err := Register([]any{"a", nil, "b"}, RegistrationOptions{
		Registry:   registry,
		Dispatcher: dispatcher,
		CronRegistrar: func(command.HandlerConfig, any) error {
			t.Fatal("plain handlers are not cron commands")
			return nil
		},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(result.Handlers) != 2 || len(registry.handlers) != 2 || len(result.Subscriptions) != 2 {
		t.Fatalf("unexpected registration: %+v", result)
	}

	result.Unsubscribe()
	for _, sub := range dispatcher.subs {
		if !sub.released {
			t.Fatal("expected subscription released")
		}
	}
	if result.Subscriptions != nil {
		t.Fatal("expected subscriptions cleared")
	}
}

func TestRegisterJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	result, err := Register([]any{"a", "b"}, RegistrationOptions{Registry: &stubRegistry{err: boom}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if len(result.Handlers) != 2 {
		t.Fatalf("expected registration to continue, got %d handlers", len(result.Handlers))
	}
}
