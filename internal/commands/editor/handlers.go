package editorcmd

import (
	"context"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-methodlib/internal/commands"
	"github.com/goliatone/go-methodlib/internal/editor"
	"github.com/goliatone/go-methodlib/pkg/interfaces"
)

// Sessions is the part of editor.Registry the handlers use.
type Sessions interface {
	Get(id string) (*editor.Session, error)
	Discard(ctx context.Context, id string) error
}

var (
	_ command.Commander[UpdateFieldCommand] = (*commands.Handler[UpdateFieldCommand])(nil)
	_ Sessions                              = (*editor.Registry)(nil)
)

func handlerOptions[T command.Message](logger interfaces.Logger, operation string, extra []commands.HandlerOption[T]) []commands.HandlerOption[T] {
	return append([]commands.HandlerOption[T]{
		commands.WithLogger[T](logger),
		commands.WithOperation[T](operation),
	}, extra...)
}

// withSession resolves the session named by a message before running fn.
func withSession[T command.Message](sessions Sessions, id func(T) string, fn func(context.Context, *editor.Session, T) error) command.CommandFunc[T] {
	return func(ctx context.Context, msg T) error {
		session, err := sessions.Get(id(msg))
		if err != nil {
			return err
		}
		return fn(ctx, session, msg)
	}
}

func NewUpdateFieldHandler(sessions Sessions, logger interfaces.Logger, opts ...commands.HandlerOption[UpdateFieldCommand]) *commands.Handler[UpdateFieldCommand] {
	exec := withSession(sessions, func(m UpdateFieldCommand) string { return m.SessionID },
		func(_ context.Context, s *editor.Session, msg UpdateFieldCommand) error {
			return s.UpdateField(editor.Field(msg.Field), msg.Value)
		})
	return commands.NewHandler(exec, handlerOptions(logger, "editor.update_field", opts)...)
}

func NewSetTagsHandler(sessions Sessions, logger interfaces.Logger, opts ...commands.HandlerOption[SetTagsCommand]) *commands.Handler[SetTagsCommand] {
	exec := withSession(sessions, func(m SetTagsCommand) string { return m.SessionID },
		func(_ context.Context, s *editor.Session, msg SetTagsCommand) error {
			s.SetTags(msg.Tags)
			return nil
		})
	return commands.NewHandler(exec, handlerOptions(logger, "editor.set_tags", opts)...)
}

func NewSetRelatedHandler(sessions Sessions, logger interfaces.Logger, opts ...commands.HandlerOption[SetRelatedCommand]) *commands.Handler[SetRelatedCommand] {
	exec := withSession(sessions, func(m SetRelatedCommand) string { return m.SessionID },
		func(_ context.Context, s *editor.Session, msg SetRelatedCommand) error {
			s.SetRelated(msg.Related)
			return nil
		})
	return commands.NewHandler(exec, handlerOptions(logger, "editor.set_related", opts)...)
}

func NewAutosaveHandler(sessions Sessions, logger interfaces.Logger, opts ...commands.HandlerOption[AutosaveCommand]) *commands.Handler[AutosaveCommand] {
	exec := withSession(sessions, func(m AutosaveCommand) string { return m.SessionID },
		func(ctx context.Context, s *editor.Session, _ AutosaveCommand) error {
			_, err := s.Autosave(ctx)
			return err
		})
	return commands.NewHandler(exec, handlerOptions(logger, "editor.autosave", opts)...)
}

func NewDiscardHandler(sessions Sessions, logger interfaces.Logger, opts ...commands.HandlerOption[DiscardCommand]) *commands.Handler[DiscardCommand] {
	exec := func(ctx context.Context, msg DiscardCommand) error {
		return sessions.Discard(ctx, msg.SessionID)
	}
	return commands.NewHandler(exec, handlerOptions(logger, "editor.discard", opts)...)
}

// HandlerSet groups the editor command handlers.
type HandlerSet struct {
	UpdateField *commands.Handler[UpdateFieldCommand]
	SetTags     *commands.Handler[SetTagsCommand]
	SetRelated  *commands.Handler[SetRelatedCommand]
	Autosave    *commands.Handler[AutosaveCommand]
	Discard     *commands.Handler[DiscardCommand]
}

// NewHandlerSet builds every editor handler over one session registry.
func NewHandlerSet(sessions Sessions, provider interfaces.LoggerProvider) *HandlerSet {
	logger := commands.CommandLogger(provider, "editor")
	return &HandlerSet{
		UpdateField: NewUpdateFieldHandler(sessions, logger),
		SetTags:     NewSetTagsHandler(sessions, logger),
		SetRelated:  NewSetRelatedHandler(sessions, logger),
		Autosave:    NewAutosaveHandler(sessions, logger),
		Discard:     NewDiscardHandler(sessions, logger),
	}
}

// All returns the handlers in registration order.
func (s *HandlerSet) All() []any {
	return []any{s.UpdateField, s.SetTags, s.SetRelated, s.Autosave, s.Discard}
}
