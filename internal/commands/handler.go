package commands

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-methodlib/internal/logging"
	"github.com/goliatone/go-methodlib/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// DefaultTimeout bounds a command run unless WithTimeout overrides it.
const DefaultTimeout = 30 * time.Second

type HandlerOption[T command.Message] func(*Handler[T])

// Handler adapts a CommandFunc to command.Commander. It validates the message,
// applies a deadline, logs the outcome and tags errors with a go-errors
// category.
type Handler[T command.Message] struct {
	exec      command.CommandFunc[T]
	logger    interfaces.Logger
	timeout   time.Duration
	operation string
	now       func() time.Time
}

func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: nil handler function")
	}
	h := &Handler[T]{
		exec:    fn,
		logger:  logging.NoOp(),
		timeout: DefaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if err := command.ValidateMessage(msg); err != nil {
		return wrapValidationError(err)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return wrapContextError(err)
	}

	fields := map[string]any{"command": command.GetMessageType(msg)}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	logger := logging.WithFields(h.logger, fields)
	started := h.now()

	err := h.exec(ctx, msg)
	if err == nil {
		err = ctx.Err()
	}
	elapsed := h.now().Sub(started).Milliseconds()
	switch {
	case err == nil:
		logger.Info("command.succeeded", "duration_ms", elapsed)
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		logger.Error("command.context_error", "duration_ms", elapsed, "error", err)
		return wrapContextError(err)
	default:
		logger.Error("command.failed", "duration_ms", elapsed, "error", err)
		return wrapExecuteError(err)
	}
}

// WithTimeout replaces the default deadline. Zero or negative disables it.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.timeout = max(timeout, 0)
	}
}

func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithOperation names the operation in every log entry.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}
