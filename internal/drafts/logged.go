package drafts

import (
	"context"
	"errors"

	"github.com/goliatone/go-methodlib/internal/logging"
	"github.com/goliatone/go-methodlib/method"
	"github.com/goliatone/go-methodlib/pkg/interfaces"
)

type loggedStore struct {
	inner  Store
	logger interfaces.Logger
}

// WithLogging reports snapshot failures on logger. Errors are returned
// unchanged.
func WithLogging(store Store, logger interfaces.Logger) Store {
	if store == nil {
		return nil
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &loggedStore{inner: store, logger: logger}
}

func (s *loggedStore) Write(ctx context.Context, draft method.Method) error {
	err := s.inner.Write(ctx, draft)
	if err != nil {
		s.logger.WithContext(ctx).Error("drafts.write_failed", "error", err)
	}
	return err
}

func (s *loggedStore) Read(ctx context.Context) (*method.Method, error) {
	draft, err := s.inner.Read(ctx)
	switch {
	case errors.Is(err, ErrSnapshotCorrupt):
		s.logger.WithContext(ctx).Warn("drafts.snapshot_corrupt", "error", err)
	case err != nil:
		s.logger.WithContext(ctx).Error("drafts.read_failed", "error", err)
	}
	return draft, err
}

func (s *loggedStore) Clear(ctx context.Context) error {
	err := s.inner.Clear(ctx)
	if err != nil {
		s.logger.WithContext(ctx).Error("drafts.clear_failed", "error", err)
	}
	return err
}
