package navigation

import (
	"context"
	"sync"

	"github.com/goliatone/go-methodlib/internal/logging"
	"github.com/goliatone/go-methodlib/pkg/interfaces"
)

// History is a navigator that records every destination. Servers return the
// destination to the client, so recording it is all navigation needs.
type History struct {
	mu     sync.Mutex
	paths  []string
	logger interfaces.Logger
}

func NewHistory(logger interfaces.Logger) *History {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &History{logger: logger}
}

func (h *History) GoTo(_ context.Context, path string) error {
	h.mu.Lock()
	h.paths = append(h.paths, path)
	h.mu.Unlock()
	h.logger.Debug("navigation.goto", "path", path)
	return nil
}

// Last returns the most recent destination or "".
func (h *History) Last() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.paths) == 0 {
		return ""
	}
	return h.paths[len(h.paths)-1]
}

func (h *History) Paths() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.paths...)
}
