package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-methodlib/internal/catalog"
	editorcmd "github.com/goliatone/go-methodlib/internal/commands/editor"
	"github.com/goliatone/go-methodlib/internal/editor"
	"github.com/goliatone/go-methodlib/internal/library"
	"github.com/goliatone/go-methodlib/internal/logging"
	"github.com/goliatone/go-methodlib/internal/validation"
	"github.com/goliatone/go-methodlib/pkg/interfaces"
)

// API registers the library and editor endpoints.
type API struct {
	basePath string
	library  library.Service
	sessions *editor.Registry
	commands *editorcmd.HandlerSet
	rules    []validation.RuleOption
	mode     catalog.Mode
	logger   interfaces.Logger
}

// Option mutates the API configuration.
type Option func(*API)

// NewAPI constructs an API instance.
func NewAPI(opts ...Option) *API {
	api := &API{
		basePath: "/api",
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) Option {
	return func(api *API) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

func WithLibraryService(service library.Service) Option {
	return func(api *API) {
		api.library = service
	}
}

// WithEditorRegistry wires the session registry behind /editor/sessions.
func WithEditorRegistry(registry *editor.Registry) Option {
	return func(api *API) {
		api.sessions = registry
	}
}

// WithEditorCommands routes field, tag and related edits and discards
// through the command handlers.
func WithEditorCommands(set *editorcmd.HandlerSet) Option {
	return func(api *API) {
		api.commands = set
	}
}

func WithRules(rules ...validation.RuleOption) Option {
	return func(api *API) {
		api.rules = rules
	}
}

func WithCatalogMode(mode catalog.Mode) Option {
	return func(api *API) {
		api.mode = mode
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// Register attaches the endpoints to the provided mux.
func (api *API) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: api is nil")
	}

	base := joinPath(api.basePath, "")
	api.registerLibraryRoutes(mux, base)
	api.registerEditorRoutes(mux, base)
	return nil
}

// Handler returns a mux with every route registered.
func (api *API) Handler() http.Handler {
	mux := http.NewServeMux()
	_ = api.Register(mux)
	return mux
}
