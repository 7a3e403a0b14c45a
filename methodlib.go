package methodlib

import (
	"context"
	"net/http"

	"github.com/goliatone/go-methodlib/internal/catalog"
	"github.com/goliatone/go-methodlib/internal/di"
	"github.com/goliatone/go-methodlib/internal/editor"
	methodshttp "github.com/goliatone/go-methodlib/internal/http"
	"github.com/goliatone/go-methodlib/internal/library"
	"github.com/goliatone/go-methodlib/internal/logging"
	"github.com/goliatone/go-methodlib/internal/markdown"
	"github.com/goliatone/go-methodlib/internal/navigation"
	"github.com/goliatone/go-methodlib/method"
	"github.com/goliatone/go-methodlib/pkg/interfaces"
)

// Method exports the method document.
type Method = method.Method

// Summary exports the listing card projection.
type Summary = method.Summary

// LibraryService exports the durable method store contract.
type LibraryService = library.Service

// EditorSession exports one create or edit session.
type EditorSession = editor.Session

// EditorRegistry exports the open session registry.
type EditorRegistry = editor.Registry

// Filter exports the listing filter state.
type Filter = catalog.Filter

// ImportResult exports the outcome of a markdown import run.
type ImportResult = markdown.ImportResult

// Option exports the container overrides accepted by New.
type Option = di.Option

var (
	WithBunDB          = di.WithBunDB
	WithCache          = di.WithCache
	WithLoggerProvider = di.WithLoggerProvider
	WithClock          = di.WithClock
	WithNavigator      = di.WithNavigator
)

// Module represents the top level method library runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Library returns the configured library service.
func (m *Module) Library() LibraryService {
	return m.container.LibraryService()
}

// Editors returns the session registry backing the editor.
func (m *Module) Editors() *EditorRegistry {
	return m.container.Editors()
}

// NewFilter returns a cleared listing filter in the configured mode.
func (m *Module) NewFilter() *Filter {
	return catalog.NewFilter(m.container.CatalogMode())
}

// Markdown returns the parser used to render descriptions and step bodies.
func (m *Module) Markdown() interfaces.MarkdownParser {
	return m.container.MarkdownParser()
}

// Paths returns the urlkit backed page path builder.
func (m *Module) Paths() *navigation.Paths {
	return m.container.Paths()
}

// Bootstrap seeds the sample library and runs the start-up markdown import.
func (m *Module) Bootstrap(ctx context.Context) error {
	return m.container.Bootstrap(ctx)
}

// RunJobs processes autosave ticks until ctx is canceled.
func (m *Module) RunJobs(ctx context.Context) error {
	return m.container.RunJobs(ctx)
}

// HTTPHandler returns the JSON API mounted under the configured base path.
func (m *Module) HTTPHandler() http.Handler {
	c := m.container
	api := methodshttp.NewAPI(
		methodshttp.WithBasePath(c.Config.HTTP.BasePath),
		methodshttp.WithLibraryService(c.LibraryService()),
		methodshttp.WithEditorRegistry(c.Editors()),
		methodshttp.WithEditorCommands(c.EditorCommands()),
		methodshttp.WithRules(c.RuleOptions()...),
		methodshttp.WithCatalogMode(c.CatalogMode()),
		methodshttp.WithLogger(logging.HTTPLogger(c.LoggerProvider())),
	)
	return api.Handler()
}

// Close releases the database and command subscriptions.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
