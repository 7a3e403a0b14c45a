package bootstrap

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-methodlib"
	markdowncmd "github.com/goliatone/go-methodlib/internal/commands/markdown"
	"github.com/goliatone/go-methodlib/internal/di"
	"github.com/goliatone/go-methodlib/internal/logging"
	"github.com/goliatone/go-methodlib/pkg/interfaces"
)

// Options captures configuration for markdown CLI bootstraps.
type Options struct {
	// Storage is memory or bun. The bun provider needs Dialect and DSN.
	Storage        string
	Dialect        string
	DSN            string
	LogLevel       string
	ExpertRules    bool
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the method library module with the importer and logger the
// markdown commands drive.
type Module struct {
	Module   *methodlib.Module
	Importer markdowncmd.Importer
	Parser   interfaces.MarkdownParser
	Logger   interfaces.Logger
}

// BuildModule constructs a module configured for markdown operations. The
// sample library is never seeded.
func BuildModule(opts Options) (*Module, error) {
	cfg := methodlib.DefaultConfig()
	cfg.Library.Seed = false
	cfg.Autosave.Enabled = false
	cfg.Validation.ExpertRules = opts.ExpertRules

	if storage := strings.TrimSpace(opts.Storage); storage != "" {
		cfg.Storage.Provider = storage
	}
	if dialect := strings.TrimSpace(opts.Dialect); dialect != "" {
		cfg.Storage.Dialect = dialect
	}
	cfg.Storage.DSN = strings.TrimSpace(opts.DSN)
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := methodlib.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise method library: %w", err)
	}

	container := module.Container()
	return &Module{
		Module:   module,
		Importer: container.Importer(),
		Parser:   container.MarkdownParser(),
		Logger:   logging.MarkdownLogger(container.LoggerProvider()),
	}, nil
}

// Close releases the module when one was built.
func (m *Module) Close() error {
	if m == nil || m.Module == nil {
		return nil
	}
	return m.Module.Close()
}
