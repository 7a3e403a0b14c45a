package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-methodlib"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("methodlib: %v", err)
	}
}

func parseConfig(args []string) (methodlib.Config, error) {
	cfg := methodlib.DefaultConfig()

	fs := flag.NewFlagSet("methodlib", flag.ExitOnError)
	fs.StringVar(&cfg.HTTP.Addr, "addr", cfg.HTTP.Addr, "HTTP listen address")
	fs.StringVar(&cfg.HTTP.BasePath, "base-path", cfg.HTTP.BasePath, "Path the JSON API mounts under")
	fs.StringVar(&cfg.Storage.Provider, "storage", cfg.Storage.Provider, "Method store: memory or bun")
	fs.StringVar(&cfg.Storage.Dialect, "dialect", cfg.Storage.Dialect, "SQL dialect for the bun store: sqlite or postgres")
	fs.StringVar(&cfg.Storage.DSN, "dsn", cfg.Storage.DSN, "Database DSN for the bun store")
	fs.BoolVar(&cfg.Cache.Enabled, "cache", cfg.Cache.Enabled, "Cache bun repository reads")
	fs.DurationVar(&cfg.Cache.DefaultTTL, "cache-ttl", cfg.Cache.DefaultTTL, "Repository cache TTL")
	fs.StringVar(&cfg.Drafts.Provider, "drafts", cfg.Drafts.Provider, "Snapshot store: memory, file or bun")
	fs.StringVar(&cfg.Drafts.Dir, "drafts-dir", cfg.Drafts.Dir, "Directory for the file snapshot store")
	fs.BoolVar(&cfg.Autosave.Enabled, "autosave", cfg.Autosave.Enabled, "Snapshot open editor sessions periodically")
	fs.DurationVar(&cfg.Autosave.Interval, "autosave-interval", cfg.Autosave.Interval, "Delay between snapshots of one session")
	fs.StringVar(&cfg.Catalog.Mode, "catalog-mode", cfg.Catalog.Mode, "Listing filter mode: conjunctive or search_only")
	fs.BoolVar(&cfg.Validation.ExpertRules, "expert-rules", cfg.Validation.ExpertRules, "Require expert names and roles")
	fs.BoolVar(&cfg.Library.Seed, "seed", cfg.Library.Seed, "Load the sample library into an empty store")
	fs.BoolVar(&cfg.Markdown.ImportOnStart, "import", cfg.Markdown.ImportOnStart, "Import the markdown directory on start")
	fs.StringVar(&cfg.Markdown.Dir, "markdown-dir", cfg.Markdown.Dir, "Directory of method markdown files")
	fs.BoolVar(&cfg.Markdown.Publish, "publish-imports", cfg.Markdown.Publish, "Publish imported methods")
	fs.StringVar(&cfg.Navigation.BaseURL, "base-url", cfg.Navigation.BaseURL, "Public base URL for method page links")
	fs.StringVar(&cfg.Logging.Provider, "log-provider", cfg.Logging.Provider, "Logger: console or gologger")
	fs.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "Log level")
	fs.StringVar(&cfg.Logging.Format, "log-format", cfg.Logging.Format, "go-logger format: json, console or pretty")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func run(args []string) error {
	cfg, err := parseConfig(args)
	if err != nil {
		return err
	}

	module, err := methodlib.New(cfg)
	if err != nil {
		return err
	}
	defer module.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := module.Bootstrap(ctx); err != nil {
		return err
	}
	logger := module.Container().Logger("methods.server")

	go func() {
		if err := module.RunJobs(ctx); err != nil {
			logger.Error("server.jobs_stopped", "error", err)
		}
	}()

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           module.HTTPHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server.listening", "addr", cfg.HTTP.Addr, "base_path", cfg.HTTP.BasePath)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("server.shutting_down")
	return server.Shutdown(shutdownCtx)
}
