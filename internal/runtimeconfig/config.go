package runtimeconfig

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

var (
	ErrStorageProviderUnknown  = errors.New("methods config: storage provider is invalid")
	ErrStorageDialectUnknown   = errors.New("methods config: storage dialect is invalid")
	ErrStorageDSNRequired      = errors.New("methods config: storage dsn is required for the bun provider")
	ErrCacheTTLInvalid         = errors.New("methods config: cache ttl must be positive when cache is enabled")
	ErrCacheRequiresBun        = errors.New("methods config: repository cache requires the bun storage provider")
	ErrDraftsProviderUnknown   = errors.New("methods config: drafts provider is invalid")
	ErrDraftsDirRequired       = errors.New("methods config: drafts directory is required for the file provider")
	ErrDraftsRequireBunStorage = errors.New("methods config: bun drafts require the bun storage provider")
	ErrAutosaveIntervalInvalid = errors.New("methods config: autosave interval must be positive")
	ErrAttachmentLimitInvalid  = errors.New("methods config: attachment limits must be zero or positive")
	ErrCatalogModeUnknown      = errors.New("methods config: catalog filter mode is invalid")
	ErrMarkdownDirRequired     = errors.New("methods config: markdown directory is required when import is enabled")
	ErrLoggingProviderUnknown  = errors.New("methods config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("methods config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("methods config: logging format is invalid")
	ErrHTTPAddrRequired        = errors.New("methods config: http address is required")
)

// Config aggregates the adapters and behaviour toggles of the method library.
type Config struct {
	Storage     StorageConfig
	Cache       CacheConfig
	Drafts      DraftsConfig
	Autosave    AutosaveConfig
	Attachments AttachmentsConfig
	Catalog     CatalogConfig
	Validation  ValidationConfig
	Library     LibraryConfig
	Markdown    MarkdownConfig
	Navigation  NavigationConfig
	Commands    CommandsConfig
	Logging     LoggingConfig
	HTTP        HTTPConfig
}

// StorageConfig selects the method store. Provider is memory or bun; the bun
// provider opens DSN with the sqlite or postgres dialect.
type StorageConfig struct {
	Provider string
	Dialect  string
	DSN      string
}

// CacheConfig wraps the bun method repository with go-repository-cache.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// DraftsConfig selects where autosave snapshots live.
type DraftsConfig struct {
	Provider string
	Dir      string
	Slot     string
}

// AutosaveConfig controls the snapshot tick of open editor sessions.
type AutosaveConfig struct {
	Enabled bool
	// Interval between snapshots of one session.
	Interval time.Duration
	// PollInterval is how often the job worker looks for due ticks.
	PollInterval time.Duration
	// BatchSize caps the ticks handled per poll. Zero uses the worker default.
	BatchSize int
}

// AttachmentsConfig caps upload sizes in bytes. Zero keeps the default.
type AttachmentsConfig struct {
	MaxDownloadBytes int64
	MaxVideoBytes    int64
	MaxAudioBytes    int64
}

// CatalogConfig picks the listing filter mode: conjunctive or search_only.
type CatalogConfig struct {
	Mode string
}

type ValidationConfig struct {
	ExpertRules bool
}

// LibraryConfig controls the sample library and known tag list.
type LibraryConfig struct {
	Seed      bool
	KnownTags []string
}

// MarkdownConfig configures rendering and directory imports.
type MarkdownConfig struct {
	ImportOnStart bool
	Dir           string
	Publish       bool
	Parser        MarkdownParserConfig
}

// MarkdownParserConfig mirrors interfaces.ParseOptions.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// NavigationConfig builds page URLs. A nil RouteConfig uses the default
// method routes under BaseURL.
type NavigationConfig struct {
	RouteConfig *urlkit.Config
	Group       string
	BaseURL     string
}

// CommandsConfig wires command handlers into go-command registries.
type CommandsConfig struct {
	AutoRegisterDispatcher bool
	AutoRegisterCron       bool
	JobsCron               string
}

type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

type HTTPConfig struct {
	Addr     string
	BasePath string
}

// DefaultConfig runs everything in memory with console logging.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Provider: "memory",
			Dialect:  "sqlite",
		},
		Cache: CacheConfig{
			DefaultTTL: time.Minute,
		},
		Drafts: DraftsConfig{
			Provider: "memory",
			Dir:      "drafts",
		},
		Autosave: AutosaveConfig{
			Enabled:      true,
			Interval:     30 * time.Second,
			PollInterval: 5 * time.Second,
		},
		Catalog: CatalogConfig{
			Mode: "conjunctive",
		},
		Library: LibraryConfig{
			Seed: true,
		},
		Markdown: MarkdownConfig{
			Dir: "methods",
		},
		Navigation: NavigationConfig{
			Group: "methods",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		HTTP: HTTPConfig{
			Addr:     ":8080",
			BasePath: "/api",
		},
	}
}

// Validate checks the configuration for contradictions.
func (cfg Config) Validate() error {
	storage := normalize(cfg.Storage.Provider)
	switch storage {
	case "memory":
	case "bun":
		if !slices.Contains([]string{"sqlite", "postgres"}, normalize(cfg.Storage.Dialect)) {
			return fmt.Errorf("%w: %s", ErrStorageDialectUnknown, cfg.Storage.Dialect)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}

	if cfg.Cache.Enabled {
		if storage != "bun" {
			return ErrCacheRequiresBun
		}
		if cfg.Cache.DefaultTTL <= 0 {
			return ErrCacheTTLInvalid
		}
	}

	switch normalize(cfg.Drafts.Provider) {
	case "memory":
	case "file":
		if strings.TrimSpace(cfg.Drafts.Dir) == "" {
			return ErrDraftsDirRequired
		}
	case "bun":
		if storage != "bun" {
			return ErrDraftsRequireBunStorage
		}
	default:
		return fmt.Errorf("%w: %s", ErrDraftsProviderUnknown, cfg.Drafts.Provider)
	}

	if cfg.Autosave.Enabled && (cfg.Autosave.Interval <= 0 || cfg.Autosave.PollInterval <= 0) {
		return ErrAutosaveIntervalInvalid
	}
	if cfg.Attachments.MaxDownloadBytes < 0 || cfg.Attachments.MaxVideoBytes < 0 || cfg.Attachments.MaxAudioBytes < 0 {
		return ErrAttachmentLimitInvalid
	}
	if mode := normalize(cfg.Catalog.Mode); mode != "" && !slices.Contains([]string{"conjunctive", "search_only", "search-only"}, mode) {
		return fmt.Errorf("%w: %s", ErrCatalogModeUnknown, cfg.Catalog.Mode)
	}
	if cfg.Markdown.ImportOnStart && strings.TrimSpace(cfg.Markdown.Dir) == "" {
		return ErrMarkdownDirRequired
	}

	provider := normalize(cfg.Logging.Provider)
	if !slices.Contains([]string{"console", "gologger"}, provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Logging.Provider)
	}
	if level := normalize(cfg.Logging.Level); level != "" && !slices.Contains([]string{"trace", "debug", "info", "warn", "warning", "error", "fatal"}, level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, cfg.Logging.Level)
	}
	if format := normalize(cfg.Logging.Format); provider == "gologger" && format != "" && !slices.Contains([]string{"json", "console", "pretty"}, format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, cfg.Logging.Format)
	}

	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		return ErrHTTPAddrRequired
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

