package di

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-methodlib/internal/catalog"
	"github.com/goliatone/go-methodlib/internal/commands"
	editorcmd "github.com/goliatone/go-methodlib/internal/commands/editor"
	jobscmd "github.com/goliatone/go-methodlib/internal/commands/jobs"
	librarycmd "github.com/goliatone/go-methodlib/internal/commands/library"
	markdowncmd "github.com/goliatone/go-methodlib/internal/commands/markdown"
	"github.com/goliatone/go-methodlib/internal/drafts"
	"github.com/goliatone/go-methodlib/internal/editor"
	"github.com/goliatone/go-methodlib/internal/jobs"
	"github.com/goliatone/go-methodlib/internal/library"
	"github.com/goliatone/go-methodlib/internal/logging"
	"github.com/goliatone/go-methodlib/internal/logging/console"
	"github.com/goliatone/go-methodlib/internal/logging/gologger"
	"github.com/goliatone/go-methodlib/internal/markdown"
	"github.com/goliatone/go-methodlib/internal/navigation"
	"github.com/goliatone/go-methodlib/internal/runtimeconfig"
	"github.com/goliatone/go-methodlib/internal/scheduler"
	"github.com/goliatone/go-methodlib/internal/validation"
	"github.com/goliatone/go-methodlib/pkg/interfaces"
	"github.com/goliatone/go-methodlib/pkg/storage"
	command "github.com/goliatone/go-command"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// Container wires the method library: storage, services, the editor session
// registry, the autosave scheduler and the command handlers.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger
	clock          func() time.Time

	bunDB         *bun.DB
	ownsDB        bool
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	methodRepo library.Repository
	parser     *markdown.GoldmarkParser
	librarySvc library.Service
	draftStore drafts.Store
	importer   *markdown.Importer

	paths     *navigation.Paths
	navigator editor.Navigator
	history   *navigation.History

	scheduler interfaces.Scheduler
	registry  *editor.Registry
	autosaver *editor.Autosaver
	audit     *jobs.InMemoryAuditRecorder
	worker    *jobs.Worker

	editorHandlers *editorcmd.HandlerSet
	importHandler  *commands.Handler[markdowncmd.ImportMethodsCommand]
	seedHandler    *commands.Handler[librarycmd.SeedLibraryCommand]
	jobsHandler    *commands.Handler[jobscmd.ProcessJobsCommand]

	registration commands.RegistrationOptions

	mu           sync.Mutex
	lastImport   *markdown.ImportResult
	subscription *commands.RegistrationResult
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB supplies an already opened database for the bun providers.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the go-repository-cache service wrapping bun repositories.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider replaces the provider selected by the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithScheduler replaces the in-memory job scheduler.
func WithScheduler(s interfaces.Scheduler) Option {
	return func(c *Container) {
		c.scheduler = s
	}
}

// WithNavigator replaces the recording navigator editor sessions publish to.
func WithNavigator(navigator editor.Navigator) Option {
	return func(c *Container) {
		c.navigator = navigator
	}
}

// WithCommandRegistry registers handlers with registry during construction
// when Commands.AutoRegisterDispatcher or AutoRegisterCron is set.
func WithCommandRegistry(registry commands.CommandRegistry) Option {
	return func(c *Container) {
		c.registration.Registry = registry
	}
}

func WithCommandDispatcher(dispatcher commands.CommandDispatcher) Option {
	return func(c *Container) {
		c.registration.Dispatcher = dispatcher
	}
}

func WithCronRegistrar(registrar commands.CronRegistrar) Option {
	return func(c *Container) {
		c.registration.CronRegistrar = registrar
	}
}

// NewContainer validates cfg and builds every module.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		clock:  time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogger(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(context.Background()); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	if err := c.configureDrafts(); err != nil {
		c.closeDB()
		return nil, err
	}
	if err := c.configureNavigation(); err != nil {
		c.closeDB()
		return nil, err
	}
	c.configureServices()
	c.configureEditor()
	c.configureCommands()

	if c.Config.Commands.AutoRegisterDispatcher || c.Config.Commands.AutoRegisterCron {
		opts := c.registration
		if !c.Config.Commands.AutoRegisterDispatcher {
			opts.Dispatcher = nil
		}
		if !c.Config.Commands.AutoRegisterCron {
			opts.CronRegistrar = nil
		}
		if _, err := c.RegisterCommands(opts); err != nil {
			c.closeDB()
			return nil, err
		}
	}

	return c, nil
}

func (c *Container) configureLogger() error {
	if c.loggerProvider == nil {
		logCfg := c.Config.Logging
		switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
		case "gologger":
			provider, err := gologger.NewProvider(gologger.Config{
				Level:     logCfg.Level,
				Format:    logCfg.Format,
				AddSource: logCfg.AddSource,
				Focus:     logCfg.Focus,
			})
			if err != nil {
				return err
			}
			c.loggerProvider = provider
		default:
			level, _ := console.ParseLevel(logCfg.Level)
			c.loggerProvider = console.NewProvider(console.Options{
				Writer:   os.Stderr,
				TimeFunc: c.clock,
				MinLevel: &level,
			})
		}
	}
	c.logger = logging.ModuleLogger(c.loggerProvider, "methods.container")
	return nil
}

func (c *Container) configureStorage(ctx context.Context) error {
	if !strings.EqualFold(strings.TrimSpace(c.Config.Storage.Provider), "bun") {
		return nil
	}
	if c.bunDB == nil {
		db, err := storage.Open(ctx, storage.Config{
			Dialect: c.Config.Storage.Dialect,
			DSN:     c.Config.Storage.DSN,
		})
		if err != nil {
			return fmt.Errorf("methods container: %w", err)
		}
		c.bunDB = db
		c.ownsDB = true
	}

	models := []any{(*library.MethodRecord)(nil)}
	if strings.EqualFold(strings.TrimSpace(c.Config.Drafts.Provider), "bun") {
		models = append(models, (*drafts.SnapshotRecord)(nil))
	}
	if err := storage.EnsureSchema(ctx, c.bunDB, models...); err != nil {
		c.closeDB()
		return fmt.Errorf("methods container: %w", err)
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled || c.bunDB == nil {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.DefaultTTL > 0 {
			cfg.TTL = c.Config.Cache.DefaultTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err != nil {
			c.logger.Warn("container.cache_disabled", "error", err)
		} else {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB != nil {
		c.methodRepo = library.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		return
	}
	c.methodRepo = library.NewMemoryRepository()
}

func (c *Container) configureDrafts() error {
	draftOpts := []drafts.Option{drafts.WithClock(c.clock)}
	if slot := strings.TrimSpace(c.Config.Drafts.Slot); slot != "" {
		draftOpts = append(draftOpts, drafts.WithSlot(slot))
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Drafts.Provider)) {
	case "file":
		store, err := drafts.NewFileStore(c.Config.Drafts.Dir, draftOpts...)
		if err != nil {
			return err
		}
		c.draftStore = store
	case "bun":
		c.draftStore = drafts.NewBunStore(c.bunDB, draftOpts...)
	default:
		c.draftStore = drafts.NewMemoryStore(draftOpts...)
	}
	c.draftStore = drafts.WithLogging(c.draftStore, logging.DraftsLogger(c.loggerProvider))
	return nil
}

func (c *Container) configureNavigation() error {
	navCfg := c.Config.Navigation
	routes := navCfg.RouteConfig
	if routes == nil {
		routes = navigation.DefaultRouteConfig(navCfg.BaseURL)
	}
	paths, err := navigation.New(routes, navCfg.Group)
	if err != nil {
		return err
	}
	c.paths = paths

	if c.navigator == nil {
		c.history = navigation.NewHistory(logging.ModuleLogger(c.loggerProvider, "methods.navigation"))
		c.navigator = c.history
	}
	return nil
}

func (c *Container) configureServices() {
	parserCfg := c.Config.Markdown.Parser
	c.parser = markdown.NewGoldmarkParser(interfaces.ParseOptions{
		Extensions: parserCfg.Extensions,
		Sanitize:   parserCfg.Sanitize,
		HardWraps:  parserCfg.HardWraps,
		SafeMode:   parserCfg.SafeMode,
	})

	c.librarySvc = library.NewService(c.methodRepo,
		library.WithClock(c.clock),
		library.WithLogger(logging.LibraryLogger(c.loggerProvider)),
		library.WithMarkdown(c.parser),
		library.WithKnownTags(c.Config.Library.KnownTags...),
	)
	c.importer = markdown.NewImporter(c.librarySvc, logging.MarkdownLogger(c.loggerProvider))
}

// Limits returns the attachment rules with configured size caps applied.
func (c *Container) Limits() editor.Limits {
	limits := editor.DefaultLimits()
	caps := c.Config.Attachments
	if caps.MaxDownloadBytes > 0 {
		limits = limits.WithMaxBytes(editor.SlotDownloads, caps.MaxDownloadBytes)
	}
	if caps.MaxVideoBytes > 0 {
		limits = limits.WithMaxBytes(editor.SlotVideo, caps.MaxVideoBytes)
	}
	if caps.MaxAudioBytes > 0 {
		limits = limits.WithMaxBytes(editor.SlotAudio, caps.MaxAudioBytes)
	}
	return limits
}

func (c *Container) configureEditor() {
	c.registry = editor.NewRegistry(editor.Options{
		Store:      c.librarySvc,
		Drafts:     c.draftStore,
		Navigator:  c.navigator,
		Limits:     c.Limits(),
		Rules:      c.RuleOptions(),
		Logger:     logging.EditorLogger(c.loggerProvider),
		Clock:      c.clock,
		MethodPath: c.paths.MethodPath,
	})

	if c.scheduler == nil {
		if c.Config.Autosave.Enabled {
			c.scheduler = scheduler.NewInMemory(scheduler.WithClock(c.clock))
		} else {
			c.scheduler = scheduler.NewNoOp()
		}
	}

	jobsLogger := logging.JobsLogger(c.loggerProvider)
	c.audit = jobs.NewInMemoryAuditRecorder(100)
	workerOpts := []jobs.Option{
		jobs.WithAuditRecorder(c.audit),
		jobs.WithLogger(jobsLogger),
		jobs.WithClock(c.clock),
		jobs.WithBatchSize(c.Config.Autosave.BatchSize),
	}
	if c.Config.Autosave.Enabled {
		c.autosaver = editor.NewAutosaver(c.registry, c.scheduler,
			editor.WithAutosaveInterval(c.Config.Autosave.Interval),
			editor.WithAutosaveClock(c.clock),
			editor.WithAutosaveLogger(jobsLogger),
		)
		workerOpts = append(workerOpts, jobs.WithHandler(scheduler.JobTypeDraftAutosave, c.autosaver.Handle))
	}
	c.worker = jobs.NewWorker(c.scheduler, workerOpts...)
}

func (c *Container) configureCommands() {
	c.editorHandlers = editorcmd.NewHandlerSet(c.registry, c.loggerProvider)
	c.importHandler = markdowncmd.NewImportHandler(
		c.importer,
		commands.CommandLogger(c.loggerProvider, "markdown"),
		func(result markdown.ImportResult) {
			c.mu.Lock()
			c.lastImport = &result
			c.mu.Unlock()
		},
	)
	c.seedHandler = librarycmd.NewSeedHandler(c.librarySvc, commands.CommandLogger(c.loggerProvider, "library"))
	c.jobsHandler = jobscmd.NewProcessJobsHandler(c.worker, commands.CommandLogger(c.loggerProvider, "jobs"))
}

// RuleOptions returns the validation rule set selected by config.
func (c *Container) RuleOptions() []validation.RuleOption {
	return []validation.RuleOption{validation.WithExpertRules(c.Config.Validation.ExpertRules)}
}

// CommandHandlers lists every handler in registration order.
func (c *Container) CommandHandlers() []any {
	handlers := append([]any{}, c.editorHandlers.All()...)
	return append(handlers, c.importHandler, c.seedHandler, c.jobsHandler)
}

// RegisterCommands hands the container's handlers to the given integrations.
// The jobs handler is scheduled on the cron registrar with Commands.JobsCron.
func (c *Container) RegisterCommands(opts commands.RegistrationOptions) (*commands.RegistrationResult, error) {
	result, err := commands.Register(c.CommandHandlers(), opts)
	if opts.CronRegistrar != nil {
		cronErr := jobscmd.RegisterCron(jobscmd.CronRegistrar(opts.CronRegistrar), c.jobsHandler, command.HandlerConfig{
			Expression: strings.TrimSpace(c.Config.Commands.JobsCron),
		})
		err = errors.Join(err, cronErr)
	}
	c.mu.Lock()
	c.subscription = result
	c.mu.Unlock()
	return result, err
}

// Bootstrap seeds the sample library and imports the markdown directory when
// enabled. Seeding is skipped when the store already holds methods.
func (c *Container) Bootstrap(ctx context.Context) error {
	if c.Config.Library.Seed {
		existing, err := c.librarySvc.List(ctx)
		if err != nil {
			return err
		}
		if len(existing) == 0 {
			if err := c.seedHandler.Execute(ctx, librarycmd.SeedLibraryCommand{}); err != nil {
				return err
			}
		}
	}
	if c.Config.Markdown.ImportOnStart {
		if err := c.importHandler.Execute(ctx, markdowncmd.ImportMethodsCommand{
			Directory: c.Config.Markdown.Dir,
			Publish:   c.Config.Markdown.Publish,
		}); err != nil {
			return err
		}
	}
	return nil
}

// RunJobs polls the scheduler until ctx is canceled. It returns immediately
// when autosave is disabled.
func (c *Container) RunJobs(ctx context.Context) error {
	if !c.Config.Autosave.Enabled {
		return nil
	}
	return c.worker.Run(ctx, c.Config.Autosave.PollInterval)
}

// Close releases dispatcher subscriptions and the database when the container
// opened it.
func (c *Container) Close() error {
	c.mu.Lock()
	sub := c.subscription
	c.subscription = nil
	c.mu.Unlock()
	sub.Unsubscribe()
	return c.closeDB()
}

func (c *Container) closeDB() error {
	if c.bunDB == nil || !c.ownsDB {
		return nil
	}
	err := c.bunDB.Close()
	c.bunDB = nil
	return err
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }

// Logger returns a module logger from the configured provider.
func (c *Container) Logger(module string) interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, module)
}

func (c *Container) BunDB() *bun.DB { return c.bunDB }

func (c *Container) MethodRepository() library.Repository { return c.methodRepo }

func (c *Container) LibraryService() library.Service { return c.librarySvc }

func (c *Container) MarkdownParser() interfaces.MarkdownParser { return c.parser }

func (c *Container) Importer() *markdown.Importer { return c.importer }

func (c *Container) DraftStore() drafts.Store { return c.draftStore }

func (c *Container) Paths() *navigation.Paths { return c.paths }

// History returns the recording navigator, or nil when WithNavigator replaced it.
func (c *Container) History() *navigation.History { return c.history }

func (c *Container) Editors() *editor.Registry { return c.registry }

func (c *Container) Scheduler() interfaces.Scheduler { return c.scheduler }

func (c *Container) Worker() *jobs.Worker { return c.worker }

func (c *Container) JobAudit() *jobs.InMemoryAuditRecorder { return c.audit }

func (c *Container) CatalogMode() catalog.Mode {
	return catalog.ParseMode(c.Config.Catalog.Mode)
}

func (c *Container) EditorCommands() *editorcmd.HandlerSet { return c.editorHandlers }

func (c *Container) ImportHandler() *commands.Handler[markdowncmd.ImportMethodsCommand] {
	return c.importHandler
}

func (c *Container) SeedHandler() *commands.Handler[librarycmd.SeedLibraryCommand] {
	return c.seedHandler
}

func (c *Container) JobsHandler() *commands.Handler[jobscmd.ProcessJobsCommand] {
	return c.jobsHandler
}

// LastImport returns the result of the most recent markdown import run.
func (c *Container) LastImport() (markdown.ImportResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastImport == nil {
		return markdown.ImportResult{}, false
	}
	return *c.lastImport, true
}
