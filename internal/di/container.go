package di

import (
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-sitebuilder/composition"
	intcomposition "github.com/goliatone/go-sitebuilder/internal/composition"
	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/internal/logging/gologger"
	"github.com/goliatone/go-sitebuilder/internal/pages"
	"github.com/goliatone/go-sitebuilder/internal/runtimeconfig"
	"github.com/goliatone/go-sitebuilder/internal/storage"
	"github.com/goliatone/go-sitebuilder/internal/templates"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// Container wires module dependencies. Defaults are in-memory; bind a bun.DB
// to switch every repository to SQL storage.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	logProvider interfaces.LoggerProvider

	templateStore templates.RecordStore
	pageRepo      pages.PageRepository

	templateCache *templates.Cache
	transformer   *intcomposition.Transformer

	templateSvc templates.Service
	pageSvc     pages.Service
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds a bun database; repositories switch from memory to SQL.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default repository cache bindings.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the default logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.logProvider = provider
	}
}

// WithTemplateStore overrides the default template record store.
func WithTemplateStore(store templates.RecordStore) Option {
	return func(c *Container) {
		c.templateStore = store
	}
}

// WithPageRepository overrides the default page repository.
func WithPageRepository(repo pages.PageRepository) Option {
	return func(c *Container) {
		c.pageRepo = repo
	}
}

// WithTemplateService overrides the default template admin service binding.
func WithTemplateService(svc templates.Service) Option {
	return func(c *Container) {
		c.templateSvc = svc
	}
}

// WithPageService overrides the default page render service binding.
func WithPageService(svc pages.Service) Option {
	return func(c *Container) {
		c.pageSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:        cfg,
		cacheTTL:      cacheTTL,
		templateStore: templates.NewMemoryRecordStore(),
		pageRepo:      pages.NewMemoryPageRepository(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.bunDB == nil && strings.EqualFold(strings.TrimSpace(cfg.Storage.Driver), "sqlite") {
		db, err := storage.Connect(cfg.Storage)
		if err != nil {
			return nil, err
		}
		c.bunDB = db
	}

	c.configureLogging()
	c.configureCacheDefaults()
	c.configureRepositories()

	c.templateCache = templates.NewCache(
		c.templateStore,
		templates.WithCacheLogger(c.Logger("templates.cache")),
	)

	c.transformer = intcomposition.NewTransformer(
		intcomposition.WithLogger(c.Logger("composition")),
	)

	if c.templateSvc == nil {
		c.templateSvc = templates.NewService(
			c.templateStore,
			c.templateCache,
			templates.WithLogger(c.Logger("templates")),
		)
	}

	if c.pageSvc == nil {
		c.pageSvc = pages.NewService(
			c.pageRepo,
			c.templateCache,
			c.transformer,
			c.renderDefaults(),
			pages.WithLogger(c.Logger("pages")),
		)
	}

	return c, nil
}

func (c *Container) configureLogging() {
	if c.logProvider != nil {
		return
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
	})
	if err != nil {
		c.logProvider = logging.NoOpProvider{}
		return
	}
	c.logProvider = provider
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}
	c.templateStore = templates.NewBunRecordStoreWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.pageRepo = pages.NewBunPageRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

func (c *Container) renderDefaults() composition.Defaults {
	return composition.Defaults{
		SiteName:           c.Config.Render.SiteName,
		DefaultTitle:       c.Config.Render.DefaultTitle,
		DefaultDescription: c.Config.Render.DefaultDescription,
		BaseURL:            c.Config.Render.BaseURL,
	}
}

// Logger returns a named logger from the configured provider.
func (c *Container) Logger(name string) interfaces.Logger {
	if c.logProvider == nil {
		return logging.NoOp()
	}
	return c.logProvider.GetLogger(name)
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.logProvider
}

// TemplateStore exposes the configured template record store.
func (c *Container) TemplateStore() templates.RecordStore {
	return c.templateStore
}

// PageRepository exposes the configured page repository.
func (c *Container) PageRepository() pages.PageRepository {
	return c.pageRepo
}

// TemplateCache exposes the compiled-template cache.
func (c *Container) TemplateCache() *templates.Cache {
	return c.templateCache
}

// Transformer exposes the composition transformer.
func (c *Container) Transformer() *intcomposition.Transformer {
	return c.transformer
}

// TemplateService exposes the template admin service.
func (c *Container) TemplateService() templates.Service {
	return c.templateSvc
}

// PageService exposes the page render service.
func (c *Container) PageService() pages.Service {
	return c.pageSvc
}
