package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrStorageDriverUnknown indicates an unsupported storage driver.
var ErrStorageDriverUnknown = errors.New("sitebuilder config: storage driver is invalid")

// ErrStorageDSNRequired ensures SQL drivers come with a connection string.
var ErrStorageDSNRequired = errors.New("sitebuilder config: storage dsn is required for sql drivers")

// ErrCacheTTLInvalid rejects non-positive cache TTLs when the cache is enabled.
var ErrCacheTTLInvalid = errors.New("sitebuilder config: cache ttl must be positive when cache is enabled")
var ErrRenderBaseURLRequired = errors.New("sitebuilder config: render base url is required")
var ErrLoggingLevelInvalid = errors.New("sitebuilder config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("sitebuilder config: logging format is invalid")

// Config aggregates adapter bindings and rendering defaults for the module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Storage StorageConfig
	Cache   CacheConfig
	Render  RenderConfig
	Logging LoggingConfig
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Driver string
	DSN    string
}

// CacheConfig captures compiled-template cache behaviour.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// RenderConfig supplies tenant-independent rendering fallbacks.
type RenderConfig struct {
	SiteName           string
	DefaultTitle       string
	DefaultDescription string
	BaseURL            string
}

// LoggingConfig captures options for runtime logging.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns a Config suitable for local development: in-memory
// repositories, caching on, and console logging.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Driver: "memory",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Render: RenderConfig{
			SiteName:           "Site Builder",
			DefaultTitle:       "Untitled Page",
			DefaultDescription: "A page built with Site Builder.",
			BaseURL:            "http://localhost:8080",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	driver := strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	switch driver {
	case "", "memory":
	case "sqlite", "postgres":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrStorageDSNRequired, driver)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, driver)
	}
	if cfg.Cache.Enabled && cfg.Cache.DefaultTTL <= 0 {
		return ErrCacheTTLInvalid
	}
	if strings.TrimSpace(cfg.Render.BaseURL) == "" {
		return ErrRenderBaseURLRequired
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
