package sitebuilder

import "github.com/goliatone/go-sitebuilder/internal/runtimeconfig"

var (
	ErrStorageDriverUnknown  = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired    = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid       = runtimeconfig.ErrCacheTTLInvalid
	ErrRenderBaseURLRequired = runtimeconfig.ErrRenderBaseURLRequired
	ErrLoggingLevelInvalid   = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid  = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	StorageConfig = runtimeconfig.StorageConfig
	CacheConfig   = runtimeconfig.CacheConfig
	RenderConfig  = runtimeconfig.RenderConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
