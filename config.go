package methodlib

import "github.com/goliatone/go-methodlib/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown  = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDialectUnknown   = runtimeconfig.ErrStorageDialectUnknown
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid         = runtimeconfig.ErrCacheTTLInvalid
	ErrCacheRequiresBun        = runtimeconfig.ErrCacheRequiresBun
	ErrDraftsProviderUnknown   = runtimeconfig.ErrDraftsProviderUnknown
	ErrDraftsDirRequired       = runtimeconfig.ErrDraftsDirRequired
	ErrDraftsRequireBunStorage = runtimeconfig.ErrDraftsRequireBunStorage
	ErrAutosaveIntervalInvalid = runtimeconfig.ErrAutosaveIntervalInvalid
	ErrAttachmentLimitInvalid  = runtimeconfig.ErrAttachmentLimitInvalid
	ErrCatalogModeUnknown      = runtimeconfig.ErrCatalogModeUnknown
	ErrMarkdownDirRequired     = runtimeconfig.ErrMarkdownDirRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrHTTPAddrRequired        = runtimeconfig.ErrHTTPAddrRequired
)

type (
	Config               = runtimeconfig.Config
	StorageConfig        = runtimeconfig.StorageConfig
	CacheConfig          = runtimeconfig.CacheConfig
	DraftsConfig         = runtimeconfig.DraftsConfig
	AutosaveConfig       = runtimeconfig.AutosaveConfig
	AttachmentsConfig    = runtimeconfig.AttachmentsConfig
	CatalogConfig        = runtimeconfig.CatalogConfig
	ValidationConfig     = runtimeconfig.ValidationConfig
	LibraryConfig        = runtimeconfig.LibraryConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	NavigationConfig     = runtimeconfig.NavigationConfig
	CommandsConfig       = runtimeconfig.CommandsConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
	HTTPConfig           = runtimeconfig.HTTPConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
