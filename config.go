package journal

import "github.com/vibecircle/journal/internal/runtimeconfig"

var (
	ErrContentSourceRequired  = runtimeconfig.ErrContentSourceRequired
	ErrWriteTokenRequired     = runtimeconfig.ErrWriteTokenRequired
	ErrAdminSecretRequired    = runtimeconfig.ErrAdminSecretRequired
	ErrStoreDriverUnknown     = runtimeconfig.ErrStoreDriverUnknown
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
)

type (
	Config        = runtimeconfig.Config
	ContentConfig = runtimeconfig.ContentConfig
	AdminConfig   = runtimeconfig.AdminConfig
	StoreConfig   = runtimeconfig.StoreConfig
	SiteConfig    = runtimeconfig.SiteConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

// DefaultConfig returns opinionated defaults for local development.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// ConfigFromEnv overlays environment variables onto the defaults.
func ConfigFromEnv() Config {
	return runtimeconfig.FromEnv()
}
