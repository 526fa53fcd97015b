// Package runtimeconfig aggregates the settings the journal binaries share.
// Fields intentionally use simple types so host applications can extend
// them later.
package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

var (
	ErrContentSourceRequired  = errors.New("journal config: content project id and dataset (or a base url) are required")
	ErrWriteTokenRequired     = errors.New("journal config: write token is required when admin endpoints are enabled")
	ErrAdminSecretRequired    = errors.New("journal config: admin secret is required when admin endpoints are enabled")
	ErrStoreDriverUnknown     = errors.New("journal config: store driver is invalid")
	ErrLoggingProviderUnknown = errors.New("journal config: logging provider is invalid")
	ErrLoggingLevelInvalid    = errors.New("journal config: logging level is invalid")
)

// Config aggregates the runtime settings for the journal module.
type Config struct {
	Content ContentConfig
	Admin   AdminConfig
	Store   StoreConfig
	Site    SiteConfig
	Logging LoggingConfig
}

// ContentConfig carries the upstream content service connection.
type ContentConfig struct {
	// BaseURL overrides the derived service URL, mainly for self-hosted
	// gateways and tests.
	BaseURL    string
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	UseCDN     bool
}

// AdminConfig gates the write endpoints.
type AdminConfig struct {
	Enabled    bool
	Secret     string
	ListenAddr string
	BasePath   string
}

// StoreConfig selects the local snapshot store.
type StoreConfig struct {
	Driver   string
	DSN      string
	Cache    bool
	CacheTTL time.Duration
}

// SiteConfig carries the public site settings link building uses.
type SiteConfig struct {
	BaseURL string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for local development.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			Dataset:    "production",
			APIVersion: "2024-01-01",
			UseCDN:     true,
		},
		Admin: AdminConfig{
			ListenAddr: ":8080",
			BasePath:   "/api",
		},
		Store: StoreConfig{
			Driver:   "sqlite",
			DSN:      "file:journal.db?cache=shared",
			Cache:    true,
			CacheTTL: time.Minute,
		},
		Site: SiteConfig{
			BaseURL: "http://localhost:8080",
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
		},
	}
}

// FromEnv overlays environment variables onto the defaults. Unset
// variables keep their default values.
func FromEnv() Config {
	cfg := DefaultConfig()
	overlay(&cfg.Content.BaseURL, "JOURNAL_CONTENT_BASE_URL")
	overlay(&cfg.Content.ProjectID, "JOURNAL_CONTENT_PROJECT_ID")
	overlay(&cfg.Content.Dataset, "JOURNAL_CONTENT_DATASET")
	overlay(&cfg.Content.APIVersion, "JOURNAL_CONTENT_API_VERSION")
	overlay(&cfg.Content.Token, "JOURNAL_CONTENT_TOKEN")
	overlay(&cfg.Admin.Secret, "ADMIN_SECRET")
	overlay(&cfg.Admin.ListenAddr, "JOURNAL_LISTEN_ADDR")
	overlay(&cfg.Store.Driver, "JOURNAL_STORE_DRIVER")
	overlay(&cfg.Store.DSN, "JOURNAL_STORE_DSN")
	overlay(&cfg.Site.BaseURL, "JOURNAL_SITE_URL")
	overlay(&cfg.Logging.Level, "JOURNAL_LOG_LEVEL")
	if cfg.Admin.Secret != "" && cfg.Content.Token != "" {
		cfg.Admin.Enabled = true
	}
	return cfg
}

func overlay(target *string, key string) {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		*target = val
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Content.BaseURL == "" && (cfg.Content.ProjectID == "" || cfg.Content.Dataset == "") {
		return ErrContentSourceRequired
	}
	if cfg.Admin.Enabled {
		if strings.TrimSpace(cfg.Admin.Secret) == "" {
			return ErrAdminSecretRequired
		}
		if strings.TrimSpace(cfg.Content.Token) == "" {
			return ErrWriteTokenRequired
		}
	}
	if !isSupportedDriver(cfg.Store.Driver) {
		return fmt.Errorf("%w: %s", ErrStoreDriverUnknown, cfg.Store.Driver)
	}
	if provider := normalize(cfg.Logging.Provider); provider != "" && !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := normalize(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedDriver(driver string) bool {
	switch normalize(driver) {
	case "sqlite", "postgres", "memory":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger", "noop":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}
