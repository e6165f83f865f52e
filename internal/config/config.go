package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/procure/internal/catalog"
	"github.com/Veraticus/procure/internal/common"
	"github.com/Veraticus/procure/internal/service"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PROCURE_API_BASE_URL.
const EnvPrefix = "PROCURE"

// Viper keys.
const (
	KeyAPIBaseURL       = "api.base_url"
	KeyAPITimeout       = "api.timeout"
	KeyAPIRetryAttempts = "api.retry_attempts"
	KeyDatabasePath     = "database.path"
	KeyCatalogPageSize  = "catalog.page_size"
	KeyTUITheme         = "tui.theme"
	KeyLogLevel         = "logging.level"
	KeyLogFormat        = "logging.format"
	KeyLogFile          = "logging.file"
)

// Supported themes.
const (
	ThemeDefault         = "default"
	ThemeCatppuccinMocha = "catppuccin-mocha"
)

// Config is the resolved application configuration.
type Config struct {
	APIBaseURL    string
	DatabasePath  string
	Theme         string
	LogLevel      string
	LogFormat     string
	LogFile       string
	APITimeout    time.Duration
	RetryAttempts int
	PageSize      int
}

// SetDefaults registers defaults and environment binding on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPITimeout, 30*time.Second)
	v.SetDefault(KeyAPIRetryAttempts, 1)
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath())
	v.SetDefault(KeyCatalogPageSize, catalog.DefaultPageSize)
	v.SetDefault(KeyTUITheme, ThemeDefault)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyLogFile, DefaultLogPath())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads a .env file into the process environment. Variables already set win.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	slog.Debug("Loaded environment file", "path", path)
	return nil
}

// Load resolves a Config from v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		APIBaseURL:    strings.TrimRight(strings.TrimSpace(v.GetString(KeyAPIBaseURL)), "/"),
		APITimeout:    v.GetDuration(KeyAPITimeout),
		RetryAttempts: v.GetInt(KeyAPIRetryAttempts),
		DatabasePath:  ExpandPath(v.GetString(KeyDatabasePath)),
		PageSize:      v.GetInt(KeyCatalogPageSize),
		Theme:         strings.ToLower(v.GetString(KeyTUITheme)),
		LogLevel:      v.GetString(KeyLogLevel),
		LogFormat:     v.GetString(KeyLogFormat),
		LogFile:       ExpandPath(v.GetString(KeyLogFile)),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that have a fixed domain.
func (c *Config) Validate() error {
	if c.APITimeout <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %s", common.ErrInvalidConfig, KeyAPITimeout, c.APITimeout)
	}
	if c.RetryAttempts < 1 {
		return fmt.Errorf("%w: %s must be at least 1, got %d", common.ErrInvalidConfig, KeyAPIRetryAttempts, c.RetryAttempts)
	}
	if !catalog.IsValidPageSize(c.PageSize) {
		return fmt.Errorf("%w: %s must be one of %v, got %d", common.ErrInvalidConfig, KeyCatalogPageSize, catalog.PageSizes, c.PageSize)
	}
	switch c.Theme {
	case ThemeDefault, ThemeCatppuccinMocha:
	default:
		return fmt.Errorf("%w: unknown theme %q", common.ErrInvalidConfig, c.Theme)
	}
	if _, err := common.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: invalid log format: %s", common.ErrInvalidConfig, c.LogFormat)
	}
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyDatabasePath)
	}
	return nil
}

// RequireAPI reports ErrMissingConfig when no backend URL is configured.
func (c *Config) RequireAPI() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("%w: %s (or %s_API_BASE_URL)", common.ErrMissingConfig, KeyAPIBaseURL, EnvPrefix)
	}
	return nil
}

// RetryOptions maps the retry setting onto the shared retry helper.
func (c *Config) RetryOptions() service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  c.RetryAttempts,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   2,
	}
}
