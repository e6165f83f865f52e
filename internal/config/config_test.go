package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/procure/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newViper(t))
	require.NoError(t, err)

	assert.Empty(t, cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.APITimeout)
	assert.Equal(t, 1, cfg.RetryAttempts)
	assert.Equal(t, 5, cfg.PageSize)
	assert.Equal(t, ThemeDefault, cfg.Theme)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "procure.db", filepath.Base(cfg.DatabasePath))
	assert.Equal(t, "procure.log", filepath.Base(cfg.LogFile))

	require.ErrorIs(t, cfg.RequireAPI(), common.ErrMissingConfig)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PROCURE_API_BASE_URL", "https://procure.example.com/")
	t.Setenv("PROCURE_API_TIMEOUT", "5s")
	t.Setenv("PROCURE_CATALOG_PAGE_SIZE", "15")
	t.Setenv("PROCURE_TUI_THEME", "Catppuccin-Mocha")

	cfg, err := Load(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, "https://procure.example.com", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.Equal(t, 15, cfg.PageSize)
	assert.Equal(t, ThemeCatppuccinMocha, cfg.Theme)
	require.NoError(t, cfg.RequireAPI())
}

func TestLoadFromConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: http://localhost:8080
  retry_attempts: 3
catalog:
  page_size: 10
logging:
  level: debug
  format: json
`), 0600))

	v := newViper(t)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, 3, cfg.RetryOptions().MaxAttempts)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value any
		name  string
	}{
		{name: "page size", key: KeyCatalogPageSize, value: 7},
		{name: "retry attempts", key: KeyAPIRetryAttempts, value: 0},
		{name: "timeout", key: KeyAPITimeout, value: "-1s"},
		{name: "theme", key: KeyTUITheme, value: "neon"},
		{name: "log level", key: KeyLogLevel, value: "loud"},
		{name: "log format", key: KeyLogFormat, value: "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper(t)
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			require.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	const key = "PROCURE_TEST_DOTENV_VALUE"
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=from-dotenv\n"), 0600))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-dotenv", os.Getenv(key))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("PROCURE_TEST_DIR", "/srv/data")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "db.sqlite"), ExpandPath("~/db.sqlite"))
	assert.Equal(t, "/srv/data/db.sqlite", ExpandPath("$PROCURE_TEST_DIR/db.sqlite"))
}

func TestDefaultPathsHonorXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	t.Setenv("XDG_STATE_HOME", "/xdg/state")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")

	assert.Equal(t, "/xdg/data/procure/procure.db", DefaultDatabasePath())
	assert.Equal(t, "/xdg/state/procure/procure.log", DefaultLogPath())
	assert.Equal(t, "/xdg/config/procure", ConfigDir())
}
