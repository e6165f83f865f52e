package tui

import (
	"time"

	"github.com/Veraticus/procure/internal/app"
	"github.com/Veraticus/procure/internal/catalog"
	"github.com/Veraticus/procure/internal/model"
	"github.com/Veraticus/procure/internal/service"
	"github.com/Veraticus/procure/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme          themes.Theme
	API            service.CatalogAPI
	Submitter      service.CartSubmitter
	Storage        service.SubmissionStore
	Router         *app.Router
	Session        model.Session
	StartPath      string
	PageSize       int
	StatusLifetime time.Duration
	Width          int
	Height         int
	AltScreen      bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:          themes.Default,
		Router:         app.NewRouter(),
		StartPath:      string(app.RouteHome),
		PageSize:       catalog.DefaultPageSize,
		StatusLifetime: 5 * time.Second,
		Width:          80,
		Height:         24,
		AltScreen:      true,
	}
}

// WithAPI sets the catalog backend.
func WithAPI(api service.CatalogAPI) Option {
	return func(c *Config) {
		c.API = api
	}
}

// WithSubmitter sets the cart submitter.
func WithSubmitter(submitter service.CartSubmitter) Option {
	return func(c *Config) {
		c.Submitter = submitter
	}
}

// WithStorage sets where the order history is read from.
func WithStorage(storage service.SubmissionStore) Option {
	return func(c *Config) {
		c.Storage = storage
	}
}

// WithSession sets the signed-in session.
func WithSession(session model.Session) Option {
	return func(c *Config) {
		c.Session = session
	}
}

// WithStartPath sets the route opened first.
func WithStartPath(path string) Option {
	return func(c *Config) {
		c.StartPath = path
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithPageSize sets the initial catalog page size.
func WithPageSize(size int) Option {
	return func(c *Config) {
		c.PageSize = size
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithAltScreen controls whether the program takes over the whole terminal.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}
