package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/procure/internal/api"
	"github.com/Veraticus/procure/internal/common"
	"github.com/Veraticus/procure/internal/config"
	"github.com/Veraticus/procure/internal/model"
	"github.com/Veraticus/procure/internal/service"
	"github.com/Veraticus/procure/internal/storage"
	"github.com/spf13/viper"
)

// loadConfig resolves the configuration from flags, environment and the config file.
func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper())
}

// initStorage opens the local database and brings its schema up to date.
func initStorage(ctx context.Context, cfg *config.Config) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// currentSession returns the stored session, or an empty one when nobody is signed in.
func currentSession(ctx context.Context, store service.SessionStore) (model.Session, error) {
	session, err := store.LoadSession(ctx)
	if errors.Is(err, common.ErrUnauthenticated) {
		return model.Session{}, nil
	}
	return session, err
}

// requireSession returns the stored session and fails when nobody is signed in.
func requireSession(ctx context.Context, store service.SessionStore) (model.Session, error) {
	session, err := currentSession(ctx, store)
	if err != nil {
		return model.Session{}, err
	}
	if !session.IsAuthenticated() {
		return model.Session{}, common.ErrUnauthenticated
	}
	return session, nil
}

// newAPIClient builds the backend client for session.
func newAPIClient(cfg *config.Config, session model.Session) (*api.Client, error) {
	if err := cfg.RequireAPI(); err != nil {
		return nil, err
	}
	return api.NewClient(api.Config{
		BaseURL: cfg.APIBaseURL,
		Token:   session.Token,
		Timeout: cfg.APITimeout,
		Retry:   cfg.RetryOptions(),
	})
}
