package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/procure/internal/cart"
	"github.com/Veraticus/procure/internal/common"
	"github.com/Veraticus/procure/internal/tui"
	"github.com/Veraticus/procure/internal/tui/themes"
	"github.com/spf13/cobra"
)

func browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive catalog",
		Long: `Open the terminal UI: home screen, catalog table, order history and account.

Logs are written to logging.file while the UI owns the terminal.`,
		RunE: runBrowse,
	}

	cmd.Flags().String("start", "/", "route to open first (/, /listtabledb, /order, /signstate)")

	return cmd
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	startPath, _ := cmd.Flags().GetString("start")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	session, err := currentSession(ctx, store)
	if err != nil {
		return err
	}

	theme, ok := themes.ByName(cfg.Theme)
	if !ok {
		return fmt.Errorf("%w: unknown theme %q", common.ErrInvalidConfig, cfg.Theme)
	}

	opts := []tui.Option{
		tui.WithSession(session),
		tui.WithStorage(store),
		tui.WithTheme(theme),
		tui.WithPageSize(cfg.PageSize),
		tui.WithStartPath(startPath),
	}

	if session.IsAuthenticated() {
		client, clientErr := newAPIClient(cfg, session)
		if clientErr != nil {
			return clientErr
		}
		opts = append(opts,
			tui.WithAPI(client),
			tui.WithSubmitter(cart.NewSubmitter(client, session.Owner(), cart.WithHistory(store))),
		)
	}

	level, err := common.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	restore, err := common.RedirectToFile(cfg.LogFile, level, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer restore()

	slog.Info("Starting terminal UI", "start", startPath, "signed_in", session.IsAuthenticated())
	return tui.Run(ctx, opts...)
}
