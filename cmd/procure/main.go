package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Veraticus/procure/internal/cli"
	"github.com/Veraticus/procure/internal/common"
	"github.com/Veraticus/procure/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	envFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "procure",
		Short: "Browse the procurement catalog and fill your cart from the terminal",
		Long: `procure: a terminal front end for the procurement catalog.

Browse items by category, compare supplier offers, set quantities and
add your selection to the cart. Run 'procure signin' first.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/procure/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "environment file loaded before reading PROCURE_* variables")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("api-url", "", "catalog backend base URL")

	// Bind flags to viper
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag(config.KeyAPIBaseURL, rootCmd.PersistentFlags().Lookup("api-url"))

	// Add commands
	rootCmd.AddCommand(signinCmd())
	rootCmd.AddCommand(signoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(browseCmd())
	rootCmd.AddCommand(itemsCmd())
	rootCmd.AddCommand(cartCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel() // Always cleanup

	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(common.UserMessage(err)))
		if errors.Is(err, common.ErrUnauthenticated) {
			fmt.Fprintln(os.Stderr, cli.FormatInfo("Run 'procure signin' first."))
		}
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	// .env values fill PROCURE_* variables that aren't already set
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Defaults and environment variables
	config.SetDefaults(viper.GetViper())

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	// Set up logging
	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	if used := viper.ConfigFileUsed(); used != "" {
		slog.Debug("Using config file", "path", filepath.Clean(used))
	}

	return nil
}

func setupLogging() error {
	level, err := common.ParseLevel(viper.GetString(config.KeyLogLevel))
	if err != nil {
		return err
	}
	return common.SetupLogger(level, viper.GetString(config.KeyLogFormat))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "procure %s\n", version)
		},
	}
}
