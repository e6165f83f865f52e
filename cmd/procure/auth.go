package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/procure/internal/cli"
	"github.com/Veraticus/procure/internal/model"
	"github.com/Veraticus/procure/internal/tui/viewmodel"
	"github.com/spf13/cobra"
)

func signinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Store the access token used for the catalog backend",
		Long: `Store the bearer token issued by the procurement backend together with
your username and an optional display alias. Without --token the token is
read from the PROCURE_TOKEN environment variable or prompted for.`,
		RunE: runSignin,
	}

	cmd.Flags().String("token", "", "bearer token")
	cmd.Flags().String("username", "", "username shown in the order history")
	cmd.Flags().String("alias", "", "display name shown on the home screen")

	return cmd
}

func runSignin(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	token, _ := cmd.Flags().GetString("token")
	username, _ := cmd.Flags().GetString("username")
	alias, _ := cmd.Flags().GetString("alias")

	if token == "" {
		token = os.Getenv("PROCURE_TOKEN")
	}

	reader := cli.NewNonBlockingReader(cmd.InOrStdin())
	var err error
	if strings.TrimSpace(token) == "" {
		if token, err = reader.Prompt(ctx, cmd.OutOrStdout(), "Token", true); err != nil {
			return err
		}
	}
	if strings.TrimSpace(username) == "" {
		if username, err = reader.Prompt(ctx, cmd.OutOrStdout(), "Username", true); err != nil {
			return err
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	session := model.Session{
		Token:      strings.TrimSpace(token),
		Username:   strings.TrimSpace(username),
		Alias:      strings.TrimSpace(alias),
		SignedInAt: time.Now(),
	}
	if err := store.SaveSession(ctx, session); err != nil {
		return err
	}

	slog.Debug("Session saved", "username", session.Username)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Signed in as %s", session.DisplayName())))
	return nil
}

func signoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signout",
		Short: "Forget the stored access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := initStorage(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.ClearSession(ctx); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Signed out"))
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := initStorage(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			session, err := requireSession(ctx, store)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderSession(session))
			return nil
		},
	}
}

// renderSession formats the account box printed by whoami.
func renderSession(session model.Session) string {
	alias := session.Alias
	if alias == "" {
		alias = "-"
	}

	lines := []string{
		fmt.Sprintf("%s %s", cli.SubtleStyle.Render("Username: "), session.Username),
		fmt.Sprintf("%s %s", cli.SubtleStyle.Render("Alias:    "), alias),
		fmt.Sprintf("%s %s", cli.SubtleStyle.Render("Signed in:"), viewmodel.FormatDateTime(session.SignedInAt)),
	}
	return cli.RenderBox(session.DisplayName(), strings.Join(lines, "\n"))
}
