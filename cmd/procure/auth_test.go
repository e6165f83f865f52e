package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/procure/internal/common"
	"github.com/Veraticus/procure/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSessionCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("PROCURE_DATABASE_PATH", filepath.Join(dir, "procure.db"))
	t.Setenv("PROCURE_LOGGING_LEVEL", "error")
	t.Setenv("PROCURE_TOKEN", "")

	out, err := execute(t, "", "signin", "--token", "tok-123", "--username", "kim", "--alias", "Kim")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as Kim")

	out, err = execute(t, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "kim")
	assert.Contains(t, out, "Kim")

	out, err = execute(t, "", "signout")
	require.NoError(t, err)
	assert.Contains(t, out, "Signed out")

	_, err = execute(t, "", "whoami")
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestVersionCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "procure dev")
}

func TestRenderSession(t *testing.T) {
	out := renderSession(model.Session{
		Token:      "tok",
		Username:   "kim",
		SignedInAt: time.Date(2026, 5, 1, 8, 30, 0, 0, time.Local),
	})

	assert.Contains(t, out, "kim")
	assert.Contains(t, out, "2026-05-01 08:30")
	assert.Contains(t, out, "-")
}
