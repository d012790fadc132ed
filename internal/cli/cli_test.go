package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appforge/appforge/internal/cli"
	"github.com/appforge/appforge/internal/userconfig"
)

func TestParseNoArgumentsPrintsUsage(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer

	config, shouldExit, err := cli.Parse(nil, &out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, config)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseHelpFlag(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer

	config, shouldExit, err := cli.Parse([]string{"-h"}, &out)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, config)
}

func TestParseModelPaths(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer

	config, shouldExit, err := cli.Parse([]string{"--force", "--json-only", "app.afm", "deploy.afm"}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)
	require.NotNil(t, config)

	assert.Equal(t, []string{"app.afm", "deploy.afm"}, config.ModelPaths)
	assert.True(t, config.Force)
	assert.True(t, config.JSONOnly)
	assert.False(t, config.Interactive)
	assert.False(t, config.InteractiveSet)
	assert.Equal(t, "appforge-gen", config.GeneratorBin)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, "text", config.LogFormat)
}

func TestParseInlineContent(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer

	config, shouldExit, err := cli.Parse([]string{"--inline", `application "store" {}`}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)
	require.NotNil(t, config)
	assert.Equal(t, `application "store" {}`, config.InlineContent)
	assert.Empty(t, config.ModelPaths)
}

func TestParseInteractiveExplicit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		args            []string
		wantInteractive bool
		wantSet         bool
	}{
		{
			name:            "unset",
			args:            []string{"app.afm"},
			wantInteractive: false,
			wantSet:         false,
		},
		{
			name:            "enabled",
			args:            []string{"--interactive", "app.afm"},
			wantInteractive: true,
			wantSet:         true,
		},
		{
			name:            "explicitly disabled",
			args:            []string{"--interactive=false", "app.afm"},
			wantInteractive: false,
			wantSet:         true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer

			config, shouldExit, err := cli.Parse(tt.args, &out)
			require.NoError(t, err)
			require.False(t, shouldExit)
			assert.Equal(t, tt.wantInteractive, config.Interactive)
			assert.Equal(t, tt.wantSet, config.InteractiveSet)
		})
	}
}

func TestParseUserConfigDefaults(t *testing.T) {
	// Not parallel: the rc file is found relative to the working directory.
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, userconfig.FileName), []byte(`
[log]
level = debug

[generator]
bin = /opt/forge/bin/forge-gen
package_manager = pnpm

[insights]
disabled = true
`), 0o644))
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })

	var out bytes.Buffer
	config, shouldExit, err := cli.Parse([]string{"app.afm"}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)

	// rc values become the flag defaults.
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, "/opt/forge/bin/forge-gen", config.GeneratorBin)
	assert.Equal(t, "pnpm", config.PackageManager)
	assert.True(t, config.DisableInsights)

	// An explicit flag still beats the rc default.
	config, _, err = cli.Parse([]string{"--log-level", "warn", "app.afm"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "warn", config.LogLevel)
}

func TestParseValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{
			name:    "invalid log level",
			args:    []string{"--log-level", "verbose", "app.afm"},
			wantMsg: "invalid log-level",
		},
		{
			name:    "invalid log format",
			args:    []string{"--log-format", "xml", "app.afm"},
			wantMsg: "invalid log-format",
		},
		{
			name:    "unknown flag",
			args:    []string{"--no-such-flag", "app.afm"},
			wantMsg: "flag provided but not defined",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer

			_, _, err := cli.Parse(tt.args, &out)
			require.Error(t, err)

			var exitErr *cli.ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tt.wantMsg)
		})
	}
}
