package app_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appforge/appforge/internal/app"
	"github.com/appforge/appforge/internal/invoker"
	"github.com/appforge/appforge/internal/testutil"
)

// setupAppTest creates an app instance wired to an in-process generator that
// records every generation call.
func setupAppTest(t *testing.T, cfg app.Config) (*app.App, *testutil.SafeBuffer, func() []string) {
	t.Helper()

	var mu sync.Mutex
	var commands []string
	generator := func(ctx context.Context, command, dir string, options invoker.Options) error {
		mu.Lock()
		defer mu.Unlock()
		commands = append(commands, command)
		return nil
	}

	cfg.LogLevel = "debug"
	cfg.DisableInsights = true
	config, err := app.NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &testutil.SafeBuffer{}
	testApp := app.NewApp(logBuffer, config, generator)

	return testApp, logBuffer, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), commands...)
	}
}

func TestAppRunEntities(t *testing.T) {
	t.Parallel()
	workDir := t.TempDir()

	testApp, logBuffer, commands := setupAppTest(t, app.Config{
		WorkDir: workDir,
		InlineContent: `
entity "Customer" {
  field "name" {
    type = "String"
  }
}
`,
	})

	require.NoError(t, testApp.Run(context.Background()))
	assert.Zero(t, testApp.ExitCode())

	assert.FileExists(t, filepath.Join(workDir, ".appforge", "Customer.json"))
	assert.Equal(t, []string{"appforge:entity:Customer", "appforge:install"}, commands())
	assert.Contains(t, logBuffer.String(), "Model import finished.")
}

func TestAppRunImportFailure(t *testing.T) {
	t.Parallel()

	testApp, _, commands := setupAppTest(t, app.Config{
		WorkDir:       t.TempDir(),
		InlineContent: `entity "Broken" {`,
	})

	err := testApp.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import failed")
	assert.Empty(t, commands())
}
