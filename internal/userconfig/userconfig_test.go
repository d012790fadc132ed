package userconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
[log]
level = debug

[generator]
bin = /opt/forge/bin/forge-gen
package_manager = pnpm

[insights]
disabled = true
`), 0o644))

	cfg, err := loadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat, "unset keys keep their defaults")
	assert.Equal(t, "/opt/forge/bin/forge-gen", cfg.GeneratorBin)
	assert.Equal(t, "pnpm", cfg.PackageManager)
	assert.True(t, cfg.DisableInsights)
}

func TestLoadFileMalformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[log\nlevel"), 0o644))

	_, err := loadFile(path)
	require.Error(t, err)
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := defaults()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "appforge-gen", cfg.GeneratorBin)
	assert.False(t, cfg.DisableInsights)
}
