package invoker

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandArgs(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		command string
		want    []string
		wantErr bool
	}{
		{name: "app subcommand", command: "appforge:app", want: []string{"app"}},
		{name: "entity with name suffix", command: "appforge:entity:Product", want: []string{"entity", "Product"}},
		{name: "deployment type", command: "appforge:kubernetes", want: []string{"kubernetes"}},
		{name: "missing namespace", command: "app", wantErr: true},
		{name: "foreign namespace", command: "other:app", wantErr: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := CommandArgs(tc.command)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEncodeOptions(t *testing.T) {
	t.Parallel()

	args := EncodeOptions(Options{
		"force":        true,
		"skipInstall":  false,
		"withEntities": true,
		"baseName":     "store",
		"serverPort":   8080,
		"blank":        "",
	})

	// Deterministic order, camelCase flattened to kebab-case, false booleans
	// and empty strings dropped.
	assert.Equal(t, []string{
		"--base-name", "store",
		"--force",
		"--server-port", "8080",
		"--with-entities",
	}, args)
}

func TestInProcessInvoke(t *testing.T) {
	t.Parallel()

	var gotCommand, gotDir string
	inv := NewInProcess(func(ctx context.Context, command, dir string, options Options) error {
		gotCommand, gotDir = command, dir
		return nil
	})

	require.NoError(t, inv.Invoke(context.Background(), "appforge:app", "/tmp/x", Options{"force": true}))
	assert.Equal(t, "appforge:app", gotCommand)
	assert.Equal(t, "/tmp/x", gotDir)
	assert.Zero(t, inv.ExitCode())
}

func TestInProcessAbsorbsPanic(t *testing.T) {
	t.Parallel()

	inv := NewInProcess(func(ctx context.Context, command, dir string, options Options) error {
		panic("generator exploded")
	})

	err := inv.Invoke(context.Background(), "appforge:app", ".", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")
}

func TestInProcessWithoutGenerator(t *testing.T) {
	t.Parallel()

	inv := &InProcess{}
	err := inv.Invoke(context.Background(), "appforge:app", ".", nil)
	require.Error(t, err)
}

func TestSubprocessRecordsNonZeroExit(t *testing.T) {
	t.Parallel()

	// `false` is a universally available binary that exits 1 without output.
	inv := NewSubprocess("false")
	inv.Stdout = io.Discard
	inv.Stderr = io.Discard

	err := inv.Invoke(context.Background(), "appforge:app", t.TempDir(), nil)
	require.NoError(t, err, "a non-zero child exit is a soft failure")
	assert.Equal(t, 1, inv.ExitCode())
}

func TestSubprocessSignalKilledChild(t *testing.T) {
	t.Parallel()

	// A signal-terminated child reports exit code -1; the recorded status
	// must still be non-zero so the run does not look successful.
	inv := NewSubprocess("appforge-gen")
	inv.recordExit(-1)
	assert.Equal(t, 1, inv.ExitCode())

	// A worse real exit code is kept over the mapped one.
	inv.recordExit(3)
	assert.Equal(t, 3, inv.ExitCode())
	inv.recordExit(-1)
	assert.Equal(t, 3, inv.ExitCode())
}

func TestSubprocessMissingBinary(t *testing.T) {
	t.Parallel()

	inv := NewSubprocess("definitely-not-a-real-binary-anywhere")
	err := inv.Invoke(context.Background(), "appforge:app", t.TempDir(), nil)
	require.Error(t, err)
	assert.Zero(t, inv.ExitCode())
}
