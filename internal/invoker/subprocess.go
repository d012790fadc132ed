package invoker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"

	"github.com/appforge/appforge/internal/ctxlog"
)

// Subprocess runs each generation step as an isolated child process bound to
// the target working directory. Multiple applications generated in one run
// must not share generator state, which is what the process boundary buys.
type Subprocess struct {
	// Bin is the generator executable to spawn.
	Bin string

	// Stdout and Stderr receive the child's output streams. They default to
	// the parent's streams.
	Stdout io.Writer
	Stderr io.Writer

	mu       sync.Mutex
	exitCode int
}

// NewSubprocess creates a subprocess invoker spawning the given binary.
func NewSubprocess(bin string) *Subprocess {
	return &Subprocess{Bin: bin}
}

// Invoke spawns the generator child and waits for it to exit. A non-zero exit
// is recorded as the overall exit status but is not itself an error: the child
// already reported its failure. Failing to spawn at all is an error.
func (s *Subprocess) Invoke(ctx context.Context, command string, dir string, options Options) error {
	logger := ctxlog.FromContext(ctx)

	cmdArgs, err := CommandArgs(command)
	if err != nil {
		return err
	}
	args := append(cmdArgs, EncodeOptions(options)...)

	cmd := exec.CommandContext(ctx, s.Bin, args...)
	cmd.Dir = dir
	cmd.Env = s.childEnv(ctx, dir)
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	logger.Debug("Spawning generator child.", "bin", s.Bin, "args", args, "dir", dir)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			logger.Warn("Generator child exited non-zero.", "command", command, "dir", dir, "code", code)
			s.recordExit(code)
			return nil
		}
		return fmt.Errorf("failed to run generator %s in %s: %w", command, dir, err)
	}

	logger.Debug("Generator child finished.", "command", command, "dir", dir)
	return nil
}

// ExitCode implements Invoker.
func (s *Subprocess) ExitCode() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exitCode
}

func (s *Subprocess) recordExit(code int) {
	// A signal-terminated child reports -1; the run must still exit non-zero.
	if code < 0 {
		code = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if code > s.exitCode {
		s.exitCode = code
	}
}

// childEnv builds the child environment: the parent environment plus any
// variables declared in the target directory's .env file.
func (s *Subprocess) childEnv(ctx context.Context, dir string) []string {
	env := os.Environ()

	dotenvPath := filepath.Join(dir, ".env")
	if _, err := os.Stat(dotenvPath); err != nil {
		return env
	}
	vars, err := godotenv.Read(dotenvPath)
	if err != nil {
		ctxlog.FromContext(ctx).Warn("Ignoring unreadable .env file.", "path", dotenvPath, "error", err)
		return env
	}
	for k, v := range vars {
		env = append(env, k+"="+v)
	}
	return env
}
