package invoker

import (
	"context"
	"fmt"

	"github.com/appforge/appforge/internal/ctxlog"
)

// GeneratorFunc is a generation step callable in the current process.
type GeneratorFunc func(ctx context.Context, command string, dir string, options Options) error

// InProcess invokes generation directly in the current process. It is selected
// when isolation is unnecessary (a single application, or entity-only runs)
// and is the seam tests use to substitute a fake generator.
type InProcess struct {
	Run GeneratorFunc
}

// NewInProcess creates an in-process invoker around the given generator function.
func NewInProcess(run GeneratorFunc) *InProcess {
	return &InProcess{Run: run}
}

// Invoke calls the generator function, converting a panic into an error so a
// misbehaving generation step cannot take the whole run down uncleanly.
func (p *InProcess) Invoke(ctx context.Context, command string, dir string, options Options) (err error) {
	logger := ctxlog.FromContext(ctx)
	if p.Run == nil {
		return fmt.Errorf("no in-process generator configured for command %s", command)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator %s panicked: %v", command, r)
		}
	}()

	logger.Debug("Running generator in-process.", "command", command, "dir", dir)
	return p.Run(ctx, command, dir, options)
}

// ExitCode implements Invoker. In-process generation has no child exit status.
func (p *InProcess) ExitCode() int { return 0 }
