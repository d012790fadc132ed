package app

import (
	"context"
	"fmt"

	"github.com/appforge/appforge/internal/ctxlog"
)

// Run executes the import pipeline based on the provided configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.",
		"workDir", a.config.WorkDir,
		"modelPaths", a.config.ModelPaths,
		"jsonOnly", a.config.JSONOnly)

	if err := a.orch.Run(ctx); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if code := a.orch.ExitCode(); code != 0 {
		a.logger.Warn("A generator reported a non-zero exit status.", "exitCode", code)
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}
