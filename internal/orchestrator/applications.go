package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/appforge/appforge/internal/ctxlog"
	"github.com/appforge/appforge/internal/invoker"
	"github.com/appforge/appforge/internal/model"
	"github.com/appforge/appforge/internal/projectconfig"
	"github.com/appforge/appforge/internal/schedule"
)

// generateApplications writes and generates every imported application. It
// reports whether applications were generated, which decides whether the
// entity stage runs at all.
func (o *Orchestrator) generateApplications(ctx context.Context, state *model.ImportState, opts Options) (bool, error) {
	logger := ctxlog.FromContext(ctx)

	if opts.IgnoreApplication {
		logger.Debug("Application generation disabled by option.")
		return false, nil
	}
	if !state.HasApplications() {
		logger.Debug("No applications imported, skipping application generation.")
		return false, nil
	}

	// A single application generates into the working directory in-process;
	// multiple applications each get their own subdirectory and an isolated
	// child process, so no generator state leaks across applications.
	multi := len(state.Applications) > 1
	inv := o.single
	if multi {
		inv = o.isolated
	}

	policy := schedule.ForPolicy(opts.Interactive)
	logger.Info("Generating applications.", "count", len(state.Applications), "policy", policy.String())

	err := schedule.ForEach(ctx, policy, len(state.ApplicationNames), func(ctx context.Context, i int) error {
		name := state.ApplicationNames[i]
		app := state.ApplicationsWithEntities[name]

		dir := opts.WorkDir
		if multi {
			dir = filepath.Join(opts.WorkDir, app.Config.BaseName)
		}
		if err := projectconfig.WriteApplication(dir, app); err != nil {
			return err
		}
		if opts.JSONOnly {
			return nil
		}

		options := invoker.Options{
			"force":        opts.Force,
			"skipInstall":  opts.SkipInstall,
			"skipClient":   opts.SkipClient,
			"withEntities": len(app.Entities) > 0,
		}
		if opts.PackageManager != "" {
			options["packageManager"] = opts.PackageManager
		}
		if err := inv.Invoke(ctx, invoker.CommandNamespace+":app", dir, options); err != nil {
			ctxlog.FromContext(ctx).Error("Application generation failed.", "application", name, "error", err)
			return fmt.Errorf("failed to generate application %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
