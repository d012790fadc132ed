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

// generateEntities writes and generates every imported entity. The stage is
// skipped entirely when applications were generated in this run: those
// embedded their entities already, and generating them again would duplicate
// the work.
func (o *Orchestrator) generateEntities(ctx context.Context, state *model.ImportState, opts Options, appsGenerated bool) error {
	logger := ctxlog.FromContext(ctx)

	if !state.HasEntities() {
		logger.Debug("No entities imported, skipping entity generation.")
		return nil
	}
	if appsGenerated {
		logger.Debug("Entities are embedded in application generation, skipping the entity stage.")
		return nil
	}

	logger.Info("Generating entities.", "count", len(state.Entities))

	// The entity fan-out itself is always concurrent; the per-owning-application
	// loop inside one entity follows the run's interactive policy.
	err := schedule.ForEach(ctx, schedule.Concurrent, len(state.Entities), func(ctx context.Context, i int) error {
		return o.generateEntity(ctx, state.Entities[i], opts)
	})
	if err != nil {
		return err
	}

	return o.runInstallStep(ctx, opts)
}

// generateEntity handles one entity: once per owning application, or directly
// in the working directory when no application owns it.
func (o *Orchestrator) generateEntity(ctx context.Context, entity *model.Entity, opts Options) error {
	if len(entity.Applications) == 0 {
		return o.generateEntityIn(ctx, entity, opts.WorkDir, opts)
	}

	innerPolicy := schedule.ForPolicy(opts.Interactive)
	return schedule.ForEach(ctx, innerPolicy, len(entity.Applications), func(ctx context.Context, i int) error {
		dir := filepath.Join(opts.WorkDir, entity.Applications[i])
		return o.generateEntityIn(ctx, entity, dir, opts)
	})
}

// generateEntityIn writes the entity's config file into dir and, unless the
// run is json-only, invokes the entity generator there.
func (o *Orchestrator) generateEntityIn(ctx context.Context, entity *model.Entity, dir string, opts Options) error {
	if _, err := projectconfig.WriteEntity(dir, entity); err != nil {
		return err
	}
	if opts.JSONOnly {
		return nil
	}

	options := invoker.Options{
		"force":       opts.Force,
		"skipInstall": true, // installs run once at the end of the stage
		"skipClient":  opts.SkipClient,
		"regenerate":  true,
	}
	command := fmt.Sprintf("%s:entity:%s", invoker.CommandNamespace, entity.Name)
	if err := o.single.Invoke(ctx, command, dir, options); err != nil {
		ctxlog.FromContext(ctx).Error("Entity generation failed.", "entity", entity.Name, "dir", dir, "error", err)
		return fmt.Errorf("failed to generate entity %s: %w", entity.Name, err)
	}
	return nil
}

// runInstallStep triggers dependency installation exactly once per run, after
// the whole entity fan-out settled.
func (o *Orchestrator) runInstallStep(ctx context.Context, opts Options) error {
	logger := ctxlog.FromContext(ctx)

	if opts.SkipInstall || opts.JSONOnly {
		logger.Debug("Install step suppressed.", "skipInstall", opts.SkipInstall, "jsonOnly", opts.JSONOnly)
		return nil
	}

	options := invoker.Options{}
	if opts.PackageManager != "" {
		options["packageManager"] = opts.PackageManager
	}
	logger.Info("Installing dependencies.")
	if err := o.single.Invoke(ctx, invoker.CommandNamespace+":install", opts.WorkDir, options); err != nil {
		return fmt.Errorf("failed to install dependencies: %w", err)
	}
	return nil
}
