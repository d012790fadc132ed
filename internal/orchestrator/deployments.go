package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/appforge/appforge/internal/ctxlog"
	"github.com/appforge/appforge/internal/invoker"
	"github.com/appforge/appforge/internal/kube"
	"github.com/appforge/appforge/internal/model"
	"github.com/appforge/appforge/internal/projectconfig"
	"github.com/appforge/appforge/internal/schedule"
)

// generateDeployments writes and generates every imported deployment, each
// into a subdirectory named by its deployment type.
func (o *Orchestrator) generateDeployments(ctx context.Context, state *model.ImportState, opts Options) error {
	logger := ctxlog.FromContext(ctx)

	if opts.IgnoreDeployments {
		logger.Debug("Deployment generation disabled by option.")
		return nil
	}
	if !state.HasDeployments() {
		logger.Debug("No deployments imported, skipping deployment generation.")
		return nil
	}

	policy := schedule.ForPolicy(opts.Interactive)
	logger.Info("Generating deployments.", "count", len(state.Deployments), "policy", policy.String())

	return schedule.ForEach(ctx, policy, len(state.Deployments), func(ctx context.Context, i int) error {
		return o.generateDeployment(ctx, state.Deployments[i], opts)
	})
}

func (o *Orchestrator) generateDeployment(ctx context.Context, deployment *model.Deployment, opts Options) error {
	dir := filepath.Join(opts.WorkDir, deployment.DeploymentType)

	if err := projectconfig.WriteDeployment(dir, deployment); err != nil {
		return err
	}
	if deployment.DeploymentType == "kubernetes" {
		if _, err := kube.WriteScript(dir, deployment); err != nil {
			return err
		}
	}
	if opts.JSONOnly {
		return nil
	}

	options := invoker.Options{
		"force":       opts.Force,
		"skipInstall": opts.SkipInstall,
	}
	command := invoker.CommandNamespace + ":" + deployment.DeploymentType
	if err := o.single.Invoke(ctx, command, dir, options); err != nil {
		ctxlog.FromContext(ctx).Error("Deployment generation failed.", "deploymentType", deployment.DeploymentType, "error", err)
		return fmt.Errorf("failed to generate %s deployment: %w", deployment.DeploymentType, err)
	}
	return nil
}
