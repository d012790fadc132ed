package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/appforge/appforge/internal/ctxlog"
	"github.com/appforge/appforge/internal/dsl"
	"github.com/appforge/appforge/internal/invoker"
	"github.com/appforge/appforge/internal/model"
	"github.com/appforge/appforge/internal/projectconfig"
	"github.com/appforge/appforge/internal/stats"
)

// Options carries every policy flag of one import run.
type Options struct {
	// WorkDir is the directory the run operates in.
	WorkDir string

	// ModelPaths are the model files or directories to import; InlineContent,
	// when non-empty, is imported instead.
	ModelPaths    []string
	InlineContent string

	// Interactive forces strictly sequential generation so prompts from the
	// generation units never interleave. InteractiveSet records whether the
	// user chose explicitly; when they did not and an existing project
	// configuration is found, interactive defaults to true.
	Interactive    bool
	InteractiveSet bool

	Force             bool
	SkipInstall       bool
	SkipClient        bool
	JSONOnly          bool
	IgnoreApplication bool
	IgnoreDeployments bool

	GeneratorVersion string
	PackageManager   string

	// CreationTimestamp stamps imported applications; zero means "now".
	CreationTimestamp int64
}

// Orchestrator drives the import pipeline.
type Orchestrator struct {
	opts     Options
	single   invoker.Invoker
	isolated invoker.Invoker
	reporter stats.Reporter
}

// New creates an orchestrator. single runs generation in-process; isolated
// runs it in a child process and is selected for multi-application runs.
func New(opts Options, single, isolated invoker.Invoker, reporter stats.Reporter) *Orchestrator {
	if opts.WorkDir == "" {
		opts.WorkDir = "."
	}
	return &Orchestrator{opts: opts, single: single, isolated: isolated, reporter: reporter}
}

// Run executes the whole pipeline. Any stage failure aborts the run.
func (o *Orchestrator) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	settings, opts, err := o.loadConfig(ctx)
	if err != nil {
		return err
	}

	state, err := o.importModel(ctx, settings, opts)
	if err != nil {
		return err
	}

	o.reporter.ReportImport(ctx, stats.Counts{
		Applications: len(state.Applications),
		Entities:     len(state.Entities),
		Deployments:  len(state.Deployments),
	})

	appsGenerated, err := o.generateApplications(ctx, state, opts)
	if err != nil {
		return err
	}
	if err := o.generateEntities(ctx, state, opts, appsGenerated); err != nil {
		return err
	}
	if err := o.generateDeployments(ctx, state, opts); err != nil {
		return err
	}

	logger.Info("Model import finished.")
	return nil
}

// ExitCode surfaces the worst child exit status observed during the run.
func (o *Orchestrator) ExitCode() int {
	code := o.single.ExitCode()
	if isolated := o.isolated.ExitCode(); isolated > code {
		code = isolated
	}
	return code
}

// loadConfig reads the persisted project configuration, if any, and derives
// the run's effective options from it.
func (o *Orchestrator) loadConfig(ctx context.Context) (*projectconfig.Settings, Options, error) {
	logger := ctxlog.FromContext(ctx)
	opts := o.opts

	settings, err := projectconfig.LoadSettings(opts.WorkDir)
	if err != nil {
		return nil, opts, fmt.Errorf("failed to load project configuration: %w", err)
	}
	if settings == nil {
		logger.Debug("No existing project configuration found, fresh-project mode.")
		return nil, opts, nil
	}

	logger.Debug("Existing project configuration loaded.", "baseName", settings.BaseName)
	// Inside an existing project, generation prompts are expected: default to
	// interactive unless the user chose explicitly.
	if !opts.InteractiveSet {
		opts.Interactive = true
	}
	return settings, opts, nil
}

// importModel runs the importer and logs the outcome. Import failures are
// logged with context and re-raised; there is no recovery.
func (o *Orchestrator) importModel(ctx context.Context, settings *projectconfig.Settings, opts Options) (*model.ImportState, error) {
	logger := ctxlog.FromContext(ctx)

	importOpts := dsl.ImportOptions{
		GeneratorVersion:  opts.GeneratorVersion,
		SkipFiltering:     opts.Force,
		CreationTimestamp: opts.CreationTimestamp,
	}
	if importOpts.CreationTimestamp == 0 {
		importOpts.CreationTimestamp = time.Now().Unix()
	}
	if settings != nil {
		importOpts.DatabaseType = settings.DatabaseType
		importOpts.ApplicationType = settings.ApplicationType
		importOpts.ApplicationName = settings.BaseName
	}

	importer := dsl.NewImporter(importOpts)
	var state *model.ImportState
	var err error
	if opts.InlineContent != "" {
		state, err = importer.FromContent(ctx, opts.InlineContent)
	} else {
		state, err = importer.FromFiles(ctx, opts.ModelPaths...)
	}
	if err != nil {
		logger.Error("Model import failed.", "error", err)
		return nil, fmt.Errorf("model import failed: %w", err)
	}

	logger.Info("Model imported.",
		"applications", len(state.Applications),
		"entities", len(state.Entities),
		"deployments", len(state.Deployments))
	return state, nil
}
