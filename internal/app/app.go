package app

import (
	"io"
	"log/slog"

	"github.com/appforge/appforge/internal/invoker"
	"github.com/appforge/appforge/internal/orchestrator"
	"github.com/appforge/appforge/internal/stats"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	orch   *orchestrator.Orchestrator
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
//
// By default every generation unit runs through the external generator binary.
// A generator function may be passed instead, in which case single-application
// and entity units run it in-process; multi-application runs always use the
// binary so applications stay isolated from each other.
func NewApp(outW io.Writer, config *Config, generator ...invoker.GeneratorFunc) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	isolated := invoker.NewSubprocess(config.GeneratorBin)

	var single invoker.Invoker = invoker.NewSubprocess(config.GeneratorBin)
	if len(generator) > 0 {
		single = invoker.NewInProcess(generator[0])
	}
	logger.Debug("Generator invokers configured.", "bin", config.GeneratorBin, "inProcess", len(generator) > 0)

	orch := orchestrator.New(orchestrator.Options{
		WorkDir:           config.WorkDir,
		ModelPaths:        config.ModelPaths,
		InlineContent:     config.InlineContent,
		Interactive:       config.Interactive,
		InteractiveSet:    config.InteractiveSet,
		Force:             config.Force,
		SkipInstall:       config.SkipInstall,
		SkipClient:        config.SkipClient,
		JSONOnly:          config.JSONOnly,
		IgnoreApplication: config.IgnoreApplication,
		IgnoreDeployments: config.IgnoreDeployments,
		GeneratorVersion:  config.GeneratorVersion,
		PackageManager:    config.PackageManager,
		CreationTimestamp: config.CreationTimestamp,
	}, single, isolated, stats.NewReporter(config.DisableInsights))

	return &App{
		outW:   outW,
		logger: logger,
		config: config,
		orch:   orch,
	}
}

// ExitCode surfaces the worst generator exit status observed during the run.
func (a *App) ExitCode() int {
	return a.orch.ExitCode()
}
