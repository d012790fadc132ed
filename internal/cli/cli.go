package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/appforge/appforge/internal/app"
	"github.com/appforge/appforge/internal/userconfig"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Defaults for log options, the generator binary and the package manager come
// from the user's rc file when one exists.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	userCfg, err := userconfig.Load()
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	flagSet := flag.NewFlagSet("appforge", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
AppForge - imports application models and drives project generation.

Usage:
  appforge [options] [MODEL_PATH...]

Arguments:
  MODEL_PATH
    Path to a single .afm model file or a directory containing .afm files.

Options:
`)
		flagSet.PrintDefaults()
	}

	inlineFlag := flagSet.String("inline", "", "Import model content passed directly on the command line.")
	interactiveFlag := flagSet.Bool("interactive", false, "Generate strictly one unit at a time so prompts never interleave.")
	forceFlag := flagSet.Bool("force", false, "Overwrite files without asking and regenerate unchanged entities.")
	skipInstallFlag := flagSet.Bool("skip-install", false, "Skip dependency installation after generation.")
	skipClientFlag := flagSet.Bool("skip-client", false, "Skip client-side code generation.")
	jsonOnlyFlag := flagSet.Bool("json-only", false, "Write configuration files only, without running any generator.")
	ignoreAppFlag := flagSet.Bool("ignore-application", false, "Do not generate applications from the model.")
	ignoreDeploymentsFlag := flagSet.Bool("ignore-deployments", false, "Do not generate deployments from the model.")
	workDirFlag := flagSet.String("workdir", "", "Directory to generate into. Defaults to the current directory.")
	generatorBinFlag := flagSet.String("generator-bin", userCfg.GeneratorBin, "Generator executable to invoke for each generation unit.")
	packageManagerFlag := flagSet.String("package-manager", userCfg.PackageManager, "Package manager forwarded to the generator.")
	creationTimestampFlag := flagSet.Int64("creation-timestamp", 0, "Unix timestamp to stamp imported applications with. 0 means now.")
	logFormatFlag := flagSet.String("log-format", userCfg.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", userCfg.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	// An unset --interactive keeps its meaning open: inside an existing
	// project the run defaults to interactive later on.
	interactiveSet := false
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == "interactive" {
			interactiveSet = true
		}
	})

	modelPaths := flagSet.Args()
	if len(modelPaths) == 0 && *inlineFlag == "" {
		slog.Debug("No model path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		WorkDir:           *workDirFlag,
		ModelPaths:        modelPaths,
		InlineContent:     *inlineFlag,
		Interactive:       *interactiveFlag,
		InteractiveSet:    interactiveSet,
		Force:             *forceFlag,
		SkipInstall:       *skipInstallFlag,
		SkipClient:        *skipClientFlag,
		JSONOnly:          *jsonOnlyFlag,
		IgnoreApplication: *ignoreAppFlag,
		IgnoreDeployments: *ignoreDeploymentsFlag,
		GeneratorBin:      *generatorBinFlag,
		PackageManager:    *packageManagerFlag,
		CreationTimestamp: *creationTimestampFlag,
		LogFormat:         logFormat,
		LogLevel:          logLevel,
		DisableInsights:   userCfg.DisableInsights,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}
