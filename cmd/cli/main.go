package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/appforge/appforge/internal/app"
	"github.com/appforge/appforge/internal/cli"
)

// main is the entrypoint for the appforge application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) error {
	config, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	forgeApp := app.NewApp(outW, config)
	if err := forgeApp.Run(context.Background()); err != nil {
		return err
	}

	// A generator child can fail without aborting the run; its worst exit
	// status becomes the process exit status.
	if code := forgeApp.ExitCode(); code != 0 {
		return &cli.ExitError{Code: code, Message: fmt.Sprintf("a generator exited with status %d", code)}
	}
	return nil
}
