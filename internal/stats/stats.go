// Package stats reports anonymous usage counts for an import run. Reporting
// can be disabled through the environment or the user configuration file.
package stats

import (
	"context"
	"os"

	"github.com/google/uuid"

	"github.com/appforge/appforge/internal/ctxlog"
)

// DisableEnvVar opts a machine out of usage reporting when set to any value.
const DisableEnvVar = "APPFORGE_NO_INSIGHTS"

// Counts summarizes one import run.
type Counts struct {
	Applications int
	Entities     int
	Deployments  int
}

// Reporter receives usage reports. Reporting failures are never allowed to
// affect a run.
type Reporter interface {
	ReportImport(ctx context.Context, counts Counts)
}

// NewReporter returns the configured reporter: a no-op when reporting is
// disabled, otherwise a log-backed reporter tagged with a fresh run id.
func NewReporter(disabled bool) Reporter {
	if disabled || os.Getenv(DisableEnvVar) != "" {
		return noopReporter{}
	}
	return &logReporter{runID: uuid.NewString()}
}

type noopReporter struct{}

func (noopReporter) ReportImport(context.Context, Counts) {}

// logReporter emits a single structured usage line per run.
type logReporter struct {
	runID string
}

func (r *logReporter) ReportImport(ctx context.Context, counts Counts) {
	ctxlog.FromContext(ctx).Info("Usage report.",
		"runID", r.runID,
		"applications", counts.Applications,
		"entities", counts.Entities,
		"deployments", counts.Deployments)
}
