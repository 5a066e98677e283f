// Package toolkit wires the individual extractors, the snapshot collector,
// and the report assembler into a single diagnostic run.
package toolkit

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/mbrocato/it-diagnostics-toolkit/internal/eventlog"
	"github.com/mbrocato/it-diagnostics-toolkit/internal/logging"
	"github.com/mbrocato/it-diagnostics-toolkit/internal/models"
	"github.com/mbrocato/it-diagnostics-toolkit/internal/report"
	"github.com/mbrocato/it-diagnostics-toolkit/internal/resources"
	"github.com/mbrocato/it-diagnostics-toolkit/internal/snapshot"
	"github.com/mbrocato/it-diagnostics-toolkit/internal/textlog"
)

// Inputs names the raw inputs and output targets for one run.
type Inputs struct {
	UserLogPath    string
	SystemLogPath  string
	EventLogPath   string
	JSONOutput     string
	MarkdownOutput string
}

// Result carries the assembled report together with every failure hit along
// the way: extraction failures first, in pipeline order, then output write
// failures. A failed extractor contributes an empty sequence to the report
// rather than suppressing its section.
type Result struct {
	Report   *report.Report
	Failures []error
}

// Err folds all recorded failures into one error, or nil for a clean run.
func (r *Result) Err() error {
	return errors.Join(r.Failures...)
}

// Runner executes the full pipeline. Extractors run one after another with
// no shared state; each either completes or fails independently before the
// final assembly step.
type Runner struct {
	logger    zerolog.Logger
	textlog   *textlog.Scanner
	eventlog  *eventlog.Parser
	resources *resources.Monitor
	snapshot  *snapshot.Collector
	assembler *report.Assembler
}

// NewRunner builds a Runner whose components all report through children of
// the given logger.
func NewRunner(logger zerolog.Logger) *Runner {
	return &Runner{
		logger:    logger,
		textlog:   textlog.New(logger.With().Str("component", "textlog").Logger()),
		eventlog:  eventlog.New(logger.With().Str("component", "eventlog").Logger()),
		resources: resources.New(logger.With().Str("component", "resources").Logger()),
		snapshot:  snapshot.New(logger.With().Str("component", "snapshot").Logger()),
		assembler: report.NewAssembler(logger.With().Str("component", "report").Logger()),
	}
}

// Run executes every extractor, captures the system snapshot, assembles the
// report, and writes both output formats. A failure in one extractor or one
// output format never stops the rest of the run.
func (r *Runner) Run(ctx context.Context, in Inputs) *Result {
	ctx, runID := logging.WithRunID(ctx, "")
	logger := r.logger.With().Str("run_id", runID).Logger()
	logger.Info().Msg("diagnostic run started")

	result := &Result{}

	userIssues := r.extract(result, func() ([]models.Issue, error) {
		return r.textlog.ScanUserLog(ctx, in.UserLogPath)
	})
	systemErrors := r.extract(result, func() ([]models.Issue, error) {
		return r.textlog.ScanSystemLog(ctx, in.SystemLogPath)
	})
	resourceFlags := r.resources.Check(ctx)
	anomalies := r.extract(result, func() ([]models.Issue, error) {
		return r.eventlog.Parse(ctx, in.EventLogPath)
	})
	snap := r.snapshot.Collect(ctx)

	result.Report = r.assembler.Assemble(userIssues, systemErrors, resourceFlags, anomalies, snap)

	jsonOut := in.JSONOutput
	if jsonOut == "" {
		jsonOut = report.DefaultJSONName
	}
	if err := r.assembler.WriteJSON(result.Report, jsonOut); err != nil {
		logger.Error().Err(err).Msg("JSON report write failed")
		result.Failures = append(result.Failures, err)
	}

	mdOut := in.MarkdownOutput
	if mdOut == "" {
		mdOut = report.DefaultMarkdownName
	}
	if err := r.assembler.WriteMarkdown(result.Report, mdOut); err != nil {
		logger.Error().Err(err).Msg("Markdown report write failed")
		result.Failures = append(result.Failures, err)
	}

	logger.Info().Int("failures", len(result.Failures)).Msg("diagnostic run finished")
	return result
}

// extract invokes one extractor, recording its failure and substituting an
// empty sequence so the remaining extractors and the assembly still run.
func (r *Runner) extract(result *Result, fn func() ([]models.Issue, error)) []models.Issue {
	issues, err := fn()
	if err != nil {
		result.Failures = append(result.Failures, err)
		return nil
	}
	return issues
}
