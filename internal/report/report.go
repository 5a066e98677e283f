package report

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mbrocato/it-diagnostics-toolkit/internal/models"
)

// Default output file names.
const (
	DefaultJSONName     = "support_report.json"
	DefaultMarkdownName = "support_report.md"
)

// recommendations is the fixed advice list attached to every report; it is
// not derived from extractor output.
var recommendations = []string{
	"Update conflicting software",
	"Run compatibility checks",
	"Investigate high resource usage",
}

var nowFn = time.Now

// Report is the aggregate of one diagnostic run. It is built once by
// Assemble and never mutated afterwards; both renderings derive from it
// alone. Field order here fixes the JSON key order.
type Report struct {
	Summary         string          `json:"summary"`
	UserIssues      []models.Issue  `json:"user_issues"`
	SystemErrors    []models.Issue  `json:"system_errors"`
	ResourceFlags   []models.Issue  `json:"resource_flags"`
	Anomalies       []models.Issue  `json:"anomalies"`
	SystemSnapshot  models.Snapshot `json:"system_snapshot"`
	Timestamp       time.Time       `json:"timestamp"`
	Recommendations []string        `json:"recommendations"`
}

// Assembler merges extractor output into a Report and renders it.
type Assembler struct {
	logger zerolog.Logger
}

// NewAssembler returns an Assembler that reports through the given logger.
func NewAssembler(logger zerolog.Logger) *Assembler {
	return &Assembler{logger: logger}
}

// Assemble builds the Report for one run. Sequences are kept in extractor
// order; a caller standing in for a failed extractor passes an empty
// sequence, which renders as an empty section rather than an omitted one.
func (a *Assembler) Assemble(userIssues, systemErrors, resourceFlags, anomalies []models.Issue, snap models.Snapshot) *Report {
	report := &Report{
		Summary: fmt.Sprintf("Found %d user issues, %d system errors, %d resource flags, %d anomalies.",
			len(userIssues), len(systemErrors), len(resourceFlags), len(anomalies)),
		UserIssues:      ensureSequence(userIssues),
		SystemErrors:    ensureSequence(systemErrors),
		ResourceFlags:   ensureSequence(resourceFlags),
		Anomalies:       ensureSequence(anomalies),
		SystemSnapshot:  snap,
		Timestamp:       nowFn(),
		Recommendations: recommendations,
	}

	a.logger.Info().
		Int("user_issues", len(report.UserIssues)).
		Int("system_errors", len(report.SystemErrors)).
		Int("resource_flags", len(report.ResourceFlags)).
		Int("anomalies", len(report.Anomalies)).
		Msg("report assembled")
	return report
}

// ensureSequence normalizes a nil sequence to an empty one so empty
// categories serialize as empty arrays, never null.
func ensureSequence(issues []models.Issue) []models.Issue {
	if issues == nil {
		return []models.Issue{}
	}
	return issues
}
