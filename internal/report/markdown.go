package report

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	diagerrors "github.com/mbrocato/it-diagnostics-toolkit/internal/errors"
	"github.com/mbrocato/it-diagnostics-toolkit/internal/models"
)

// WriteMarkdown renders the report as a headed narrative document at path:
// one section per category plus the snapshot, one bullet per record. Empty
// categories keep their headings. A write failure surfaces as an IO error
// naming the target path.
func (a *Assembler) WriteMarkdown(report *Report, path string) error {
	const op = "write_markdown_report"

	var b strings.Builder
	b.WriteString("# Remote IT Support Report\n\n")
	fmt.Fprintf(&b, "## Timestamp: %s\n\n", report.Timestamp.Format(time.RFC3339))

	b.WriteString("## User Issues\n")
	for _, issue := range report.UserIssues {
		fmt.Fprintf(&b, "- **Type:** Software Conflict - %s\n", issue.Description)
	}

	b.WriteString("\n## System Errors\n")
	for _, issue := range report.SystemErrors {
		fmt.Fprintf(&b, "- **Code:** %s - %s\n", issue.CodeOrID, issue.Description)
	}

	b.WriteString("\n## Resource Flags\n")
	for _, issue := range report.ResourceFlags {
		fmt.Fprintf(&b, "- **Issue:** %s - Value: %s\n", issue.Description, formatValue(issue))
	}

	b.WriteString("\n## Detected Anomalies\n")
	for _, issue := range report.Anomalies {
		fmt.Fprintf(&b, "- **Event ID:** %s - %s\n", issue.CodeOrID, issue.Description)
	}

	b.WriteString("\n## System Snapshot\n")
	fmt.Fprintf(&b, "### Processes\n```\n%s\n```\n", report.SystemSnapshot.Processes)
	fmt.Fprintf(&b, "### Connections\n```\n%s\n```\n", report.SystemSnapshot.Connections)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return diagerrors.WrapIO(op, path, err)
	}

	a.logger.Info().Str("path", path).Msg("Markdown report generated")
	return nil
}

// formatValue renders a resource flag's measured percentage, or N/A for the
// fallback record, which carries no analyzed value.
func formatValue(issue models.Issue) string {
	if issue.Value == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*issue.Value, 'g', -1, 64)
}
