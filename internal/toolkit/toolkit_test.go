package toolkit

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	diagerrors "github.com/mbrocato/it-diagnostics-toolkit/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()

	userLog := writeFile(t, dir, "user_log.txt", "normal line\nError: driver failed to load\nok\n")
	systemLog := writeFile(t, dir, "system_log.txt", "boot ok\n2024 ERROR 0xDEAD cpu fault\n")
	eventLog := writeFile(t, dir, "event_log.xml", `<Events>
	<Event>
		<System><EventID>42</EventID></System>
		<EventData><Data>App crash detected</Data></EventData>
	</Event>
</Events>`)

	jsonOut := filepath.Join(dir, "support_report.json")
	mdOut := filepath.Join(dir, "support_report.md")

	runner := NewRunner(zerolog.Nop())
	result := runner.Run(context.Background(), Inputs{
		UserLogPath:    userLog,
		SystemLogPath:  systemLog,
		EventLogPath:   eventLog,
		JSONOutput:     jsonOut,
		MarkdownOutput: mdOut,
	})

	require.NotNil(t, result.Report)
	assert.Len(t, result.Report.UserIssues, 1)
	assert.Equal(t, "Error: driver failed to load", result.Report.UserIssues[0].Description)
	require.Len(t, result.Report.SystemErrors, 1)
	assert.Equal(t, "0xDEAD cpu", result.Report.SystemErrors[0].CodeOrID)
	require.Len(t, result.Report.Anomalies, 1)
	assert.Equal(t, "42", result.Report.Anomalies[0].CodeOrID)

	// Both outputs exist and the narrative carries exactly one user bullet.
	data, err := os.ReadFile(mdOut)
	require.NoError(t, err)
	text := string(data)
	userSection := text[strings.Index(text, "## User Issues"):strings.Index(text, "## System Errors")]
	assert.Equal(t, 1, strings.Count(userSection, "- **Type:**"))

	raw, err := os.ReadFile(jsonOut)
	require.NoError(t, err)
	var parsed map[string]any
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.Contains(t, parsed["summary"], "1 user issues")
}

func TestRun_FailedExtractorYieldsEmptySection(t *testing.T) {
	dir := t.TempDir()

	userLog := writeFile(t, dir, "user_log.txt", "Error: driver failed to load\n")

	jsonOut := filepath.Join(dir, "support_report.json")
	mdOut := filepath.Join(dir, "support_report.md")

	runner := NewRunner(zerolog.Nop())
	result := runner.Run(context.Background(), Inputs{
		UserLogPath:    userLog,
		SystemLogPath:  filepath.Join(dir, "no_system_log.txt"),
		EventLogPath:   filepath.Join(dir, "no_event_log.xml"),
		JSONOutput:     jsonOut,
		MarkdownOutput: mdOut,
	})

	// The missing inputs are surfaced, but the run still produces a report.
	require.Len(t, result.Failures, 2)
	for _, failure := range result.Failures {
		assert.True(t, diagerrors.IsNotFound(failure))
	}
	require.Error(t, result.Err())

	require.NotNil(t, result.Report)
	assert.Len(t, result.Report.UserIssues, 1)
	assert.Empty(t, result.Report.SystemErrors)
	assert.Empty(t, result.Report.Anomalies)

	data, err := os.ReadFile(mdOut)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "## System Errors")
	assert.Contains(t, text, "## Detected Anomalies")
}

func TestRun_WriteFailureDoesNotStopOtherFormat(t *testing.T) {
	dir := t.TempDir()

	userLog := writeFile(t, dir, "user_log.txt", "fine\n")
	systemLog := writeFile(t, dir, "system_log.txt", "fine\n")
	eventLog := writeFile(t, dir, "event_log.xml", "<Events></Events>")

	mdOut := filepath.Join(dir, "support_report.md")

	runner := NewRunner(zerolog.Nop())
	result := runner.Run(context.Background(), Inputs{
		UserLogPath:    userLog,
		SystemLogPath:  systemLog,
		EventLogPath:   eventLog,
		JSONOutput:     filepath.Join(dir, "missing-dir", "support_report.json"),
		MarkdownOutput: mdOut,
	})

	require.Len(t, result.Failures, 1)
	assert.ErrorIs(t, result.Failures[0], diagerrors.ErrIO)

	// The Markdown report is still written.
	_, err := os.Stat(mdOut)
	assert.NoError(t, err)
}

func TestRun_DefaultOutputNames(t *testing.T) {
	dir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })

	userLog := writeFile(t, dir, "user_log.txt", "fine\n")
	systemLog := writeFile(t, dir, "system_log.txt", "fine\n")
	eventLog := writeFile(t, dir, "event_log.xml", "<Events></Events>")

	runner := NewRunner(zerolog.Nop())
	result := runner.Run(context.Background(), Inputs{
		UserLogPath:   userLog,
		SystemLogPath: systemLog,
		EventLogPath:  eventLog,
	})
	require.NotNil(t, result.Report)

	_, err = os.Stat(filepath.Join(dir, "support_report.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "support_report.md"))
	assert.NoError(t, err)
}
