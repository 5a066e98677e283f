package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mbrocato/it-diagnostics-toolkit/internal/report"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "user_log.txt", cfg.UserLogPath)
	assert.Equal(t, "system_log.txt", cfg.SystemLogPath)
	assert.Equal(t, "event_log.xml", cfg.EventLogPath)
	assert.Equal(t, report.DefaultJSONName, cfg.JSONOutput)
	assert.Equal(t, report.DefaultMarkdownName, cfg.MarkdownOutput)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "auto", cfg.LogFormat)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DIAG_USER_LOG", "/var/log/custom_user.log")
	t.Setenv("DIAG_SYSTEM_LOG", "/var/log/custom_system.log")
	t.Setenv("DIAG_EVENT_LOG", "/var/log/custom_events.xml")
	t.Setenv("DIAG_JSON_OUTPUT", "/tmp/out.json")
	t.Setenv("DIAG_MARKDOWN_OUTPUT", "/tmp/out.md")
	t.Setenv("DIAG_LOG_LEVEL", "debug")
	t.Setenv("DIAG_LOG_FORMAT", "console")

	cfg := Load()

	assert.Equal(t, "/var/log/custom_user.log", cfg.UserLogPath)
	assert.Equal(t, "/var/log/custom_system.log", cfg.SystemLogPath)
	assert.Equal(t, "/var/log/custom_events.xml", cfg.EventLogPath)
	assert.Equal(t, "/tmp/out.json", cfg.JSONOutput)
	assert.Equal(t, "/tmp/out.md", cfg.MarkdownOutput)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}
