package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/mbrocato/it-diagnostics-toolkit/internal/report"
)

// Config holds the settings for one diagnostic run.
type Config struct {
	UserLogPath    string
	SystemLogPath  string
	EventLogPath   string
	JSONOutput     string
	MarkdownOutput string
	LogLevel       string
	LogFormat      string
}

// Load builds a run configuration from defaults and DIAG_* environment
// overrides. A .env file in the current directory is honored for
// deployment overrides.
func Load() *Config {
	// Load .env file from current directory if present
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("Loaded configuration from .env in current directory")
	}

	cfg := &Config{
		UserLogPath:    "user_log.txt",
		SystemLogPath:  "system_log.txt",
		EventLogPath:   "event_log.xml",
		JSONOutput:     report.DefaultJSONName,
		MarkdownOutput: report.DefaultMarkdownName,
		LogLevel:       "info",
		LogFormat:      "auto",
	}

	applyEnvOverrides(cfg)
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DIAG_USER_LOG"); v != "" {
		cfg.UserLogPath = v
	}
	if v := os.Getenv("DIAG_SYSTEM_LOG"); v != "" {
		cfg.SystemLogPath = v
	}
	if v := os.Getenv("DIAG_EVENT_LOG"); v != "" {
		cfg.EventLogPath = v
	}
	if v := os.Getenv("DIAG_JSON_OUTPUT"); v != "" {
		cfg.JSONOutput = v
	}
	if v := os.Getenv("DIAG_MARKDOWN_OUTPUT"); v != "" {
		cfg.MarkdownOutput = v
	}
	if v := os.Getenv("DIAG_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DIAG_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}
