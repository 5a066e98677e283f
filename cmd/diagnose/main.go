package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mbrocato/it-diagnostics-toolkit/internal/config"
	"github.com/mbrocato/it-diagnostics-toolkit/internal/logging"
	"github.com/mbrocato/it-diagnostics-toolkit/internal/toolkit"
)

// Version information (set at build time with -ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var flags struct {
	userLog   string
	systemLog string
	eventLog  string
	jsonOut   string
	mdOut     string
	logLevel  string
	logFormat string
}

var rootCmd = &cobra.Command{
	Use:     "diagnose",
	Short:   "diagnose - machine diagnostics collector for remote IT support",
	Long:    `diagnose scans user and system logs, XML event logs, and live resource usage on a machine and consolidates the findings into a single support report (JSON and Markdown)`,
	Version:      Version,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDiagnostics()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flags.userLog, "user-log", "", "path to the user log file")
	rootCmd.PersistentFlags().StringVar(&flags.systemLog, "system-log", "", "path to the system log file")
	rootCmd.PersistentFlags().StringVar(&flags.eventLog, "event-log", "", "path to the XML event log file")
	rootCmd.PersistentFlags().StringVar(&flags.jsonOut, "json-output", "", "path for the JSON report")
	rootCmd.PersistentFlags().StringVar(&flags.mdOut, "markdown-output", "", "path for the Markdown report")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "log format (json, console, auto)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("diagnose %s\n", Version)
		if BuildTime != "unknown" {
			fmt.Printf("Built: %s\n", BuildTime)
		}
		if GitCommit != "unknown" {
			fmt.Printf("Commit: %s\n", GitCommit)
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runDiagnostics() error {
	cfg := config.Load()
	applyFlagOverrides(cfg)

	logger := logging.Init(logging.Config{
		Format:    cfg.LogFormat,
		Level:     cfg.LogLevel,
		Component: "diagnose",
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runner := toolkit.NewRunner(logger)
	result := runner.Run(ctx, toolkit.Inputs{
		UserLogPath:    cfg.UserLogPath,
		SystemLogPath:  cfg.SystemLogPath,
		EventLogPath:   cfg.EventLogPath,
		JSONOutput:     cfg.JSONOutput,
		MarkdownOutput: cfg.MarkdownOutput,
	})

	for _, failure := range result.Failures {
		logger.Error().Err(failure).Msg("pipeline step failed")
	}
	if err := result.Err(); err != nil {
		return fmt.Errorf("diagnostic run finished with failures: %w", err)
	}
	return nil
}

// applyFlagOverrides lets explicit command-line flags win over defaults and
// environment configuration.
func applyFlagOverrides(cfg *config.Config) {
	if flags.userLog != "" {
		cfg.UserLogPath = flags.userLog
	}
	if flags.systemLog != "" {
		cfg.SystemLogPath = flags.systemLog
	}
	if flags.eventLog != "" {
		cfg.EventLogPath = flags.eventLog
	}
	if flags.jsonOut != "" {
		cfg.JSONOutput = flags.jsonOut
	}
	if flags.mdOut != "" {
		cfg.MarkdownOutput = flags.mdOut
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.LogFormat = flags.logFormat
	}
}
