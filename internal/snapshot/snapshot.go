package snapshot

import (
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"github.com/mbrocato/it-diagnostics-toolkit/internal/models"
)

const (
	// captureLen bounds each captured listing. Truncation is byte-based on
	// the raw command output.
	captureLen = 500

	commandTimeout = 10 * time.Second

	unavailableMessage = "Commands not available on this system."
)

// System call wrappers for testing
var commandOutput = runCommand

// Collector captures a point-in-time process table and network-connection
// table as raw text.
type Collector struct {
	logger zerolog.Logger
}

// New returns a Collector that reports through the given logger.
func New(logger zerolog.Logger) *Collector {
	return &Collector{logger: logger}
}

// Collect runs the process- and connection-listing commands and returns
// their captured output, each truncated to the capture bound. When either
// command is missing on the host the result is a degraded snapshot carrying
// an explanatory message in both fields; Collect never fails outward.
func (c *Collector) Collect(ctx context.Context) models.Snapshot {
	processes, err := c.capture(ctx, "ps", "aux")
	if err != nil {
		return c.degraded(err)
	}

	connections, err := c.capture(ctx, "netstat", "-an")
	if err != nil {
		return c.degraded(err)
	}

	c.logger.Debug().
		Int("processes_len", len(processes)).
		Int("connections_len", len(connections)).
		Msg("system snapshot captured")
	return models.Snapshot{Processes: processes, Connections: connections}
}

func (c *Collector) capture(ctx context.Context, name string, arg ...string) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	out, err := commandOutput(runCtx, name, arg...)
	if err != nil {
		// A non-zero exit still produces usable output; only a command
		// that could not run at all degrades the snapshot.
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", err
		}
	}

	if len(out) > captureLen {
		out = out[:captureLen]
	}
	return out, nil
}

func (c *Collector) degraded(err error) models.Snapshot {
	c.logger.Warn().Err(err).Msg("snapshot commands unavailable")
	return models.Snapshot{Processes: unavailableMessage, Connections: unavailableMessage}
}

func runCommand(ctx context.Context, name string, arg ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, arg...)
	out, err := cmd.Output()
	return string(out), err
}
