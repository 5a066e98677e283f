package resources

import (
	"context"
	"os/exec"
	"time"

	"github.com/rs/zerolog"
	gocpu "github.com/shirou/gopsutil/v4/cpu"
	gomem "github.com/shirou/gopsutil/v4/mem"

	"github.com/mbrocato/it-diagnostics-toolkit/internal/models"
)

const (
	// usageThreshold flags utilisation strictly above this percentage;
	// exactly 80 does not flag.
	usageThreshold = 80.0

	// fallbackOutputLen bounds the raw command output carried by the
	// fallback record. Truncation is byte-based on the raw output.
	fallbackOutputLen = 200

	commandTimeout = 10 * time.Second
)

// System call wrappers for testing
var (
	cpuPercent    = gocpu.PercentWithContext
	virtualMemory = gomem.VirtualMemoryWithContext
	commandOutput = runCommand
)

// liveSample is the tagged result of the live-metrics capability probe.
// Fallback selection keys off Available rather than a caught failure.
type liveSample struct {
	CPUPercent float64
	MemPercent float64
	Available  bool
}

// Monitor flags high CPU and memory utilisation, degrading to a raw command
// capture when live sampling is unavailable on the host.
type Monitor struct {
	logger zerolog.Logger
}

// New returns a Monitor that reports through the given logger.
func New(logger zerolog.Logger) *Monitor {
	return &Monitor{logger: logger}
}

// Check samples current CPU and memory utilisation and returns zero, one,
// or two ResourceFlag records for values above the threshold. When live
// sampling is unavailable it returns a single fallback record carrying raw
// process-listing output instead. Check never fails outward.
func (m *Monitor) Check(ctx context.Context) []models.Issue {
	sample := m.probeLive(ctx)
	if !sample.Available {
		return []models.Issue{m.fallback(ctx)}
	}

	flags := make([]models.Issue, 0, 2)
	if sample.CPUPercent > usageThreshold {
		flags = append(flags, models.NewIssue(models.CategoryResourceFlag, "High CPU usage").WithValue(sample.CPUPercent))
	}
	if sample.MemPercent > usageThreshold {
		flags = append(flags, models.NewIssue(models.CategoryResourceFlag, "High Memory usage").WithValue(sample.MemPercent))
	}

	m.logger.Debug().
		Float64("cpu", sample.CPUPercent).
		Float64("memory", sample.MemPercent).
		Int("flags", len(flags)).
		Msg("resource usage sampled")
	return flags
}

func (m *Monitor) probeLive(ctx context.Context) liveSample {
	probeCtx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	percentages, err := cpuPercent(probeCtx, time.Second, false)
	if err != nil || len(percentages) == 0 {
		return liveSample{}
	}

	memStats, err := virtualMemory(probeCtx)
	if err != nil {
		return liveSample{}
	}

	return liveSample{
		CPUPercent: percentages[0],
		MemPercent: memStats.UsedPercent,
		Available:  true,
	}
}

// fallback captures bounded process-listing output in place of analyzed
// values. The record carries no Value, which is how downstream consumers
// tell it apart from a real flag.
func (m *Monitor) fallback(ctx context.Context) models.Issue {
	runCtx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	out, err := commandOutput(runCtx, "top", "-bn1")
	if err != nil {
		m.logger.Warn().Err(err).Msg("resource fallback command failed")
	} else {
		m.logger.Info().Msg("live sampling unavailable, fell back to top output")
	}

	if len(out) > fallbackOutputLen {
		out = out[:fallbackOutputLen]
	}
	return models.NewIssue(models.CategoryResourceFlag, "Resource check via top").WithOutput(out)
}

func runCommand(ctx context.Context, name string, arg ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, arg...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}
