package format

import (
	"fmt"
	"time"
)

// maxETA caps estimates so a stalled run never displays an absurd value.
const maxETA = 24 * time.Hour

// ProgressWithETA extends ProgressState with a completion-time estimate
// derived from the observed overall progress rate.
type ProgressWithETA struct {
	*ProgressState
	progressRate float64 // fraction completed per second
	startTime    time.Time
}

// NewProgressWithETA creates a ProgressWithETA tracking the given number
// of runs, with the rate baseline anchored at the current time.
//
// Parameters:
//   - numRuns: Number of concurrent runs being tracked.
//
// Returns:
//   - *ProgressWithETA: The initialized tracker.
func NewProgressWithETA(numRuns int) *ProgressWithETA {
	return &ProgressWithETA{
		ProgressState: NewProgressState(numRuns),
		startTime:     time.Now(),
	}
}

// UpdateWithETA records one run's progress and refreshes the rate estimate.
//
// Parameters:
//   - index: The run's slot index.
//   - value: The run's progress fraction.
//
// Returns:
//   - float64: The new average progress across all runs.
//   - time.Duration: The current ETA (0 when not yet computable).
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.Update(index, value)
	average := p.CalculateAverage()

	elapsed := time.Since(p.startTime).Seconds()
	if elapsed > 0 && average > 0 {
		p.progressRate = average / elapsed
	}
	return average, p.GetETA()
}

// GetETA estimates the remaining time from the current average progress
// and the observed rate. Returns 0 when no rate has been established or
// the work is complete; estimates are capped at 24 hours.
//
// Returns:
//   - time.Duration: The estimated time remaining.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1.0 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	eta := time.Duration(remaining / p.progressRate * float64(time.Second))
	if eta > maxETA {
		return maxETA
	}
	return eta
}

// FormatETA renders an ETA for display: "calculating..." until an estimate
// exists, then a compact h/m/s form ("< 1s", "45s", "2m30s", "1h15m").
//
// Parameters:
//   - eta: The estimated time remaining.
//
// Returns:
//   - string: The human-readable ETA.
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}

	hours := int(eta.Hours())
	minutes := int(eta.Minutes()) % 60
	seconds := int(eta.Seconds()) % 60

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh%dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	case minutes > 0 && seconds > 0:
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// FormatProgressBarWithETA renders a bracketed progress bar with the
// percentage and ETA appended, for single-line terminal progress output.
//
// Parameters:
//   - progress: The fill fraction.
//   - eta: The estimated time remaining.
//   - width: The bar width in characters.
//
// Returns:
//   - string: The rendered line.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), progress*100, FormatETA(eta))
}
