package bench

import (
	"time"

	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/format"
)

// ProgressAggregator folds per-run progress updates into one average
// and ETA. The CLI ticker and the TUI bridge both consume it, so the
// smoothing lives here instead of in either frontend.
type ProgressAggregator struct {
	state *format.ProgressWithETA
	runs  int
}

// NewProgressAggregator tracks numRuns concurrent runs. A non-positive
// count returns nil; callers drain the channel instead.
func NewProgressAggregator(numRuns int) *ProgressAggregator {
	if numRuns <= 0 {
		return nil
	}
	return &ProgressAggregator{state: format.NewProgressWithETA(numRuns), runs: numRuns}
}

// AggregatedProgress is one folded update: the raw value that arrived
// and the average and ETA after it was applied.
type AggregatedProgress struct {
	RunIndex        int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// Update applies one update and reports the aggregate state after it.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.RunIndex, update.Value)
	return AggregatedProgress{
		RunIndex:        update.RunIndex,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage reads the current average without applying an
// update, for periodic refresh between arrivals.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA reads the current ETA estimate without applying an update.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumRuns returns the number of runs being tracked.
func (a *ProgressAggregator) NumRuns() int { return a.runs }

// IsMultiRun reports whether more than one run is tracked.
func (a *ProgressAggregator) IsMultiRun() bool { return a.runs > 1 }

// DrainChannel discards updates until the channel closes. Used when no
// aggregator exists so producers never block on a full channel.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
