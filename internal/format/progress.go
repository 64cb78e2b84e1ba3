package format

import (
	"strings"
	"sync"
)

// ProgressState tracks the fractional progress of a set of benchmark runs,
// one slot per run, and aggregates them into a single average for display.
type ProgressState struct {
	mu         sync.Mutex
	numRuns    int
	progresses []float64
}

// NewProgressState creates a ProgressState with one progress slot per run.
//
// Parameters:
//   - numRuns: Number of concurrent runs being tracked.
//
// Returns:
//   - *ProgressState: The initialized state, all slots at zero.
func NewProgressState(numRuns int) *ProgressState {
	if numRuns < 0 {
		numRuns = 0
	}
	return &ProgressState{
		numRuns:    numRuns,
		progresses: make([]float64, numRuns),
	}
}

// Update records the progress value for one run. Values are clamped to
// [0, 1] and out-of-range indices are ignored.
//
// Parameters:
//   - index: The run's slot index.
//   - value: The run's progress fraction.
func (ps *ProgressState) Update(index int, value float64) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if index < 0 || index >= len(ps.progresses) {
		return
	}
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	ps.progresses[index] = value
}

// CalculateAverage returns the mean progress across all slots, or 0 when
// there are no slots.
//
// Returns:
//   - float64: The average progress in [0, 1].
func (ps *ProgressState) CalculateAverage() float64 {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.numRuns == 0 {
		return 0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numRuns)
}

// ProgressBar renders a fixed-width textual progress bar using block
// characters. Progress is clamped to [0, 1].
//
// Parameters:
//   - progress: The fill fraction.
//   - length: The bar width in characters.
//
// Returns:
//   - string: The rendered bar.
func ProgressBar(progress float64, length int) string {
	if length <= 0 {
		return ""
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}
