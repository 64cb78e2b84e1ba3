package bench

import (
	"io"
	"sync"
	"time"

	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/accumulate"
)

// ProgressUpdate carries one progress notification from the runner to a
// display front-end.
type ProgressUpdate struct {
	// RunIndex is the index of the policy run the update belongs to.
	RunIndex int
	// Value is the completed fraction of that run (0.0 to 1.0).
	Value float64
}

// PolicyResult encapsulates the outcome of benchmarking a single policy.
// It is the shared domain type between the runner and the presentation
// layers.
type PolicyResult struct {
	// Policy identifies the synchronization discipline that ran.
	Policy accumulate.Policy
	// Sum is the value produced by the fastest trial.
	Sum int64
	// Duration is the wall-clock time of the fastest trial.
	Duration time.Duration
	// Millis is Duration truncated to whole milliseconds, as displayed.
	Millis int64
	// Trial is the zero-based index of the fastest trial.
	Trial int
	// TrialSums holds the sums of every trial in execution order; the
	// verifier checks all of them, not just the fastest trial's.
	TrialSums []int64
	// Err is non-nil when the policy never ran, typically because the
	// suite deadline expired first.
	Err error
}

// Verification records how one policy's sums compare with the
// closed-form value for the workload.
type Verification struct {
	// Policy is the policy whose sums were checked.
	Policy accumulate.Policy
	// Sum is the fastest trial's sum.
	Sum int64
	// Want is the closed-form sum for the workload.
	Want int64
	// Match reports whether every trial reproduced Want.
	Match bool
	// Enforced reports whether a mismatch counts as a failure. False
	// only for the racy policy, whose divergence is the demonstration.
	Enforced bool
}

// ProgressReporter displays run progress while the runner times the
// policies. The runner only feeds the channel; spinners, progress bars
// and dashboard messages all live behind this seam.
type ProgressReporter interface {
	// DisplayProgress consumes updates until progressChan closes, then
	// marks wg done. Run it on its own goroutine. numRuns is how many
	// policy runs the updates span.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numRuns int, out io.Writer)
}

// ProgressReporterFunc adapts a plain function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numRuns int, out io.Writer)

// DisplayProgress invokes f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numRuns int, out io.Writer) {
	f(wg, progressChan, numRuns, out)
}

// NullProgressReporter discards progress. Quiet mode and tests use it
// to satisfy the runner's channel contract without producing output.
type NullProgressReporter struct{}

// DisplayProgress drains progressChan and signals wg once it closes.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
	}
}

// ResultPresenter renders the analysis of a finished run. The analysis
// step computes what to show; implementations decide how it looks.
type ResultPresenter interface {
	// PresentResultLine prints one policy's result line, followed by
	// its speedup line when the policy is not the baseline.
	PresentResultLine(result PolicyResult, baseline time.Duration, out io.Writer)

	// PresentComparisonTable prints the ranking table for a full run.
	PresentComparisonTable(results []PolicyResult, out io.Writer)

	// PresentVerification prints the per-policy verification verdicts.
	PresentVerification(checks []Verification, strict bool, out io.Writer)
}

// DurationFormatter renders a duration the way the front end's result
// block does.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler handles run errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// QuiescenceController prepares the runtime before a timed region and
// restores it afterwards. The metrics package provides the real
// implementation; the runner defaults to a no-op.
type QuiescenceController interface {
	Begin()
	End()
}
