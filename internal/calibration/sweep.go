// This file implements the worker-count sweep that measures how the reduce
// policy scales with parallelism width on the current hardware.

package calibration

import (
	"context"
	"io"
	"runtime"
	"time"

	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/accumulate"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/stopwatch"
)

// ─────────────────────────────────────────────────────────────────────────────
// Worker Ladder Generation
// ─────────────────────────────────────────────────────────────────────────────

// GenerateWorkerLadder generates the list of worker counts to sweep
// based on the number of available CPU cores.
//
// The rationale:
// - 1 worker is always first: it is the serial reference every speedup
//   is computed against
// - Powers of two up to the core count cover the useful widths cheaply
// - The exact core count is included even when it is not a power of two
// - Twice the core count probes oversubscription, where the scheduler
//   rather than the accumulator becomes the bottleneck
func GenerateWorkerLadder() []int {
	numCPU := runtime.NumCPU()

	ladder := []int{1}

	if numCPU == 1 {
		// Single core: wider settings only add scheduling noise
		return ladder
	}

	for w := 2; w < numCPU; w *= 2 {
		ladder = append(ladder, w)
	}
	ladder = append(ladder, numCPU)
	ladder = append(ladder, numCPU*2)

	return ladder
}

// GenerateQuickWorkerLadder generates a smaller ladder for the
// interactive sweep command, where latency matters more than coverage.
func GenerateQuickWorkerLadder() []int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return []int{1}
	case numCPU <= 4:
		return []int{1, numCPU}
	default:
		return []int{1, numCPU / 2, numCPU}
	}
}

// EstimateOptimalWorkers returns the worker count to assume when no
// sweep has been run: one worker per logical CPU.
func EstimateOptimalWorkers() int { return runtime.NumCPU() }

// ─────────────────────────────────────────────────────────────────────────────
// Sweep Execution
// ─────────────────────────────────────────────────────────────────────────────

// SweepOptions configures a worker-count sweep.
type SweepOptions struct {
	// Start and End bound the half-open range summed at each rung.
	Start int64
	End   int64
	// Trials is the number of timed runs per rung; the fastest counts.
	Trials int
	// Policy is the accumulation policy to measure.
	Policy accumulate.Policy
	// Quick selects the reduced ladder.
	Quick bool
}

// SweepStep is one measured rung of the worker ladder.
type SweepStep struct {
	// Workers is the GOMAXPROCS setting this rung was measured at.
	Workers int
	// Duration is the fastest trial at this rung.
	Duration time.Duration
	// Err is set when the rung was skipped (context expiry).
	Err error
}

// RunSweep measures the configured policy at every rung of the worker
// ladder, prints the summary table, and returns a calibration profile
// holding the optimal worker count. GOMAXPROCS is restored to its
// previous value before returning.
//
// A context expiring mid-sweep marks the remaining rungs as skipped;
// the table still prints, but no profile is produced.
//
// Parameters:
//   - ctx: The context bounding the sweep.
//   - opts: The sweep workload and ladder selection.
//   - out: The io.Writer for the summary table.
//
// Returns:
//   - *CalibrationProfile: The measured profile, nil when interrupted.
//   - error: The context error when the sweep was cut short.
func RunSweep(ctx context.Context, opts SweepOptions, out io.Writer) (*CalibrationProfile, error) {
	ladder := GenerateWorkerLadder()
	if opts.Quick {
		ladder = GenerateQuickWorkerLadder()
	}
	trials := opts.Trials
	if trials < 1 {
		trials = 1
	}

	prev := runtime.GOMAXPROCS(0)
	defer runtime.GOMAXPROCS(prev)

	total := stopwatch.New()
	total.Start()

	steps := make([]SweepStep, len(ladder))
	var sweepErr error
	for i, workers := range ladder {
		if err := ctx.Err(); err != nil {
			steps[i] = SweepStep{Workers: workers, Err: err}
			sweepErr = err
			continue
		}
		steps[i] = SweepStep{
			Workers:  workers,
			Duration: measureRung(workers, opts, trials),
		}
	}
	total.Stop()

	best := bestWorkers(steps)
	printSweepResults(out, steps, best)

	if sweepErr != nil {
		return nil, sweepErr
	}

	profile := NewProfile()
	profile.OptimalWorkers = best
	profile.SweepElements = sweepElements(opts)
	profile.SweepDuration = total.Elapsed().Round(time.Millisecond).String()
	return profile, nil
}

// measureRung times trials runs of the policy with GOMAXPROCS pinned to
// workers and returns the fastest. The summation itself is never
// interrupted; the caller checks the context between rungs.
func measureRung(workers int, opts SweepOptions, trials int) time.Duration {
	runtime.GOMAXPROCS(workers)

	clock := stopwatch.New()
	var fastest time.Duration
	for trial := 0; trial < trials; trial++ {
		clock.Reset()
		clock.Start()
		accumulate.Sum(opts.Policy, opts.Start, opts.End)
		clock.Stop()

		if elapsed := clock.Elapsed(); trial == 0 || elapsed < fastest {
			fastest = elapsed
		}
	}
	return fastest
}

// bestWorkers returns the worker count of the fastest completed rung,
// or 0 when no rung completed.
func bestWorkers(steps []SweepStep) int {
	best := 0
	var bestDuration time.Duration
	for _, step := range steps {
		if step.Err != nil {
			continue
		}
		if best == 0 || step.Duration < bestDuration {
			best = step.Workers
			bestDuration = step.Duration
		}
	}
	return best
}

func sweepElements(opts SweepOptions) uint64 {
	if opts.Start >= opts.End {
		return 0
	}
	return uint64(opts.End) - uint64(opts.Start)
}
