package bench

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/accumulate"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/config"
	apperrors "github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/errors"
)

// Speedup returns the baseline duration divided by d, the factor by
// which d is faster than the baseline. Degenerate durations yield 0 so
// callers can annotate rather than divide by zero; a sub-millisecond
// baseline over a small workload is the usual way to get here.
func Speedup(baseline, d time.Duration) float64 {
	if baseline <= 0 || d <= 0 {
		return 0
	}
	return float64(baseline) / float64(d)
}

// Baseline returns the sequential policy's duration from a result set,
// or 0 when the sequential policy is absent or failed to run.
func Baseline(results []PolicyResult) time.Duration {
	for _, res := range results {
		if res.Policy == accumulate.Sequential && res.Err == nil {
			return res.Duration
		}
	}
	return 0
}

// VerifyResults compares every completed policy's trial sums against
// the closed-form value for the workload. The racy policy's entry is
// marked unenforced: its divergence is the behavior under study.
func VerifyResults(results []PolicyResult, start, end int64) []Verification {
	want := accumulate.ClosedFormSum(start, end)

	checks := make([]Verification, 0, len(results))
	for _, res := range results {
		if res.Err != nil || len(res.TrialSums) == 0 {
			continue
		}
		match := true
		for _, sum := range res.TrialSums {
			if sum != want {
				match = false
				break
			}
		}
		checks = append(checks, Verification{
			Policy:   res.Policy,
			Sum:      res.Sum,
			Want:     want,
			Match:    match,
			Enforced: res.Policy.Synchronized(),
		})
	}
	return checks
}

// AnalyzeRun turns a result set into terminal output and an exit code.
//
// The result block prints first, in run order, through the presenter.
// Decoration (comparison table sorted fastest-first, verification
// status) follows unless quiet mode is on. The exit code reflects, in
// order of precedence: total failure, a strict-mode verified-sum
// mismatch, an interrupted suite, then success. A mismatch of the racy
// policy never fails the run; outside strict mode even a synchronized
// mismatch only downgrades the status line.
//
// Parameters:
//   - results: The results in run order, as produced by Execute.
//   - cfg: The application configuration.
//   - presenter: The result presenter for display formatting.
//   - errorHandler: Maps run errors to exit codes.
//   - out: The io.Writer for the report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeRun(results []PolicyResult, cfg config.AppConfig, presenter ResultPresenter, errorHandler ErrorHandler, out io.Writer) int {
	baseline := Baseline(results)

	for _, res := range results {
		presenter.PresentResultLine(res, baseline, out)
	}

	var firstError error
	successCount := 0
	for _, res := range results {
		if res.Err != nil {
			if firstError == nil {
				firstError = res.Err
			}
		} else {
			successCount++
		}
	}

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No policy completed a run.\n")
		return errorHandler.HandleError(firstError, 0, out)
	}

	checks := VerifyResults(results, cfg.Start, cfg.End)

	if !cfg.Quiet {
		sorted := make([]PolicyResult, len(results))
		copy(sorted, results)
		sort.Slice(sorted, func(i, j int) bool {
			if (sorted[i].Err == nil) != (sorted[j].Err == nil) {
				return sorted[i].Err == nil
			}
			return sorted[i].Duration < sorted[j].Duration
		})
		presenter.PresentComparisonTable(sorted, out)
		presenter.PresentVerification(checks, cfg.Strict, out)
	}

	mismatch := false
	for _, check := range checks {
		if check.Enforced && !check.Match {
			mismatch = true
			break
		}
	}

	switch {
	case mismatch && cfg.Strict:
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! A synchronized policy diverged from the verified sum.\n")
		return apperrors.ExitErrorMismatch
	case firstError != nil:
		fmt.Fprintf(out, "\nGlobal Status: Partial. The run was interrupted before every policy completed.\n")
		return errorHandler.HandleError(firstError, 0, out)
	case mismatch:
		fmt.Fprintf(out, "\nGlobal Status: WARNING. A synchronized policy diverged from the verified sum.\n")
		return apperrors.ExitSuccess
	default:
		if !cfg.Quiet {
			fmt.Fprintf(out, "\nGlobal Status: Success. All synchronized sums match the verified value.\n")
		}
		return apperrors.ExitSuccess
	}
}
