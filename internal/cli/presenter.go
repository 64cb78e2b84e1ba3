package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/accumulate"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/bench"
	apperrors "github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/errors"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/format"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/metrics"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/ui"
)

// resultLabelWidth aligns the policy labels of the result block. The
// widest label, "Parallel critical:", is 18 characters; one more keeps a
// space before the duration column.
const resultLabelWidth = 19

// CLIProgressReporter feeds the terminal spinner and progress bar from
// the runner's progress channel.
type CLIProgressReporter struct{}

var _ bench.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for ongoing runs.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan bench.ProgressUpdate, numRuns int, out io.Writer) {
	DisplayProgress(wg, progressChan, numRuns, out)
}

// CLIResultPresenter prints the benchmark's primary output. The result
// block keeps a fixed, alignment-stable layout; colors are reserved for
// the decoration around it.
type CLIResultPresenter struct{}

var (
	_ bench.ResultPresenter   = CLIResultPresenter{}
	_ bench.DurationFormatter = CLIResultPresenter{}
)

// PresentResultLine prints one policy's line of the result block,
// followed by its speedup relative to the sequential baseline when the
// policy is parallel.
func (CLIResultPresenter) PresentResultLine(result bench.PolicyResult, baseline time.Duration, out io.Writer) {
	label := result.Policy.String() + ":"

	if result.Err != nil {
		fmt.Fprintf(out, "%-*s%s\n", resultLabelWidth, label, paint(ui.ColorRed, fmt.Sprintf("error: %v", result.Err)))
		return
	}

	fmt.Fprintf(out, "%-*s%5d ms, sum = %d\n", resultLabelWidth, label, result.Millis, result.Sum)

	if result.Policy != accumulate.Sequential {
		fmt.Fprintf(out, "%-*s%5.3e\n", resultLabelWidth, "Speedup:", bench.Speedup(baseline, result.Duration))
	}
}

// PresentComparisonTable prints the ranked summary. Column widths come
// from the plain text before painting, so ANSI codes never skew the
// alignment.
func (CLIResultPresenter) PresentComparisonTable(results []bench.PolicyResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	nameW, durW := len("Policy"), len("Duration")
	rows := make([][2]string, len(results))
	for i, res := range results {
		rows[i] = [2]string{res.Policy.String(), formatTableDuration(res.Duration)}
		if n := len(rows[i][0]); n > nameW {
			nameW = n
		}
		if n := len(rows[i][1]); n > durW {
			durW = n
		}
	}

	fmt.Fprintf(out, "%s%s   %s%s   %s\n",
		paint(ui.ColorUnderline, "Policy"), spaces(nameW-len("Policy")),
		paint(ui.ColorUnderline, "Duration"), spaces(durW-len("Duration")),
		paint(ui.ColorUnderline, "Status"))

	for i, res := range results {
		status := paint(ui.ColorGreen, "✅ Success")
		if res.Err != nil {
			status = paint(ui.ColorRed, fmt.Sprintf("❌ Failure (%v)", res.Err))
		}
		name, dur := rows[i][0], rows[i][1]
		fmt.Fprintf(out, "%s%s   %s%s   %s\n",
			paint(ui.ColorBlue, name), spaces(nameW-len(name)),
			paint(ui.ColorYellow, dur), spaces(durW-len(dur)),
			status)
	}
}

// PresentVerification displays how each policy's trial sums compare with
// the closed-form value for the workload.
func (CLIResultPresenter) PresentVerification(checks []bench.Verification, strict bool, out io.Writer) {
	fmt.Fprintf(out, "\n--- Sum Verification ---\n")

	for _, c := range checks {
		label := c.Policy.String() + ":"
		var verdict string
		switch {
		case c.Match:
			verdict = paint(ui.ColorGreen, fmt.Sprintf("✓ %d", c.Sum))
		case !c.Enforced:
			verdict = paint(ui.ColorYellow, fmt.Sprintf("✗ %d", c.Sum)) +
				fmt.Sprintf(" (want %d; lost updates expected here)", c.Want)
		case c.Sum == c.Want:
			verdict = paint(ui.ColorRed, fmt.Sprintf("✗ a slower trial diverged from %d", c.Want)) + strictSuffix(strict)
		default:
			verdict = paint(ui.ColorRed, fmt.Sprintf("✗ %d, want %d", c.Sum, c.Want)) + strictSuffix(strict)
		}
		fmt.Fprintf(out, "%-*s%s\n", resultLabelWidth, label, verdict)
	}
}

// strictSuffix annotates enforced mismatches when they will fail the run.
func strictSuffix(strict bool) string {
	if strict {
		return " (fails the run)"
	}
	return ""
}

// formatTableDuration renders a duration for the comparison table.
func formatTableDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// paint wraps s in color's escape sequence and a reset. When colors are
// disabled the escape functions return empty strings, leaving s alone.
func paint(color func() string, s string) string {
	return color() + s + ui.ColorReset()
}

// spaces returns n spaces, or nothing for n <= 0.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// FormatDuration renders d the way the result block does.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// CLIErrorHandler prints a classed message for a run failure and maps it
// to the process exit code.
type CLIErrorHandler struct{}

var _ bench.ErrorHandler = CLIErrorHandler{}

// HandleError reports a run failure to the user and returns the exit
// code for it.
func (CLIErrorHandler) HandleError(err error, duration time.Duration, out io.Writer) int {
	if err == nil {
		return apperrors.ExitSuccess
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		if duration > 0 {
			fmt.Fprintln(out, paint(ui.ColorRed, fmt.Sprintf("The run timed out after %s.", format.FormatExecutionDuration(duration))))
		} else {
			fmt.Fprintln(out, paint(ui.ColorRed, "The run timed out."))
		}
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(out, paint(ui.ColorYellow, "The run was canceled."))
	default:
		fmt.Fprintln(out, paint(ui.ColorRed, fmt.Sprintf("Error: %v", err)))
	}

	return apperrors.ExitCodeForError(err)
}

// DisplayMemoryStats shows the heap growth across a benchmark suite.
func DisplayMemoryStats(delta metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Peak heap:       %s\n", format.FormatBytes(delta.HeapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(delta.TotalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", delta.NumGC)
	if delta.PauseTotalNs > 0 {
		fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(delta.PauseTotalNs)/1e6)
	} else {
		fmt.Fprintf(out, "  GC pause total:  0ms (no collections in the timed region)\n")
	}
}

// DisplayResourceUsage shows process CPU accounting for the suite.
func DisplayResourceUsage(ru metrics.ResourceUsage, wall time.Duration, out io.Writer) {
	fmt.Fprintf(out, "\nResource Usage:\n")
	fmt.Fprintf(out, "  User CPU time:   %s\n", format.FormatExecutionDuration(ru.UserTime))
	fmt.Fprintf(out, "  System CPU time: %s\n", format.FormatExecutionDuration(ru.SystemTime))
	fmt.Fprintf(out, "  Max RSS:         %s\n", format.FormatBytes(ru.MaxRSSBytes))
	if wall > 0 {
		fmt.Fprintf(out, "  CPU utilization: %.1f cores\n", ru.CPUUtilization(wall))
	}
}
