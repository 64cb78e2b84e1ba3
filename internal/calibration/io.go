package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/bench"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/format"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/ui"
)

// printSweepResults formats and prints the worker sweep results table.
func printSweepResults(out io.Writer, steps []SweepStep, best int) {
	if len(steps) == 0 {
		return
	}
	fmt.Fprintf(out, "\n--- Worker Sweep Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sWorkers%s    │ %sExecution Time%s │ %sSpeedup%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s┼%s┼%s\n", strings.Repeat("─", 12), strings.Repeat("─", 20), strings.Repeat("─", 12))

	baseline := steps[0].Duration
	if steps[0].Err != nil {
		baseline = 0
	}
	for _, step := range steps {
		workersLabel := fmt.Sprintf("%d", step.Workers)
		if step.Workers == 1 {
			workersLabel = "1 (serial)"
		}
		durationStr := fmt.Sprintf("%sN/A%s", ui.ColorRed(), ui.ColorReset())
		speedupStr := ""
		if step.Err == nil {
			durationStr = format.FormatExecutionDuration(step.Duration)
			if step.Duration == 0 {
				durationStr = "< 1µs"
			}
			if s := bench.Speedup(baseline, step.Duration); s > 0 {
				speedupStr = fmt.Sprintf("%.2fx", s)
			}
		}
		highlight := ""
		if step.Workers == best && step.Err == nil {
			highlight = fmt.Sprintf(" %s(Optimal)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%-10s%s │ %s%s%s │ %s%s\n",
			ui.ColorCyan(), workersLabel, ui.ColorReset(), ui.ColorYellow(), durationStr, ui.ColorReset(), speedupStr, highlight)
	}
	tw.Flush()
}

// PrintSweepOutcome prints the sweep conclusion and where the profile
// was persisted.
//
// Parameters:
//   - profile: The measured calibration profile.
//   - path: The file the profile was saved to, or "" when unsaved.
//   - out: The writer for output.
func PrintSweepOutcome(profile *CalibrationProfile, path string, out io.Writer) {
	fmt.Fprintf(out, "%sWorker sweep%s: optimal workers=%s%d%s of %d CPUs\n",
		ui.ColorGreen(), ui.ColorReset(),
		ui.ColorYellow(), profile.OptimalWorkers, ui.ColorReset(),
		profile.NumCPU)
	if path != "" {
		fmt.Fprintf(out, "Profile saved to %s%s%s\n", ui.ColorCyan(), path, ui.ColorReset())
	}
}
