package cli

import (
	"fmt"
	"io"
	"runtime"
	"strconv"

	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/accumulate"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/config"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/format"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/sysmon"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/ui"
)

// PrintExecutionConfig prints the workload, the run discipline, the
// environment and a host load snapshot. Saved output then records
// whether the machine was quiet enough for the numbers to mean
// anything.
func PrintExecutionConfig(cfg config.AppConfig, host sysmon.Stats, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	trials := fmt.Sprintf("%d trials", cfg.Trials)
	if cfg.Trials == 1 {
		trials = "1 trial"
	}
	timeout := "none"
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout.String()
	}

	lo := format.FormatNumberString(strconv.FormatInt(cfg.Start, 10))
	hi := format.FormatNumberString(strconv.FormatInt(cfg.End, 10))
	fmt.Fprintf(out, "Summing %s with %s workers, %s per policy, timeout %s.\n",
		paint(ui.ColorMagenta, "["+lo+", "+hi+")"),
		paint(ui.ColorCyan, strconv.Itoa(workers)),
		trials,
		paint(ui.ColorYellow, timeout))
	fmt.Fprintf(out, "Environment: %s logical processors, Go %s.\n",
		paint(ui.ColorCyan, strconv.Itoa(runtime.NumCPU())),
		paint(ui.ColorCyan, runtime.Version()))
	fmt.Fprintf(out, "Host load: CPU %s, memory %s, load1 %s.\n",
		paint(ui.ColorCyan, fmt.Sprintf("%.1f%%", host.CPUPercent)),
		paint(ui.ColorCyan, fmt.Sprintf("%.1f%%", host.MemPercent)),
		paint(ui.ColorCyan, fmt.Sprintf("%.2f", host.Load1)))
}

// PrintExecutionMode announces whether the run compares every policy or
// exercises a single one.
func PrintExecutionMode(policies []accumulate.Policy, out io.Writer) {
	mode := fmt.Sprintf("Comparison of %d synchronization policies", len(policies))
	if len(policies) == 1 {
		mode = "Single run with the " + paint(ui.ColorGreen, policies[0].String()) + " policy"
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", mode)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
