// Package cli provides the terminal front end for the benchmark:
// execution banners, progress display, result presentation and the
// interactive (Read-Eval-Print Loop) session.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/accumulate"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/bench"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/calibration"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/config"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/format"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/ui"
)

// REPL represents an interactive benchmark session. Commands mutate a
// private copy of the launch configuration, so consecutive runs can
// explore ranges, worker caps and trial counts without restarting.
type REPL struct {
	cfg config.AppConfig
	in  io.Reader
	out io.Writer
}

// NewREPL builds a session seeded with the launch configuration. It
// reads stdin and writes stdout until redirected.
func NewREPL(cfg config.AppConfig) *REPL {
	return &REPL{
		cfg: cfg,
		in:  os.Stdin,
		out: os.Stdout,
	}
}

// SetInput redirects where the session reads commands from.
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput redirects where the session writes.
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start runs the read-eval-print loop until exit, quit, or EOF.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, paint(ui.ColorGreen, "sum> "))

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintln(r.out, paint(ui.ColorRed, fmt.Sprintf("Read error: %v", err)))
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(input) {
			return
		}
	}
}

// printBanner draws the boxed title shown once at startup.
func (r *REPL) printBanner() {
	title := paint(ui.ColorBold, "🔢 Shared-Variable Sum Benchmark - Interactive Mode")
	fmt.Fprintln(r.out, "\n"+paint(ui.ColorCyan, "╔══════════════════════════════════════════════════════════╗"))
	fmt.Fprintln(r.out, paint(ui.ColorCyan, "║")+"     "+title+"   "+paint(ui.ColorCyan, "║"))
	fmt.Fprintln(r.out, paint(ui.ColorCyan, "╚══════════════════════════════════════════════════════════╝")+"\n")
}

// printHelp lists the command table.
func (r *REPL) printHelp() {
	cmds := []struct{ name, what string }{
		{"run [policy]", "Benchmark all policies, or just one"},
		{"compare", "Benchmark all policies with the full report"},
		{"range <a> <b>", "Change the summation range to [a, b)"},
		{"workers <n>", "Cap parallel workers (0 = all CPUs)"},
		{"trials <n>", "Timed runs per policy; the fastest counts"},
		{"sweep", "Measure the optimal worker count"},
		{"list", "List policies and their name tokens"},
		{"theme <name>", "Switch color theme (dark, light, orange, none)"},
		{"status", "Display current configuration"},
		{"help", "Display this help"},
		{"exit / quit", "Exit interactive mode"},
	}

	fmt.Fprintln(r.out, paint(ui.ColorBold, "Available commands:"))
	for _, c := range cmds {
		fmt.Fprintf(r.out, "  %s - %s\n", paint(ui.ColorYellow, fmt.Sprintf("%-15s", c.name)), c.what)
	}
}

// processCommand dispatches one input line. A false return ends the
// session.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "run", "r":
		r.cmdRun(args)
	case "compare", "cmp":
		r.cmdCompare()
	case "range":
		r.cmdRange(args)
	case "workers", "w":
		r.cmdWorkers(args)
	case "trials", "t":
		r.cmdTrials(args)
	case "sweep":
		r.cmdSweep()
	case "list", "ls":
		r.cmdList()
	case "theme":
		r.cmdTheme(args)
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintln(r.out, paint(ui.ColorGreen, "Goodbye!"))
		return false
	default:
		// Try to interpret the whole line as a policy name for a
		// quick run; "parallel critical" is two fields but one token.
		if _, err := accumulate.ParsePolicy(input); err == nil {
			r.runSelection(input)
		} else {
			fmt.Fprintln(r.out, paint(ui.ColorRed, "Unknown command: "+cmd))
			fmt.Fprintln(r.out, "Type "+paint(ui.ColorYellow, "help")+" to see available commands.")
		}
	}

	return true
}

// cmdRun benchmarks the named policy, or all of them without an
// argument.
func (r *REPL) cmdRun(args []string) {
	selector := "all"
	if len(args) > 0 {
		selector = strings.Join(args, " ")
	}
	r.runSelection(selector)
}

// cmdCompare runs every policy with decoration forced on, so the
// ranking table shows even in a session launched with -quiet.
func (r *REPL) cmdCompare() {
	saved := r.cfg.Quiet
	r.cfg.Quiet = false
	r.runSelection("all")
	r.cfg.Quiet = saved
}

// runSelection benchmarks the selected policies with the current
// configuration and prints the full report.
func (r *REPL) runSelection(selector string) {
	policies, err := bench.PoliciesToRun(selector)
	if err != nil {
		fmt.Fprintln(r.out, paint(ui.ColorRed, err.Error()))
		return
	}

	label := "all policies"
	if len(policies) == 1 {
		label = "the " + policies[0].String() + " policy"
	}
	fmt.Fprintf(r.out, "Summing %s with %s...\n",
		paint(ui.ColorMagenta, "["+formatInt(r.cfg.Start)+", "+formatInt(r.cfg.End)+")"),
		paint(ui.ColorCyan, label))

	ctx, cancel := r.runContext()
	defer cancel()

	var reporter bench.ProgressReporter = CLIProgressReporter{}
	if r.cfg.Quiet {
		reporter = bench.NullProgressReporter{}
	}

	results := bench.NewRunner().Execute(ctx, policies, r.cfg, reporter, r.out)
	bench.AnalyzeRun(results, r.cfg, CLIResultPresenter{}, CLIErrorHandler{}, r.out)
	fmt.Fprintln(r.out)
}

// runContext bounds one command with the configured timeout, if any.
func (r *REPL) runContext() (context.Context, context.CancelFunc) {
	if r.cfg.Timeout > 0 {
		return context.WithTimeout(context.Background(), r.cfg.Timeout)
	}
	return context.WithCancel(context.Background())
}

// formatInt renders a signed count with thousand separators.
func formatInt(n int64) string {
	return format.FormatNumberString(strconv.FormatInt(n, 10))
}

// cmdRange points the session at a new half-open summation range.
func (r *REPL) cmdRange(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(r.out, paint(ui.ColorRed, "Usage: range <a> <b>"))
		return
	}

	start, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(r.out, paint(ui.ColorRed, "Invalid value: "+args[0]))
		return
	}
	end, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		fmt.Fprintln(r.out, paint(ui.ColorRed, "Invalid value: "+args[1]))
		return
	}
	if start >= end {
		fmt.Fprintln(r.out, paint(ui.ColorRed, "The range is half-open; <a> must be below <b>."))
		return
	}

	r.cfg.Start = start
	r.cfg.End = end
	fmt.Fprintf(r.out, "Range changed to: %s (%s elements)\n",
		paint(ui.ColorGreen, "["+formatInt(start)+", "+formatInt(end)+")"),
		format.FormatNumberString(strconv.FormatUint(r.cfg.ElementCount(), 10)))
}

// cmdWorkers caps the parallel workers. The cap takes effect through
// GOMAXPROCS, which the accumulators read when forking.
func (r *REPL) cmdWorkers(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(r.out, paint(ui.ColorRed, "Usage: workers <n>"))
		return
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		fmt.Fprintln(r.out, paint(ui.ColorRed, "Invalid value: "+args[0]))
		return
	}

	r.cfg.Workers = n
	if n > 0 {
		runtime.GOMAXPROCS(n)
		fmt.Fprintf(r.out, "Workers capped at: %s\n", paint(ui.ColorGreen, strconv.Itoa(n)))
	} else {
		runtime.GOMAXPROCS(runtime.NumCPU())
		fmt.Fprintf(r.out, "Workers restored to: %s\n", paint(ui.ColorGreen, fmt.Sprintf("all %d CPUs", runtime.NumCPU())))
	}
}

// cmdTrials sets how many timed runs each policy gets.
func (r *REPL) cmdTrials(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(r.out, paint(ui.ColorRed, "Usage: trials <n>"))
		return
	}

	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		fmt.Fprintln(r.out, paint(ui.ColorRed, "Trials must be a number of at least 1."))
		return
	}

	r.cfg.Trials = n
	fmt.Fprintf(r.out, "Trials per policy: %s\n", paint(ui.ColorGreen, strconv.Itoa(n)))
}

// cmdSweep measures worker scaling on the reduced ladder: an
// interactive user wants the answer, not the full scaling curve.
func (r *REPL) cmdSweep() {
	fmt.Fprintf(r.out, "Sweeping worker counts over %s...\n",
		paint(ui.ColorMagenta, "["+formatInt(r.cfg.Start)+", "+formatInt(r.cfg.End)+")"))

	ctx, cancel := r.runContext()
	defer cancel()

	profile, err := calibration.RunSweep(ctx, calibration.SweepOptions{
		Start:  r.cfg.Start,
		End:    r.cfg.End,
		Trials: r.cfg.Trials,
		Policy: accumulate.ParallelReduce,
		Quick:  true,
	}, r.out)
	if err != nil {
		fmt.Fprintln(r.out, paint(ui.ColorRed, fmt.Sprintf("Sweep interrupted: %v", err)))
		return
	}

	path := calibration.GetDefaultProfilePath()
	if saveErr := profile.SaveProfile(path); saveErr != nil {
		fmt.Fprintln(r.out, paint(ui.ColorRed, fmt.Sprintf("Could not save the profile: %v", saveErr)))
		path = ""
	}
	calibration.PrintSweepOutcome(profile, path, r.out)
	fmt.Fprintln(r.out)
}

// cmdList prints each policy with the tokens run accepts for it.
func (r *REPL) cmdList() {
	fmt.Fprintln(r.out, "\n"+paint(ui.ColorBold, "Available policies:"))
	for _, p := range accumulate.Policies() {
		marker := "  "
		if p == accumulate.Sequential {
			marker = paint(ui.ColorGreen, "► ")
		}
		fmt.Fprintf(r.out, "%s%s - %s\n", marker, paint(ui.ColorYellow, fmt.Sprintf("%-18s", p)), policyTokens(p))
	}
	fmt.Fprintln(r.out)
}

// policyTokens returns the name tokens the run command accepts for a
// policy, annotated where the policy plays a special role.
func policyTokens(p accumulate.Policy) string {
	switch p {
	case accumulate.Sequential:
		return "seq, serial, sequential (the speedup baseline)"
	case accumulate.Parallel:
		return "par, parallel (unsynchronized, loses updates)"
	case accumulate.ParallelAtomic:
		return "atomic"
	case accumulate.ParallelCritical:
		return "critical"
	case accumulate.ParallelReduce:
		return "reduce"
	default:
		return ""
	}
}

// cmdTheme switches the palette for subsequent output.
func (r *REPL) cmdTheme(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(r.out, paint(ui.ColorRed, "Usage: theme <name>"))
		fmt.Fprintln(r.out, "Available themes: dark, light, orange, none")
		return
	}

	name := strings.ToLower(args[0])
	switch name {
	case "dark", "light", "orange", "none":
		ui.SetTheme(name)
		fmt.Fprintf(r.out, "Theme changed to: %s\n", paint(ui.ColorGreen, name))
	default:
		fmt.Fprintln(r.out, paint(ui.ColorRed, "Unknown theme: "+name))
		fmt.Fprintln(r.out, "Available themes: dark, light, orange, none")
	}
}

// cmdStatus summarizes the settings the next run will use.
func (r *REPL) cmdStatus() {
	workers := fmt.Sprintf("all (%d CPUs)", runtime.GOMAXPROCS(0))
	if r.cfg.Workers > 0 {
		workers = strconv.Itoa(r.cfg.Workers)
	}
	timeout := "none"
	if r.cfg.Timeout > 0 {
		timeout = r.cfg.Timeout.String()
	}
	strict := "no"
	if r.cfg.Strict {
		strict = "yes"
	}

	fmt.Fprintln(r.out, "\n"+paint(ui.ColorBold, "Current configuration:"))
	fmt.Fprintf(r.out, "  Range:     %s\n", paint(ui.ColorCyan, "["+formatInt(r.cfg.Start)+", "+formatInt(r.cfg.End)+")"))
	fmt.Fprintf(r.out, "  Elements:  %s\n", paint(ui.ColorCyan, format.FormatNumberString(strconv.FormatUint(r.cfg.ElementCount(), 10))))
	fmt.Fprintf(r.out, "  Workers:   %s\n", paint(ui.ColorCyan, workers))
	fmt.Fprintf(r.out, "  Trials:    %s\n", paint(ui.ColorCyan, strconv.Itoa(r.cfg.Trials)))
	fmt.Fprintf(r.out, "  Timeout:   %s\n", paint(ui.ColorCyan, timeout))
	fmt.Fprintf(r.out, "  Strict:    %s\n", paint(ui.ColorCyan, strict))
	fmt.Fprintln(r.out)
}
