// Package config defines the application configuration, parsed from
// command-line flags with environment variable overrides.
// Priority: CLI flags > environment variables > defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	apperrors "github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/errors"
)

// EnvPrefix is prepended to every environment variable override key.
const EnvPrefix = "SHAREDVARS_"

// DefaultEnd is the default exclusive upper bound of the summation
// range: one eighth of the 32-bit signed maximum, the stock workload of
// the demonstration this harness descends from. Summing [0, DefaultEnd)
// yields 36028796616310785.
const DefaultEnd = int64(1<<28 - 1)

// AppConfig holds the complete runtime configuration of the harness.
type AppConfig struct {
	// Start is the inclusive lower bound of the summation range.
	Start int64
	// End is the exclusive upper bound of the summation range.
	End int64
	// Workers caps the parallel width. 0 means all logical CPUs.
	// Applied through runtime.GOMAXPROCS at startup; the summation
	// core always reads GOMAXPROCS(0).
	Workers int
	// Trials is how many times each policy runs; the fastest trial is
	// reported.
	Trials int
	// Timeout bounds the whole benchmark suite. 0 disables the
	// deadline.
	Timeout time.Duration
	// Strict turns a verified-sum mismatch of a synchronized policy
	// into exit code 3. The racy policy is always exempt.
	Strict bool
	// NoGC disables the garbage collector during timed regions.
	NoGC bool
	// Sweep selects the worker-count sweep mode instead of the policy
	// comparison.
	Sweep bool
	// MetricsAddr, when non-empty, serves Prometheus metrics on this
	// address for the duration of the run.
	MetricsAddr string
	// TUI selects the full-screen dashboard front-end.
	TUI bool
	// Interactive selects the read-eval-print loop front-end.
	Interactive bool
	// Quiet suppresses all decoration; only the result block prints.
	Quiet bool
	// NoColor disables ANSI colors (equivalent to setting NO_COLOR).
	NoColor bool
	// Verbose enables debug logging and per-run memory statistics.
	Verbose bool
	// ShowVersion prints version information and exits.
	ShowVersion bool
	// Completion holds the target shell of the `completion` subcommand
	// ("bash", "zsh" or "fish"); empty outside that subcommand.
	Completion string
}

// ElementCount returns the number of elements in [Start, End), zero for
// an empty or inverted range.
func (c AppConfig) ElementCount() uint64 {
	if c.Start >= c.End {
		return 0
	}
	return uint64(c.End) - uint64(c.Start)
}

// IsMultiTrial reports whether each policy runs more than once.
func (c AppConfig) IsMultiTrial() bool {
	return c.Trials > 1
}

// ParseConfig parses command-line arguments into an AppConfig, applies
// environment overrides for flags left unset, and validates the result.
//
// Parameters:
//   - programName: The name used in usage output.
//   - args: The command-line arguments, without the program name.
//   - errWriter: The writer for usage and parse error output.
//
// Returns:
//   - AppConfig: The validated configuration.
//   - error: flag.ErrHelp when help was requested, a ConfigError or
//     ValidationError for invalid input, nil otherwise.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	// The completion subcommand precedes flag parsing so that
	// `sharedvars completion bash` needs no flag of its own.
	if len(args) > 0 && args[0] == "completion" {
		if len(args) != 2 {
			return AppConfig{}, apperrors.NewConfigError("usage: %s completion <bash|zsh|fish>", programName)
		}
		return AppConfig{Completion: args[1]}, nil
	}

	var cfg AppConfig
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.Int64Var(&cfg.Start, "start", 0, "inclusive lower bound of the summation range")
	fs.Int64Var(&cfg.End, "end", DefaultEnd, "exclusive upper bound of the summation range")
	fs.IntVar(&cfg.Workers, "workers", 0, "parallel worker cap (0 = all logical CPUs)")
	fs.IntVar(&cfg.Trials, "trials", 1, "runs per policy; the fastest is reported")
	fs.DurationVar(&cfg.Timeout, "timeout", 0, "deadline for the whole suite (0 = none)")
	fs.BoolVar(&cfg.Strict, "strict", false, "exit 3 when a synchronized policy misses the verified sum")
	fs.BoolVar(&cfg.NoGC, "no-gc", false, "disable the garbage collector during timed regions")
	fs.BoolVar(&cfg.Sweep, "sweep", false, "run the worker-count scaling sweep instead of the policy comparison")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address during the run")
	fs.BoolVar(&cfg.TUI, "tui", false, "full-screen dashboard front-end")
	fs.BoolVar(&cfg.Interactive, "i", false, "interactive read-eval-print loop")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "print only the result block")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable ANSI colors")
	fs.BoolVar(&cfg.Verbose, "v", false, "debug logging and per-run memory statistics")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print version information and exit")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags]\n", programName)
		fmt.Fprintf(errWriter, "       %s completion <bash|zsh|fish>\n\n", programName)
		fmt.Fprintf(errWriter, "Measures the wall-clock cost of five synchronization disciplines\n")
		fmt.Fprintf(errWriter, "summing the same integer range.\n\nFlags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(errWriter, "\nEnvironment overrides (applied when the flag is unset): %sSTART,\n", EnvPrefix)
		fmt.Fprintf(errWriter, "%sEND, %sWORKERS, %sTRIALS, %sTIMEOUT and the boolean flags likewise.\n",
			EnvPrefix, EnvPrefix, EnvPrefix, EnvPrefix)
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected argument %q", fs.Arg(0))
	}

	applyEnvOverrides(&cfg, fs)

	if err := validate(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// validate checks cross-field constraints that flag parsing cannot
// express.
func validate(cfg AppConfig) error {
	if cfg.Trials < 1 {
		return apperrors.ValidationError{Field: "trials", Message: "must be at least 1"}
	}
	if cfg.Workers < 0 {
		return apperrors.ValidationError{Field: "workers", Message: "must not be negative"}
	}
	if cfg.Timeout < 0 {
		return apperrors.ValidationError{Field: "timeout", Message: "must not be negative"}
	}
	if cfg.Sweep && cfg.TUI {
		return apperrors.ValidationError{Field: "sweep", Message: "the sweep prints a plain table and has no dashboard; drop -tui"}
	}
	if cfg.Interactive && cfg.TUI {
		return apperrors.ValidationError{Field: "i", Message: "interactive mode and the dashboard are mutually exclusive"}
	}
	return nil
}
