// Package app wires configuration, front ends and the benchmark runner
// into one application object with an exit code.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/cli"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/config"
	apperrors "github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/errors"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/logging"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/tui"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/ui"
)

// Application represents one sharedvars invocation.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger
}

// AppOption adjusts an Application while New assembles it.
type AppOption func(*Application)

// WithLogger substitutes the diagnostics logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New parses the command line into an Application. args carries the
// full argv, program name first, matching os.Args.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Logger == nil {
		app.Logger = logging.NewDefaultLogger()
	}

	programName := "sharedvars"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run dispatches to the front end the flags selected and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	level := zerolog.InfoLevel
	if a.Config.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	ui.InitTheme(a.Config.NoColor)

	// The accumulators read their fork width from the scheduler, so the
	// worker cap is applied process-wide before any mode runs.
	if a.Config.Workers > 0 {
		runtime.GOMAXPROCS(a.Config.Workers)
	}

	switch {
	case a.Config.Interactive:
		return a.runInteractive(out)
	case a.Config.TUI:
		return a.runTUI(ctx)
	case a.Config.Sweep:
		return a.runSweep(ctx, out)
	default:
		return a.runBenchmark(ctx, out)
	}
}

// runCompletion writes the requested shell completion script to out.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "completion script: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runInteractive starts the REPL session.
func (a *Application) runInteractive(out io.Writer) int {
	repl := cli.NewREPL(a.Config)
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runTUI launches the full-screen dashboard.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, cancel := a.lifecycleContext(ctx)
	defer cancel()
	return tui.Run(ctx, a.Config, Version)
}

// lifecycleContext bounds a run with the configured timeout, when one is
// set, and maps SIGINT/SIGTERM to cancellation.
func (a *Application) lifecycleContext(ctx context.Context) (context.Context, context.CancelFunc) {
	cancelTimeout := func() {}
	if a.Config.Timeout > 0 {
		ctx, cancelTimeout = context.WithTimeout(ctx, a.Config.Timeout)
	}
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// IsHelpError reports whether err came from the -h/--help flag, which
// exits zero rather than as a configuration failure.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
