package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/accumulate"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/bench"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/calibration"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/cli"
	apperrors "github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/errors"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/logging"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/metrics"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/server"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/stopwatch"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/sysmon"
)

// shutdownGrace bounds the metrics server drain after a run completes.
const shutdownGrace = 5 * time.Second

// runBenchmark executes the policy comparison: banner, per-policy timed
// runs, verification and the ranking table, then the exit code from the
// run analysis.
func (a *Application) runBenchmark(ctx context.Context, out io.Writer) int {
	ctx, cancel := a.lifecycleContext(ctx)
	defer cancel()

	policies := accumulate.Policies()

	var promMetrics *server.Metrics
	if a.Config.MetricsAddr != "" {
		promMetrics = server.NewMetrics()
		metricsSrv := server.New(a.Config.MetricsAddr, promMetrics, a.Logger)
		if err := metricsSrv.Start(); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error starting metrics server: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		defer func() {
			shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancelShutdown()
			if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
				a.Logger.Error("metrics server shutdown", err)
			}
		}()
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, sysmon.Sample(), out)
		cli.PrintExecutionMode(policies, out)
	}

	// -no-gc forces collector silence around every timed run; otherwise
	// the controller engages only when the workload is large enough for
	// a collection pause to distort a measurement.
	gcMode := string(metrics.GCModeAuto)
	if a.Config.NoGC {
		gcMode = string(metrics.GCModeAggressive)
	}
	quiesce := metrics.NewGCController(gcMode, a.Config.ElementCount())
	if a.Config.Verbose {
		quiesce.SetLogger(zerolog.New(zerolog.ConsoleWriter{
			Out:        a.ErrWriter,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger())
	}

	runnerOpts := []bench.RunnerOption{bench.WithQuiescence(quiesce)}
	if promMetrics != nil {
		runnerOpts = append(runnerOpts, bench.WithRunCounter(promMetrics.RecordPolicyRun))
	}

	var reporter bench.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		reporter = bench.NullProgressReporter{}
		progressOut = io.Discard
	}

	memCollector := metrics.NewMemoryCollector()
	memBefore := memCollector.Snapshot()
	ruBefore, haveRusage := metrics.ReadResourceUsage()
	wall := stopwatch.New()
	wall.Start()

	results := bench.NewRunner(runnerOpts...).Execute(ctx, policies, a.Config, reporter, progressOut)

	wall.Stop()

	if promMetrics != nil {
		promMetrics.RecordBenchmarkRun()
		for _, res := range results {
			if res.Err == nil {
				promMetrics.SetPolicyDuration(res.Policy.String(), res.Duration)
			}
		}
	}

	exitCode := bench.AnalyzeRun(results, a.Config, cli.CLIResultPresenter{}, cli.CLIErrorHandler{}, out)

	if a.Config.Verbose {
		cli.DisplayMemoryStats(memCollector.Snapshot().Delta(memBefore), out)
		if ruAfter, ok := metrics.ReadResourceUsage(); haveRusage && ok {
			cli.DisplayResourceUsage(ruAfter.Sub(ruBefore), wall.Elapsed(), out)
		}
	}

	return exitCode
}

// runSweep measures how the reduction policy scales across worker counts
// instead of comparing policies, then persists the optimum as a
// calibration profile.
func (a *Application) runSweep(ctx context.Context, out io.Writer) int {
	ctx, cancel := a.lifecycleContext(ctx)
	defer cancel()

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, sysmon.Sample(), out)
	}

	profile, err := calibration.RunSweep(ctx, calibration.SweepOptions{
		Start:  a.Config.Start,
		End:    a.Config.End,
		Trials: a.Config.Trials,
		Policy: accumulate.ParallelReduce,
	}, out)
	if err != nil {
		return cli.CLIErrorHandler{}.HandleError(err, 0, out)
	}

	path := calibration.GetDefaultProfilePath()
	if saveErr := profile.SaveProfile(path); saveErr != nil {
		a.Logger.Error("saving calibration profile", saveErr, logging.String("path", path))
		path = ""
	}
	calibration.PrintSweepOutcome(profile, path, out)
	return apperrors.ExitSuccess
}
