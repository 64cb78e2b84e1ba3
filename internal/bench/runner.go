package bench

import (
	"context"
	"io"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/accumulate"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/config"
	apperrors "github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/errors"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/stopwatch"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the
// progress channel. A larger buffer reduces the likelihood of dropping
// updates when the UI is slow to consume them.
const ProgressBufferMultiplier = 5

// nopQuiescence is the default QuiescenceController.
type nopQuiescence struct{}

func (nopQuiescence) Begin() {}
func (nopQuiescence) End()   {}

// Runner executes benchmark suites. Its collaborators default to the
// real implementations; tests substitute mocks through the options.
type Runner struct {
	clock       stopwatch.Stopwatch
	tracer      trace.Tracer
	quiesce     QuiescenceController
	onPolicyRun func(policy string)
}

// RunnerOption configures a Runner during construction.
type RunnerOption func(*Runner)

// WithStopwatch substitutes the timer used for timing runs.
func WithStopwatch(sw stopwatch.Stopwatch) RunnerOption {
	return func(r *Runner) { r.clock = sw }
}

// WithTracer substitutes the tracer that receives a span per policy run.
func WithTracer(t trace.Tracer) RunnerOption {
	return func(r *Runner) { r.tracer = t }
}

// WithQuiescence installs a controller invoked around each policy's
// timed trials, typically the GC controller.
func WithQuiescence(q QuiescenceController) RunnerOption {
	return func(r *Runner) { r.quiesce = q }
}

// WithRunCounter installs a hook called once per policy run, used to
// feed the optional metrics server.
func WithRunCounter(f func(policy string)) RunnerOption {
	return func(r *Runner) { r.onPolicyRun = f }
}

// NewRunner creates a Runner with real collaborators: a monotonic
// stopwatch, the globally registered tracer (a no-op unless the host
// process installed one) and no runtime quiescence.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		clock:   stopwatch.New(),
		tracer:  otel.Tracer("sharedvars/bench"),
		quiesce: nopQuiescence{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Execute runs the given policies in order over the configured workload
// and collects one PolicyResult per policy.
//
// Policies run strictly sequentially: their durations are compared
// against each other, so concurrent runs would contend for the very
// cores being measured. Progress updates flow through a buffered channel
// to the reporter goroutine, which is always started and always joined,
// mirroring the runner's fork/join discipline even when the reporter is
// the null implementation.
//
// A context expiring between runs marks the remaining policies with the
// context error; the run in flight always completes.
//
// Parameters:
//   - ctx: The context bounding the whole suite.
//   - policies: The policies to run, in display order.
//   - cfg: The application configuration (workload bounds, trials).
//   - reporter: The progress reporter (use NullProgressReporter for
//     quiet mode).
//   - out: The io.Writer for progress output.
//
// Returns:
//   - []PolicyResult: One result per requested policy, in input order.
func (r *Runner) Execute(ctx context.Context, policies []accumulate.Policy, cfg config.AppConfig, reporter ProgressReporter, out io.Writer) []PolicyResult {
	results := make([]PolicyResult, len(policies))
	progressChan := make(chan ProgressUpdate, len(policies)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(policies), out)

	for i, policy := range policies {
		if err := ctx.Err(); err != nil {
			results[i] = PolicyResult{
				Policy: policy,
				Trial:  -1,
				Err:    apperrors.BenchmarkError{Policy: policy.String(), Cause: err},
			}
			continue
		}
		results[i] = r.runPolicy(ctx, policy, cfg, i, progressChan)
	}

	close(progressChan)
	displayWg.Wait()

	return results
}

// runPolicy benchmarks one policy: cfg.Trials timed runs over the
// workload, keeping the fastest. All trial sums are retained for the
// verifier. The context is consulted between trials only; the summation
// itself is never interrupted.
func (r *Runner) runPolicy(ctx context.Context, policy accumulate.Policy, cfg config.AppConfig, runIndex int, progressChan chan<- ProgressUpdate) PolicyResult {
	_, span := r.tracer.Start(ctx, "bench.policy",
		trace.WithAttributes(
			attribute.String("policy", policy.String()),
			attribute.Int64("range.start", cfg.Start),
			attribute.Int64("range.end", cfg.End),
			attribute.Int("trials", cfg.Trials),
		))
	defer span.End()

	if r.onPolicyRun != nil {
		r.onPolicyRun(policy.String())
	}

	r.quiesce.Begin()
	defer r.quiesce.End()

	result := PolicyResult{
		Policy:    policy,
		Trial:     -1,
		TrialSums: make([]int64, 0, cfg.Trials),
	}

	for trial := 0; trial < cfg.Trials; trial++ {
		r.clock.Reset()
		r.clock.Start()
		sum := accumulate.Sum(policy, cfg.Start, cfg.End)
		r.clock.Stop()

		elapsed := r.clock.Elapsed()
		millis := r.clock.ElapsedMilliseconds()
		result.TrialSums = append(result.TrialSums, sum)

		if result.Trial < 0 || elapsed < result.Duration {
			result.Sum = sum
			result.Duration = elapsed
			result.Millis = millis
			result.Trial = trial
		}

		select {
		case progressChan <- ProgressUpdate{RunIndex: runIndex, Value: float64(trial+1) / float64(cfg.Trials)}:
		default:
			// Never block the benchmark on a slow display.
		}

		if ctx.Err() != nil {
			break
		}
	}

	return result
}
