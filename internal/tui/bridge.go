package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/bench"
	apperrors "github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/errors"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/format"
)

// programRef hands bridge goroutines a stable pointer to the running
// tea.Program. bubbletea copies the model value on every Update, so the
// model cannot carry the program itself; this box outlives the copies.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram publishes p to every goroutine holding the ref.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the published program. Messages sent before
// SetProgram are dropped.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// sender is the slice of programRef the bridge types need. Tests
// substitute a recording implementation.
type sender interface {
	Send(msg tea.Msg)
}

// TUIProgressReporter satisfies bench.ProgressReporter by folding raw
// progress updates through an aggregator and resending them as
// ProgressMsg values.
type TUIProgressReporter struct {
	ref sender
}

var _ bench.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress consumes progressChan until the producer closes it,
// then announces completion with a ProgressDoneMsg.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan bench.ProgressUpdate, numRuns int, _ io.Writer) {
	defer wg.Done()

	agg := bench.NewProgressAggregator(numRuns)
	if agg == nil {
		bench.DrainChannel(progressChan)
		return
	}

	for update := range progressChan {
		ap := agg.Update(update)
		t.ref.Send(ProgressMsg{
			RunIndex:        ap.RunIndex,
			Value:           ap.Value,
			AverageProgress: ap.AverageProgress,
			ETA:             ap.ETA,
		})
	}
	t.ref.Send(ProgressDoneMsg{})
}

// TUIResultPresenter satisfies the bench presentation seams by turning
// each callback into a message for the dashboard, leaving the writer
// arguments untouched.
type TUIResultPresenter struct {
	ref sender
}

var (
	_ bench.ResultPresenter   = (*TUIResultPresenter)(nil)
	_ bench.DurationFormatter = (*TUIResultPresenter)(nil)
	_ bench.ErrorHandler      = (*TUIResultPresenter)(nil)
)

// PresentResultLine sends one policy's result to the TUI.
func (t *TUIResultPresenter) PresentResultLine(result bench.PolicyResult, baseline time.Duration, _ io.Writer) {
	t.ref.Send(ResultLineMsg{Result: result, Baseline: baseline})
}

// PresentComparisonTable sends the ranked results to the TUI.
func (t *TUIResultPresenter) PresentComparisonTable(results []bench.PolicyResult, _ io.Writer) {
	t.ref.Send(RankingMsg{Results: results})
}

// PresentVerification sends the verification outcome to the TUI.
func (t *TUIResultPresenter) PresentVerification(checks []bench.Verification, strict bool, _ io.Writer) {
	t.ref.Send(VerificationMsg{Checks: checks, Strict: strict})
}

// FormatDuration delegates to the shared duration formatter.
func (t *TUIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError surfaces err on the dashboard and maps it to the process
// exit code. A nil err sends nothing.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	if err != nil {
		t.ref.Send(ErrorMsg{Err: err, Duration: duration})
	}
	return apperrors.ExitCodeForError(err)
}
