package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/accumulate"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/bench"
	apperrors "github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/errors"
)

// msgRecorder captures everything the bridge would hand to the program.
type msgRecorder struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *msgRecorder) Send(msg tea.Msg) {
	r.mu.Lock()
	r.msgs = append(r.msgs, msg)
	r.mu.Unlock()
}

func (r *msgRecorder) recorded() []tea.Msg {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]tea.Msg(nil), r.msgs...)
}

func TestTUIProgressReporter_ForwardsAggregatedUpdates(t *testing.T) {
	rec := &msgRecorder{}
	reporter := &TUIProgressReporter{ref: rec}

	ch := make(chan bench.ProgressUpdate, 2)
	ch <- bench.ProgressUpdate{RunIndex: 0, Value: 0.5}
	ch <- bench.ProgressUpdate{RunIndex: 1, Value: 1.0}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	reporter.DisplayProgress(&wg, ch, 2, nil)
	wg.Wait()

	msgs := rec.recorded()
	if len(msgs) != 3 {
		t.Fatalf("recorded %d messages, want 2 updates plus done", len(msgs))
	}

	first, ok := msgs[0].(ProgressMsg)
	if !ok {
		t.Fatalf("msgs[0] = %T, want ProgressMsg", msgs[0])
	}
	if first.RunIndex != 0 || first.Value != 0.5 || first.AverageProgress != 0.25 {
		t.Errorf("first update = %+v, want run 0 at 0.5 averaging 0.25", first)
	}

	second, ok := msgs[1].(ProgressMsg)
	if !ok {
		t.Fatalf("msgs[1] = %T, want ProgressMsg", msgs[1])
	}
	if second.RunIndex != 1 || second.Value != 1.0 || second.AverageProgress != 0.75 {
		t.Errorf("second update = %+v, want run 1 at 1.0 averaging 0.75", second)
	}

	if _, ok := msgs[2].(ProgressDoneMsg); !ok {
		t.Errorf("msgs[2] = %T, want ProgressDoneMsg", msgs[2])
	}
}

func TestTUIProgressReporter_EmptyChannelStillSignalsDone(t *testing.T) {
	rec := &msgRecorder{}
	reporter := &TUIProgressReporter{ref: rec}

	ch := make(chan bench.ProgressUpdate)
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	reporter.DisplayProgress(&wg, ch, 1, nil)
	wg.Wait()

	msgs := rec.recorded()
	if len(msgs) != 1 {
		t.Fatalf("recorded %d messages, want only the done signal", len(msgs))
	}
	if _, ok := msgs[0].(ProgressDoneMsg); !ok {
		t.Errorf("msgs[0] = %T, want ProgressDoneMsg", msgs[0])
	}
}

// With no runs there is no aggregator; the channel must still be
// drained so writers do not block, and nothing reaches the program.
func TestTUIProgressReporter_NoRunsDrainsSilently(t *testing.T) {
	rec := &msgRecorder{}
	reporter := &TUIProgressReporter{ref: rec}

	ch := make(chan bench.ProgressUpdate, 2)
	ch <- bench.ProgressUpdate{RunIndex: 0, Value: 0.5}
	ch <- bench.ProgressUpdate{RunIndex: 0, Value: 1.0}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	reporter.DisplayProgress(&wg, ch, 0, nil)
	wg.Wait()

	if msgs := rec.recorded(); len(msgs) != 0 {
		t.Errorf("recorded %d messages, want none for a zero-run display", len(msgs))
	}
}

func TestTUIResultPresenter_ForwardsResultMessages(t *testing.T) {
	rec := &msgRecorder{}
	presenter := &TUIResultPresenter{ref: rec}

	fastest := bench.PolicyResult{
		Policy:   accumulate.ParallelReduce,
		Sum:      499500,
		Duration: 40 * time.Millisecond,
		Millis:   40,
	}
	ranked := []bench.PolicyResult{
		fastest,
		{Policy: accumulate.Sequential, Sum: 499500, Duration: 100 * time.Millisecond},
	}
	checks := []bench.Verification{
		{Policy: accumulate.Parallel, Sum: 271828, Want: 499500, Match: false, Enforced: false},
	}

	presenter.PresentResultLine(fastest, 100*time.Millisecond, nil)
	presenter.PresentComparisonTable(ranked, nil)
	presenter.PresentVerification(checks, true, nil)

	msgs := rec.recorded()
	if len(msgs) != 3 {
		t.Fatalf("recorded %d messages, want 3", len(msgs))
	}

	line, ok := msgs[0].(ResultLineMsg)
	if !ok {
		t.Fatalf("msgs[0] = %T, want ResultLineMsg", msgs[0])
	}
	if line.Result.Policy != accumulate.ParallelReduce || line.Result.Sum != 499500 {
		t.Errorf("result line = %+v, want the presented result", line.Result)
	}
	if line.Baseline != 100*time.Millisecond {
		t.Errorf("baseline = %v, want 100ms", line.Baseline)
	}

	ranking, ok := msgs[1].(RankingMsg)
	if !ok {
		t.Fatalf("msgs[1] = %T, want RankingMsg", msgs[1])
	}
	if len(ranking.Results) != 2 || ranking.Results[0].Policy != accumulate.ParallelReduce {
		t.Errorf("ranking = %+v, want the presented order", ranking.Results)
	}

	verification, ok := msgs[2].(VerificationMsg)
	if !ok {
		t.Fatalf("msgs[2] = %T, want VerificationMsg", msgs[2])
	}
	if !verification.Strict {
		t.Error("strict flag should ride along with the checks")
	}
	if len(verification.Checks) != 1 || verification.Checks[0] != checks[0] {
		t.Errorf("checks = %+v, want %+v", verification.Checks, checks)
	}
}

func TestTUIResultPresenter_HandleError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"deadline exceeded", context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{"canceled", context.Canceled, apperrors.ExitErrorCanceled},
		{"ordinary failure", errors.New("boom"), apperrors.ExitErrorGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &msgRecorder{}
			presenter := &TUIResultPresenter{ref: rec}

			if got := presenter.HandleError(tt.err, 5*time.Second, nil); got != tt.want {
				t.Errorf("HandleError() = %d, want %d", got, tt.want)
			}

			msgs := rec.recorded()
			if len(msgs) != 1 {
				t.Fatalf("recorded %d messages, want 1", len(msgs))
			}
			em, ok := msgs[0].(ErrorMsg)
			if !ok {
				t.Fatalf("msgs[0] = %T, want ErrorMsg", msgs[0])
			}
			if em.Err != tt.err || em.Duration != 5*time.Second {
				t.Errorf("ErrorMsg = %+v, want the error with its elapsed time", em)
			}
		})
	}

	t.Run("nil error sends nothing", func(t *testing.T) {
		rec := &msgRecorder{}
		presenter := &TUIResultPresenter{ref: rec}

		if got := presenter.HandleError(nil, 0, nil); got != apperrors.ExitSuccess {
			t.Errorf("HandleError(nil) = %d, want %d", got, apperrors.ExitSuccess)
		}
		if msgs := rec.recorded(); len(msgs) != 0 {
			t.Errorf("recorded %d messages, want none", len(msgs))
		}
	})
}

func TestTUIResultPresenter_FormatDuration(t *testing.T) {
	presenter := &TUIResultPresenter{ref: &msgRecorder{}}

	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0µs"},
		{500 * time.Microsecond, "500µs"},
		{42 * time.Millisecond, "42ms"},
		{2500 * time.Millisecond, "2.5s"},
		{3 * time.Minute, "3m0s"},
	}

	for _, tt := range tests {
		if got := presenter.FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestProgramRef_NilProgramDropsSends(t *testing.T) {
	ref := &programRef{}
	ref.Send(ProgressMsg{Value: 0.5})
}

func TestProgramRef_ConcurrentSendAndSet(t *testing.T) {
	ref := &programRef{}

	var wg sync.WaitGroup
	wg.Add(100)
	for i := 0; i < 100; i++ {
		i := i
		go func() {
			defer wg.Done()
			if i%10 == 0 {
				ref.SetProgram(nil)
			}
			ref.Send(ProgressMsg{Value: float64(i) / 100})
		}()
	}
	wg.Wait()
}
