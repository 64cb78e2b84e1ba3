package cli

import (
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/bench"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/ui"
)

// stubSpinner records the calls DisplayProgress makes so tests can
// assert on the rendered suffix without a terminal.
type stubSpinner struct {
	started bool
	stopped bool
	suffix  string
}

func (s *stubSpinner) Start()                     { s.started = true }
func (s *stubSpinner) Stop()                      { s.stopped = true }
func (s *stubSpinner) UpdateSuffix(suffix string) { s.suffix = suffix }

// swapSpinner routes newSpinner to a stub for the test's duration.
func swapSpinner(t *testing.T) *stubSpinner {
	t.Helper()
	stub := &stubSpinner{}
	original := newSpinner
	newSpinner = func(options ...spinner.Option) Spinner { return stub }
	t.Cleanup(func() { newSpinner = original })
	return stub
}

func TestTerminalSpinner_ForwardsSuffix(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 50*time.Millisecond, spinner.WithWriter(io.Discard))
	ts := &terminalSpinner{s}

	ts.Start()
	ts.UpdateSuffix(" 42%")
	ts.Stop()

	if ts.s.Suffix != " 42%" {
		t.Errorf("Suffix = %q, want %q", ts.s.Suffix, " 42%")
	}
}

func TestDisplayProgress(t *testing.T) {
	stub := swapSpinner(t)

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan bench.ProgressUpdate)

	go func() {
		progressChan <- bench.ProgressUpdate{RunIndex: 0, Value: 0.5}
		time.Sleep(10 * time.Millisecond)
		close(progressChan)
	}()

	DisplayProgress(&wg, progressChan, 1, io.Discard)
	wg.Wait()

	if !stub.started {
		t.Error("spinner never started")
	}
	if !stub.stopped {
		t.Error("spinner never stopped")
	}
	if !strings.Contains(stub.suffix, "50.0%") {
		t.Errorf("suffix = %q, want the halfway update reflected", stub.suffix)
	}
}

func TestDisplayProgress_ZeroRuns(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan bench.ProgressUpdate)
	close(progressChan)

	// Zero runs means nothing to display; the channel is still drained
	// so senders never block.
	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
}

func TestThemeAccessorsFollowActiveTheme(t *testing.T) {
	original := ui.GetCurrentTheme()
	defer ui.SetCurrentTheme(original)

	ui.SetCurrentTheme(ui.NoColorTheme)
	if ui.ColorGreen() != "" || ui.ColorReset() != "" {
		t.Error("no-color theme should yield empty escape codes")
	}

	ui.SetCurrentTheme(ui.DarkTheme)
	if ui.ColorGreen() == "" || ui.ColorReset() == "" {
		t.Error("dark theme should yield real escape codes")
	}
}
