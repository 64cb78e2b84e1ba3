package cli

import (
	"time"

	"github.com/briandowns/spinner"
)

const (
	// spinnerRefreshRate paces the spinner animation and the ETA
	// re-render between runner updates.
	spinnerRefreshRate = 200 * time.Millisecond
	// progressBarWidth is the character width of the aggregated bar.
	progressBarWidth = 40
)

// Spinner is the slice of terminal-spinner behavior DisplayProgress
// needs: animation control and a replaceable trailing message.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
}

// terminalSpinner adapts briandowns/spinner to the Spinner interface.
type terminalSpinner struct {
	s *spinner.Spinner
}

func (ts *terminalSpinner) Start() { ts.s.Start() }

func (ts *terminalSpinner) Stop() { ts.s.Stop() }

func (ts *terminalSpinner) UpdateSuffix(suffix string) {
	ts.s.Suffix = suffix
}

// newSpinner is a construction seam. Tests swap it for a recorder so
// progress rendering can be asserted without a terminal.
var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], spinnerRefreshRate, options...)
	return &terminalSpinner{s}
}
