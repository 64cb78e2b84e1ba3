package tui

import "strings"

// FooterModel renders the bottom bar: run status plus key hints.
type FooterModel struct {
	width    int
	done     bool
	paused   bool
	hasError bool
}

// NewFooterModel creates a new footer.
func NewFooterModel() FooterModel {
	return FooterModel{}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
}

// SetDone marks the run finished.
func (f *FooterModel) SetDone(done bool) {
	f.done = done
}

// SetPaused marks the display paused.
func (f *FooterModel) SetPaused(paused bool) {
	f.paused = paused
}

// SetError marks the run failed.
func (f *FooterModel) SetError(hasError bool) {
	f.hasError = hasError
}

// View renders the footer.
func (f FooterModel) View() string {
	var status string
	switch {
	case f.hasError:
		status = statusErrorStyle.Render("● FAILED")
	case f.done:
		status = statusDoneStyle.Render("● DONE")
	case f.paused:
		status = statusPausedStyle.Render("● PAUSED")
	default:
		status = statusRunningStyle.Render("● RUNNING")
	}

	hints := []string{
		footerKeyStyle.Render("q") + footerDescStyle.Render(" quit"),
		footerKeyStyle.Render("p") + footerDescStyle.Render(" pause"),
		footerKeyStyle.Render("r") + footerDescStyle.Render(" restart"),
		footerKeyStyle.Render("↑/↓") + footerDescStyle.Render(" select"),
		footerKeyStyle.Render("?") + footerDescStyle.Render(" help"),
	}
	right := strings.Join(hints, "  ")

	return headerStyle.Width(f.width).Render(justify(status, right, f.width-2))
}
