package tui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/format"
)

// HeaderModel renders the top bar: title, version, elapsed time and the
// configured workload range.
type HeaderModel struct {
	startTime  time.Time
	endTime    time.Time
	version    string
	rangeLabel string
	width      int
}

// NewHeaderModel creates a new header for the given workload bounds.
func NewHeaderModel(version string, start, end int64) HeaderModel {
	lo := format.FormatNumberString(strconv.FormatInt(start, 10))
	hi := format.FormatNumberString(strconv.FormatInt(end, 10))
	return HeaderModel{
		startTime:  time.Now(),
		version:    version,
		rangeLabel: "range [" + lo + ", " + hi + ")",
	}
}

// SetDone stops the elapsed clock, so a finished run shows its final
// duration instead of wall time still ticking.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// Reset rewinds the elapsed clock to zero for a restarted run.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetWidth records the columns the layout granted the bar.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the bar with the title flushed left and the workload
// range flushed right.
func (h HeaderModel) View() string {
	title := "Sharedvars Monitor"
	if h.version != "" && h.version != "dev" {
		title += " " + h.version
	}

	elapsed := time.Since(h.startTime)
	if !h.endTime.IsZero() {
		elapsed = h.endTime.Sub(h.startTime)
	}

	left := titleStyle.Render(title) +
		versionStyle.Render(" | ") +
		elapsedStyle.Render("Elapsed: "+format.FormatExecutionDuration(elapsed))
	right := versionStyle.Render(h.rangeLabel)

	return headerStyle.Width(h.width).Render(justify(left, right, h.width-2))
}

// justify lays left and right on one row of innerWidth cells, dropping
// the right part entirely when the two no longer fit side by side.
func justify(left, right string, innerWidth int) string {
	if innerWidth < 0 {
		innerWidth = 0
	}
	gap := innerWidth - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		right = ""
		gap = innerWidth - lipgloss.Width(left)
	}
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + right
}
