package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/format"
)

// sparklineWidth is the horizontal space reserved around a sparkline:
// borders, padding, the metric label and the trailing percentage.
const sparklineWidth = 17

// ChartModel displays aggregated run progress plus CPU and memory
// history for the host.
type ChartModel struct {
	averageProgress float64
	eta             time.Duration
	progressHistory *RingBuffer
	cpuHistory      *RingBuffer
	memHistory      *RingBuffer
	done            bool
	totalDuration   time.Duration
	width           int
	height          int
}

// NewChartModel creates a new chart panel.
func NewChartModel() ChartModel {
	return ChartModel{
		progressHistory: NewRingBuffer(120),
		cpuHistory:      NewRingBuffer(60),
		memHistory:      NewRingBuffer(60),
	}
}

// SetSize updates dimensions and resizes the history buffers so the
// sparklines always fill the available width.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h

	sparkCap := w - sparklineWidth
	if sparkCap < 1 {
		sparkCap = 1
	}
	c.cpuHistory.Resize(sparkCap)
	c.memHistory.Resize(sparkCap)

	// Braille cells hold two samples per character column.
	chartCap := (w - 4) * 2
	if chartCap < 1 {
		chartCap = 1
	}
	c.progressHistory.Resize(chartCap)
}

// RecordPoint records one progress update. The raw per-run value feeds
// the history curve; the aggregate average drives the bar and ETA.
func (c *ChartModel) RecordPoint(value, averageProgress float64, eta time.Duration) {
	c.averageProgress = averageProgress
	c.eta = eta
	c.progressHistory.Push(value * 100)
}

// UpdateSysStats records one host CPU/memory sample.
func (c *ChartModel) UpdateSysStats(cpuPercent, memPercent float64) {
	c.cpuHistory.Push(cpuPercent)
	c.memHistory.Push(memPercent)
}

// SetDone freezes the chart and replaces the ETA with the total runtime.
func (c *ChartModel) SetDone(total time.Duration) {
	c.done = true
	c.totalDuration = total
}

// Reset clears all recorded history.
func (c *ChartModel) Reset() {
	c.averageProgress = 0
	c.eta = 0
	c.done = false
	c.totalDuration = 0
	c.progressHistory.Reset()
	c.cpuHistory.Reset()
	c.memHistory.Reset()
}

// renderProgressBar renders the aggregate progress bar with percentage,
// or an empty string when the panel is too narrow for a useful bar.
func (c ChartModel) renderProgressBar() string {
	innerWidth := c.width - 4
	barWidth := innerWidth - 7
	if barWidth < 8 {
		return ""
	}

	filled := int(c.averageProgress * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	bar := progressFilledStyle.Render(strings.Repeat("█", filled)) +
		progressEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
	pct := metricValueStyle.Render(fmt.Sprintf(" %5.1f%%", c.averageProgress*100))

	return bar + pct
}

// View renders the chart panel.
func (c ChartModel) View() string {
	var rows []string

	rows = append(rows, titleStyle.Render(" Progress Chart"))

	if bar := c.renderProgressBar(); bar != "" {
		rows = append(rows, " "+bar)
	}

	if c.done {
		rows = append(rows, fmt.Sprintf(" %s %s",
			metricLabelStyle.Render("Total:"),
			metricValueStyle.Render(format.FormatExecutionDuration(c.totalDuration))))
	} else {
		rows = append(rows, fmt.Sprintf(" %s %s",
			metricLabelStyle.Render("ETA:"),
			metricValueStyle.Render(format.FormatETA(c.eta))))
	}

	showSparklines := c.height >= 10

	// Remaining rows hold the braille progress curve.
	chartRows := c.height - 2 - len(rows)
	if showSparklines {
		chartRows -= 2
	}
	if chartRows >= 2 {
		innerWidth := c.width - 4
		if innerWidth > 0 {
			for _, line := range RenderBrailleChart(c.progressHistory.Slice(), innerWidth, chartRows) {
				rows = append(rows, " "+progressFilledStyle.Render(line))
			}
		}
	}

	if showSparklines {
		rows = append(rows, fmt.Sprintf(" %s %s%s",
			metricLabelStyle.Render("CPU"),
			cpuSparklineStyle.Render(RenderSparkline(c.cpuHistory.Slice())),
			metricValueStyle.Render(fmt.Sprintf(" %5.1f%%", c.cpuHistory.Last()))))
		rows = append(rows, fmt.Sprintf(" %s %s%s",
			metricLabelStyle.Render("MEM"),
			memSparklineStyle.Render(RenderSparkline(c.memHistory.Slice())),
			metricValueStyle.Render(fmt.Sprintf(" %5.1f%%", c.memHistory.Last()))))
	}

	return panelStyle.
		Width(c.width - 2).
		Height(c.height - 2).
		Render(strings.Join(rows, "\n"))
}
