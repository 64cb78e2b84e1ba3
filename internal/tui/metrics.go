package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// MetricsModel is the dashboard panel showing Go runtime statistics,
// host load and the smoothed progress rate of the active run.
type MetricsModel struct {
	alloc        uint64
	heapInuse    uint64
	numGC        uint32
	gcPauseNs    uint64
	goroutines   int
	load1        float64
	speed        float64 // aggregate progress per second
	lastProgress float64
	lastUpdate   time.Time
	width        int
	height       int
}

// NewMetricsModel returns an empty panel with the rate clock primed.
func NewMetricsModel() MetricsModel {
	return MetricsModel{
		lastUpdate: time.Now(),
	}
}

// SetSize records the space the layout granted the panel.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats takes over the latest runtime sample.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.heapInuse = msg.HeapInuse
	m.numGC = msg.NumGC
	m.gcPauseNs = msg.PauseTotalNs
	m.goroutines = msg.NumGoroutine
}

// UpdateLoad records the host 1-minute load average.
func (m *MetricsModel) UpdateLoad(load1 float64) {
	m.load1 = load1
}

// UpdateProgress folds a progress reading into the smoothed rate.
// Readings under 50ms apart are dropped entirely, a message burst must
// not produce a wild instantaneous rate. Non-increasing progress (a
// restarted run) rebases the baseline without touching the rate.
func (m *MetricsModel) UpdateProgress(progress float64) {
	now := time.Now()
	dt := now.Sub(m.lastUpdate).Seconds()
	if dt <= 0.05 {
		return
	}
	if dp := progress - m.lastProgress; dp > 0 {
		instant := dp / dt
		if m.speed > 0 {
			m.speed = 0.7*m.speed + 0.3*instant
		} else {
			m.speed = instant
		}
	}
	m.lastProgress = progress
	m.lastUpdate = now
}

// View renders the metrics panel as a two-column grid.
func (m MetricsModel) View() string {
	half := (m.width - 6) / 2

	pairs := [3][2]string{
		{metricCell("Memory:", formatBytes(m.alloc), half),
			metricCell("Goroutines:", fmt.Sprintf("%d", m.goroutines), half)},
		{metricCell("Heap:", formatBytes(m.heapInuse), half),
			metricCell("GC Runs:", fmt.Sprintf("%d (%.1fms)", m.numGC, float64(m.gcPauseNs)/1e6), half)},
		{metricCell("Speed:", fmt.Sprintf("%.1f%%/s", m.speed*100), half),
			metricCell("Load:", fmt.Sprintf("%.2f", m.load1), half)},
	}

	var rows strings.Builder
	rows.WriteString(" " + titleStyle.Render("Metrics"))
	for _, p := range pairs {
		rows.WriteString("\n")
		rows.WriteString(p[0])
		rows.WriteString(p[1])
	}

	return panelStyle.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(rows.String())
}

// metricCell lays out one label/value pair padded to width. Width is
// measured with lipgloss so ANSI codes do not count; cells wider than
// the column are left intact.
func metricCell(label, value string, width int) string {
	cell := " " + metricLabelStyle.Render(fmt.Sprintf("%-12s", label)) + " " + metricValueStyle.Render(value)
	if pad := width - lipgloss.Width(cell); pad > 0 {
		cell += strings.Repeat(" ", pad)
	}
	return cell
}

func formatBytes(b uint64) string {
	units := []struct {
		limit uint64
		name  string
	}{{1 << 30, "GB"}, {1 << 20, "MB"}, {1 << 10, "KB"}}

	for _, u := range units {
		if b >= u.limit {
			return fmt.Sprintf("%.1f %s", float64(b)/float64(u.limit), u.name)
		}
	}
	return fmt.Sprintf("%d B", b)
}
