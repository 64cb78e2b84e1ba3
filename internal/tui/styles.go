package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/ui"
)

// Dashboard styles, derived from the active ui theme. Widgets share
// these so the whole screen recolors together.
var (
	panelStyle          lipgloss.Style
	headerStyle         lipgloss.Style
	titleStyle          lipgloss.Style
	versionStyle        lipgloss.Style
	elapsedStyle        lipgloss.Style
	tableHeaderStyle    lipgloss.Style
	rowActiveStyle      lipgloss.Style
	policyNameStyle     lipgloss.Style
	progressFilledStyle lipgloss.Style
	progressEmptyStyle  lipgloss.Style
	successStyle        lipgloss.Style
	warningStyle        lipgloss.Style
	errorStyle          lipgloss.Style
	mutedStyle          lipgloss.Style
	metricLabelStyle    lipgloss.Style
	metricValueStyle    lipgloss.Style
	footerKeyStyle      lipgloss.Style
	footerDescStyle     lipgloss.Style
	statusRunningStyle  lipgloss.Style
	statusPausedStyle   lipgloss.Style
	statusDoneStyle     lipgloss.Style
	statusErrorStyle    lipgloss.Style
	cpuSparklineStyle   lipgloss.Style
	memSparklineStyle   lipgloss.Style
	overlayStyle        lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles derives the style set from ui.GetCurrentTUITheme. Run
// calls it a second time once flags have settled, so a theme override
// or --no-color takes effect before the first frame.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Background(t.Bg).
		Foreground(t.Text)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		Background(t.Bg).
		Padding(0, 1)

	overlayStyle = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Accent).
		Padding(1, 2).
		Align(lipgloss.Left)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	versionStyle = lipgloss.NewStyle().Foreground(t.Dim)
	elapsedStyle = lipgloss.NewStyle().Foreground(t.Accent)
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Text)
	rowActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	policyNameStyle = lipgloss.NewStyle().Foreground(t.Info)
	progressFilledStyle = lipgloss.NewStyle().Foreground(t.Accent)
	progressEmptyStyle = lipgloss.NewStyle().Foreground(t.Dim)
	successStyle = lipgloss.NewStyle().Foreground(t.Success)
	warningStyle = lipgloss.NewStyle().Foreground(t.Warning)
	errorStyle = lipgloss.NewStyle().Foreground(t.Error)
	mutedStyle = lipgloss.NewStyle().Foreground(t.Dim)
	metricLabelStyle = lipgloss.NewStyle().Foreground(t.Dim)
	metricValueStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	footerKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	footerDescStyle = lipgloss.NewStyle().Foreground(t.Dim)
	statusRunningStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Success)
	statusPausedStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Warning)
	statusDoneStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	statusErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Error)
	cpuSparklineStyle = lipgloss.NewStyle().Foreground(t.Accent)
	memSparklineStyle = lipgloss.NewStyle().Foreground(t.Warning)
}
