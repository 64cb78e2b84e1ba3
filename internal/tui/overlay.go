package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelpOverlay renders the help overlay centered over the dashboard.
func (m Model) renderHelpOverlay() string {
	overlayWidth := m.width - 4
	if overlayWidth > 64 {
		overlayWidth = 64
	}

	overlay := overlayStyle.Width(overlayWidth).Render(buildHelpContent())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
}

// buildHelpContent builds the help overlay text.
func buildHelpContent() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("SHARED-VARIABLE SUM BENCHMARK - HELP"))
	b.WriteString("\n\n")

	b.WriteString(tableHeaderStyle.Render("Run control"))
	b.WriteString("\n")
	b.WriteString(formatHelpLine("r", "Restart the benchmark from scratch"))
	b.WriteString(formatHelpLine("p", "Pause/resume the live display"))
	b.WriteString(formatHelpLine("q / Ctrl+C / Esc", "Quit"))
	b.WriteString("\n")

	b.WriteString(tableHeaderStyle.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(formatHelpLine("Up/Down / k/j", "Move between policy rows"))
	b.WriteString(formatHelpLine("PgUp / PgDn", "Jump to first / last policy"))
	b.WriteString(formatHelpLine("? / F1", "Toggle this help"))
	b.WriteString("\n")

	b.WriteString(mutedStyle.Render(strings.Repeat("-", 50)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Five summation policies race over the same range; the"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("unsynchronized one is expected to lose updates."))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press ? or Esc to close this help"))

	return b.String()
}

// formatHelpLine formats a help line with key and description.
func formatHelpLine(key, desc string) string {
	return fmt.Sprintf("  %s  %s\n",
		footerKeyStyle.Width(17).Render(key),
		footerDescStyle.Render(desc),
	)
}
