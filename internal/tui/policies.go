package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/accumulate"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/bench"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/format"
)

// policyStatus tracks the lifecycle of one policy row.
type policyStatus int

const (
	statusIdle policyStatus = iota
	statusRunning
	statusDone
	statusFailed
)

// Column widths for the policy table (shared between header and rows).
const (
	colWidthRank     = 3
	colWidthName     = 18
	colWidthProgress = 20
	colWidthPct      = 7
	colWidthDur      = 10
	colWidthSum      = 18
	colWidthStatus   = 6
)

// PoliciesModel renders the left panel: the live policy table plus the
// run summary and sum verification once results arrive.
type PoliciesModel struct {
	policies   []accumulate.Policy
	progresses []float64
	durations  []time.Duration
	sums       []int64
	statuses   []policyStatus

	baseline time.Duration
	ranking  []bench.PolicyResult
	checks   []bench.Verification
	strict   bool
	runErr   error

	cursor int
	width  int
	height int
}

// NewPoliciesModel creates the panel for the given policy run order.
func NewPoliciesModel(policies []accumulate.Policy) PoliciesModel {
	return PoliciesModel{
		policies:   policies,
		progresses: make([]float64, len(policies)),
		durations:  make([]time.Duration, len(policies)),
		sums:       make([]int64, len(policies)),
		statuses:   make([]policyStatus, len(policies)),
	}
}

// SetSize updates dimensions.
func (p *PoliciesModel) SetSize(w, h int) {
	p.width = w
	p.height = h
}

// SetProgress records a progress update for the given run index.
func (p *PoliciesModel) SetProgress(runIndex int, value float64) {
	if runIndex < 0 || runIndex >= len(p.policies) {
		return
	}
	p.progresses[runIndex] = value
	if p.statuses[runIndex] == statusIdle {
		p.statuses[runIndex] = statusRunning
	}
}

// SetResult records one policy's final result.
func (p *PoliciesModel) SetResult(res bench.PolicyResult, baseline time.Duration) {
	p.baseline = baseline
	for i, pol := range p.policies {
		if pol != res.Policy {
			continue
		}
		if res.Err != nil {
			p.statuses[i] = statusFailed
			return
		}
		p.statuses[i] = statusDone
		p.progresses[i] = 1.0
		p.durations[i] = res.Duration
		p.sums[i] = res.Sum
		return
	}
}

// SetRanking records the ranked comparison results.
func (p *PoliciesModel) SetRanking(results []bench.PolicyResult) {
	p.ranking = results
}

// SetVerification records the sum verification outcome.
func (p *PoliciesModel) SetVerification(checks []bench.Verification, strict bool) {
	p.checks = checks
	p.strict = strict
}

// SetRunError records a run-level failure shown above the table.
func (p *PoliciesModel) SetRunError(err error) {
	p.runErr = err
}

// MoveCursor moves the row cursor by delta, clamped to the table.
func (p *PoliciesModel) MoveCursor(delta int) {
	p.cursor += delta
	if p.cursor < 0 {
		p.cursor = 0
	}
	if p.cursor >= len(p.policies) {
		p.cursor = len(p.policies) - 1
	}
}

// CursorToStart moves the cursor to the first policy.
func (p *PoliciesModel) CursorToStart() { p.cursor = 0 }

// CursorToEnd moves the cursor to the last policy.
func (p *PoliciesModel) CursorToEnd() { p.cursor = len(p.policies) - 1 }

// Reset clears all run state, keeping the policy list and layout.
func (p *PoliciesModel) Reset() {
	for i := range p.policies {
		p.progresses[i] = 0
		p.durations[i] = 0
		p.sums[i] = 0
		p.statuses[i] = statusIdle
	}
	p.baseline = 0
	p.ranking = nil
	p.checks = nil
	p.runErr = nil
}

// tableWidth returns the total rendered width of one table row.
func tableWidth() int {
	return 2 + colWidthRank + 1 + colWidthName + 1 + colWidthProgress + 1 +
		colWidthPct + 1 + colWidthDur + 1 + colWidthSum + 1 + colWidthStatus
}

// renderToHeight renders the panel at exactly the given outer height so
// the left column lines up with the right column.
func (p PoliciesModel) renderToHeight(outerHeight int) string {
	var b strings.Builder

	b.WriteString(" " + titleStyle.Render("Policies"))
	b.WriteString("\n\n")

	if p.runErr != nil {
		b.WriteString(" " + errorStyle.Render(fmt.Sprintf("Error: %v", p.runErr)))
		b.WriteString("\n\n")
	}

	b.WriteString(p.renderTableHeader())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("━", tableWidth())))
	b.WriteString("\n")

	for i := range p.policies {
		b.WriteString(p.renderPolicyRow(i))
		b.WriteString("\n")
	}

	if summary := p.renderSummary(); summary != "" {
		b.WriteString("\n")
		b.WriteString(summary)
	}

	return panelStyle.
		Width(p.width - 2).
		Height(outerHeight - 2).
		Render(b.String())
}

func (p PoliciesModel) renderTableHeader() string {
	colRank := lipgloss.NewStyle().Width(colWidthRank)
	colName := lipgloss.NewStyle().Width(colWidthName)
	colProgress := lipgloss.NewStyle().Width(colWidthProgress)
	colPct := lipgloss.NewStyle().Width(colWidthPct).Align(lipgloss.Right)
	colDur := lipgloss.NewStyle().Width(colWidthDur).Align(lipgloss.Right)
	colSum := lipgloss.NewStyle().Width(colWidthSum).Align(lipgloss.Right)
	colStatus := lipgloss.NewStyle().Width(colWidthStatus).Align(lipgloss.Center)

	header := lipgloss.JoinHorizontal(lipgloss.Center,
		"  ",
		colRank.Render("#"),
		" ",
		colName.Render("Policy"),
		" ",
		colProgress.Render("Progress"),
		" ",
		colPct.Render("%"),
		" ",
		colDur.Render("Duration"),
		" ",
		colSum.Render("Sum"),
		" ",
		colStatus.Render("Status"),
	)
	return tableHeaderStyle.Render(header)
}

// renderPolicyRow renders a single policy row.
func (p PoliciesModel) renderPolicyRow(idx int) string {
	name := p.policies[idx].String()
	progress := p.progresses[idx]
	status := p.statuses[idx]

	colRank := lipgloss.NewStyle().Width(colWidthRank)
	colName := lipgloss.NewStyle().Width(colWidthName)
	colPct := lipgloss.NewStyle().Width(colWidthPct).Align(lipgloss.Right)
	colDur := lipgloss.NewStyle().Width(colWidthDur).Align(lipgloss.Right)
	colSum := lipgloss.NewStyle().Width(colWidthSum).Align(lipgloss.Right)
	colStatus := lipgloss.NewStyle().Width(colWidthStatus).Align(lipgloss.Center)

	// Rank follows the ranking table once results arrive; until then it
	// is the run order.
	rank := strconv.Itoa(idx + 1)
	isWinner := false
	if status == statusDone && len(p.ranking) > 0 {
		for pos, r := range p.ranking {
			if r.Policy == p.policies[idx] {
				rank = strconv.Itoa(pos + 1)
				isWinner = pos == 0 && r.Err == nil
				break
			}
		}
	}

	bar := renderPolicyBar(progress, colWidthProgress)
	pct := fmt.Sprintf("%.1f%%", progress*100)

	durStr := "-"
	if status == statusDone {
		durStr = format.FormatExecutionDuration(p.durations[idx])
	} else if status == statusRunning {
		durStr = "..."
	}

	sumStr := "-"
	if status == statusDone {
		sumStr = strconv.FormatInt(p.sums[idx], 10)
	}

	var statusText string
	var statusStyle lipgloss.Style
	switch status {
	case statusIdle:
		statusText = "IDLE"
		statusStyle = colStatus.Foreground(mutedStyle.GetForeground())
	case statusRunning:
		statusText = "RUN"
		statusStyle = colStatus.Foreground(policyNameStyle.GetForeground())
	case statusDone:
		statusText = "OK"
		statusStyle = colStatus.Foreground(successStyle.GetForeground())
	case statusFailed:
		statusText = "ERR"
		statusStyle = colStatus.Foreground(errorStyle.GetForeground())
	}

	rankStyle := colRank
	if isWinner {
		rankStyle = colRank.Foreground(successStyle.GetForeground())
	}

	nameStyle := colName
	if idx == p.cursor {
		nameStyle = colName.Inherit(rowActiveStyle)
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		"  ",
		rankStyle.Render(rank),
		" ",
		nameStyle.Render(truncateString(name, colWidthName)),
		" ",
		bar,
		" ",
		colPct.Render(pct),
		" ",
		colDur.Render(durStr),
		" ",
		colSum.Render(sumStr),
		" ",
		statusStyle.Render(statusText),
	)
}

// renderSummary renders the post-run section: global status, fastest
// policy and the per-policy verification marks.
func (p PoliciesModel) renderSummary() string {
	if len(p.ranking) == 0 {
		return ""
	}

	var b strings.Builder

	enforcedMismatch := false
	racyMismatch := false
	for _, c := range p.checks {
		if !c.Match {
			if c.Enforced {
				enforcedMismatch = true
			} else {
				racyMismatch = true
			}
		}
	}

	switch {
	case enforcedMismatch && p.strict:
		b.WriteString(" " + errorStyle.Bold(true).Render("Global Status: CRITICAL ERROR!"))
	case enforcedMismatch:
		b.WriteString(" " + warningStyle.Bold(true).Render("Global Status: WARNING."))
	default:
		b.WriteString(" " + successStyle.Bold(true).Render("Global Status: Success."))
	}
	b.WriteString("\n")

	for _, r := range p.ranking {
		if r.Err != nil {
			continue
		}
		fastest := fmt.Sprintf(" Fastest: %s (%s)",
			successStyle.Render(r.Policy.String()),
			mutedStyle.Render(format.FormatExecutionDuration(r.Duration)))
		if speedup := bench.Speedup(p.baseline, r.Duration); speedup > 0 {
			fastest += mutedStyle.Render(fmt.Sprintf("  %.2fx vs serial", speedup))
		}
		b.WriteString(fastest)
		b.WriteString("\n")
		break
	}

	if len(p.checks) > 0 {
		b.WriteString("\n " + tableHeaderStyle.Render("Sum Verification"))
		b.WriteString("\n")
		for _, c := range p.checks {
			b.WriteString(" " + p.renderCheck(c))
			b.WriteString("\n")
		}
	}

	if racyMismatch {
		b.WriteString(" " + mutedStyle.Render("The unsynchronized policy losing updates is the demonstration."))
	}

	return b.String()
}

func (p PoliciesModel) renderCheck(c bench.Verification) string {
	name := fmt.Sprintf("%-18s", c.Policy.String())
	if c.Match {
		return successStyle.Render("✓ " + name)
	}
	detail := fmt.Sprintf("✗ %s got %d, want %d", name, c.Sum, c.Want)
	if !c.Enforced {
		return warningStyle.Render(detail)
	}
	return errorStyle.Render(detail)
}

// truncateString truncates a string to maxLen characters, adding "..."
// if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// renderPolicyBar renders a progress bar with exact width.
func renderPolicyBar(progress float64, width int) string {
	filled := int(progress * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := progressFilledStyle.Render(strings.Repeat("█", filled)) +
		progressEmptyStyle.Render(strings.Repeat("░", width-filled))

	// Wrap in a fixed-width container to preserve alignment.
	return lipgloss.NewStyle().Width(width).Render(bar)
}
