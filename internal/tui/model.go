// Package tui implements the full-screen dashboard: a live policy table
// with per-run progress, runtime metrics, host sparklines and the final
// ranking and verification, driven by bubbletea messages bridged from
// the benchmark runner.
package tui

import (
	"context"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/accumulate"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/bench"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/config"
	apperrors "github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/errors"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/sysmon"
)

const (
	headerRows  = 1
	footerRows  = 1
	minBodyRows = 4
	policyShare = 60 // percent of the width given to the policy table
	metricsRows = 7  // title + 3 data rows + borders
)

// geometry carves the terminal into the panel rectangles the dashboard
// renders into: policy table on the left, metrics over chart on the
// right.
type geometry struct {
	policiesW, policiesH int
	rightW               int
	metricsH, chartH     int
}

func carve(width, height int) geometry {
	body := height - headerRows - footerRows
	if body < minBodyRows {
		body = minBodyRows
	}
	left := width * policyShare / 100
	metrics := metricsRows
	if metrics > body/2 {
		metrics = body / 2
	}
	return geometry{
		policiesW: left,
		policiesH: body,
		rightW:    width - left,
		metricsH:  metrics,
		chartH:    body - metrics,
	}
}

// Model is the bubbletea root aggregating every dashboard panel plus
// the run state the key handlers act on.
type Model struct {
	header   HeaderModel
	policies PoliciesModel
	metrics  MetricsModel
	chart    ChartModel
	footer   FooterModel

	keymap KeyMap

	width  int
	height int

	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	exitCode   int

	parentCtx context.Context
	config    config.AppConfig
	ref       *programRef
	paused    bool
	showHelp  bool
}

// NewModel assembles the dashboard around a cancelable child of
// parentCtx; restarts re-derive fresh children from the parent.
func NewModel(parentCtx context.Context, cfg config.AppConfig, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)

	return Model{
		header:    NewHeaderModel(version, cfg.Start, cfg.End),
		policies:  NewPoliciesModel(accumulate.Policies()),
		metrics:   NewMetricsModel(),
		chart:     NewChartModel(),
		footer:    NewFooterModel(),
		keymap:    DefaultKeyMap(),
		ctx:       ctx,
		cancel:    cancel,
		exitCode:  apperrors.ExitSuccess,
		parentCtx: parentCtx,
		config:    cfg,
		ref:       &programRef{},
	}
}

// Init starts the clock, the benchmark, and the cancellation watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startBenchmarkCmd(m.ref, m.ctx, m.config, m.generation),
		watchCancelCmd(m.ctx, m.generation),
	)
}

// stale reports whether a message belongs to a run that a restart has
// since superseded.
func (m Model) stale(gen uint64) bool {
	return gen != m.generation
}

// finish freezes the timers and records the run's exit code.
func (m *Model) finish(code int) {
	m.done = true
	m.exitCode = code
	m.header.SetDone()
	m.footer.SetDone(true)
}

// Update is the single message pump; every panel mutation funnels
// through here.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applyLayout()
		return m, nil

	case ProgressMsg:
		if !m.paused {
			m.policies.SetProgress(msg.RunIndex, msg.Value)
			m.chart.RecordPoint(msg.Value, msg.AverageProgress, msg.ETA)
			m.metrics.UpdateProgress(msg.AverageProgress)
		}
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case ResultLineMsg:
		m.policies.SetResult(msg.Result, msg.Baseline)
		return m, nil

	case RankingMsg:
		m.policies.SetRanking(msg.Results)
		return m, nil

	case VerificationMsg:
		m.policies.SetVerification(msg.Checks, msg.Strict)
		return m, nil

	case ErrorMsg:
		m.policies.SetRunError(msg.Err)
		m.footer.SetError(true)
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(memStatsCmd(), sysStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.chart.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		m.metrics.UpdateLoad(msg.Load1)
		return m, nil

	case BenchCompleteMsg:
		if m.stale(msg.Generation) {
			return m, nil
		}
		m.finish(msg.ExitCode)
		m.chart.SetDone(time.Since(m.header.startTime))
		return m, nil

	case CancelledMsg:
		if m.stale(msg.Generation) {
			return m, nil
		}
		// A quit key or a finished run already settled the exit code;
		// only an external cancel (signal, timeout) reaches here live.
		if !m.done {
			m.finish(apperrors.ExitCodeForError(msg.Err))
		}
		return m, tea.Quit
	}

	return m, nil
}

// quit cancels the live run and leaves the program loop.
func (m Model) quit() (Model, tea.Cmd) {
	m.done = true
	if m.cancel != nil {
		m.cancel()
	}
	return m, tea.Quit
}

// restart abandons the current run and starts a fresh one under a new
// generation, resetting every panel.
func (m Model) restart() (Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}
	m.generation++
	m.ctx, m.cancel = context.WithCancel(m.parentCtx)

	g := carve(m.width, m.height)
	m.header.Reset()
	m.policies.Reset()
	m.chart.Reset()
	m.metrics = NewMetricsModel()
	m.metrics.SetSize(g.rightW, g.metricsH)
	m.footer.SetDone(false)
	m.footer.SetError(false)
	m.footer.SetPaused(false)
	m.done = false
	m.paused = false
	m.exitCode = apperrors.ExitSuccess

	return m, tea.Batch(
		tickCmd(),
		startBenchmarkCmd(m.ref, m.ctx, m.config, m.generation),
		watchCancelCmd(m.ctx, m.generation),
	)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Esc closes the overlay rather than quitting, so match it
		// before the quit binding.
		switch {
		case key.Matches(msg, m.keymap.Help), msg.String() == "esc":
			m.showHelp = false
			return m, nil
		case key.Matches(msg, m.keymap.Quit):
			return m.quit()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m.quit()

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)

	case key.Matches(msg, m.keymap.Reset):
		return m.restart()

	case key.Matches(msg, m.keymap.Up):
		m.policies.MoveCursor(-1)

	case key.Matches(msg, m.keymap.Down):
		m.policies.MoveCursor(1)

	case key.Matches(msg, m.keymap.PageUp):
		m.policies.CursorToStart()

	case key.Matches(msg, m.keymap.PageDown):
		m.policies.CursorToEnd()
	}

	return m, nil
}

// View composes the panels into one frame, or the help overlay when
// toggled.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	right := lipgloss.JoinVertical(lipgloss.Left, m.metrics.View(), m.chart.View())

	// The policy panel stretches to the right column's actual height.
	left := m.policies.renderToHeight(lipgloss.Height(right))
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

func (m *Model) applyLayout() {
	g := carve(m.width, m.height)
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.policies.SetSize(g.policiesW, g.policiesH)
	m.metrics.SetSize(g.rightW, g.metricsH)
	m.chart.SetSize(g.rightW, g.chartH)
}

// Run is the public entry point for the TUI mode. It creates the
// bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, cfg config.AppConfig, version string) int {
	// Styles follow whatever theme app.Run selected via InitTheme.
	initTUIStyles()

	// The dashboard is the presentation; a -quiet launch must not strip
	// the ranking and verification messages it feeds on.
	cfg.Quiet = false

	model := NewModel(ctx, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Bridge goroutines need the program reference before the run starts.
	model.ref.SetProgram(p)

	out, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	final, ok := out.(Model)
	if !ok {
		return apperrors.ExitSuccess
	}
	final.cancel()
	return final.exitCode
}

// startBenchmarkCmd returns a tea.Cmd that launches the benchmark run.
func startBenchmarkCmd(ref *programRef, ctx context.Context, cfg config.AppConfig, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref}
		presenter := &TUIResultPresenter{ref: ref}

		results := bench.NewRunner().Execute(ctx, accumulate.Policies(), cfg, reporter, io.Discard)
		exitCode := bench.AnalyzeRun(results, cfg, presenter, presenter, io.Discard)

		return BenchCompleteMsg{ExitCode: exitCode, Generation: gen}
	}
}

// tickInterval paces the dashboard redraw and the metrics sampling.
const tickInterval = 500 * time.Millisecond

// tickCmd schedules the next dashboard tick.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// memStatsCmd snapshots the Go runtime's memory counters.
func memStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var stats runtime.MemStats
		runtime.ReadMemStats(&stats)
		return MemStatsMsg{
			Alloc:        stats.Alloc,
			HeapInuse:    stats.HeapInuse,
			NumGC:        stats.NumGC,
			PauseTotalNs: stats.PauseTotalNs,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

// sysStatsCmd snapshots host-wide CPU, memory and load.
func sysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		host := sysmon.Sample()
		return SysStatsMsg{
			CPUPercent: host.CPUPercent,
			MemPercent: host.MemPercent,
			Load1:      host.Load1,
		}
	}
}

// watchCancelCmd turns the context's cancellation into a message
// stamped with the generation that subscribed to it.
func watchCancelCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return CancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
