package tui

import (
	"time"

	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/bench"
)

// ProgressMsg carries one aggregated progress update from the runner.
type ProgressMsg struct {
	RunIndex        int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg signals that the progress channel has been drained.
type ProgressDoneMsg struct{}

// ResultLineMsg carries one policy's result as it is presented.
type ResultLineMsg struct {
	Result   bench.PolicyResult
	Baseline time.Duration
}

// RankingMsg carries the ranked comparison results.
type RankingMsg struct {
	Results []bench.PolicyResult
}

// VerificationMsg carries the per-policy sum verification outcome.
type VerificationMsg struct {
	Checks []bench.Verification
	Strict bool
}

// ErrorMsg reports a run-level failure.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// TickMsg drives the periodic refresh of runtime panels.
type TickMsg time.Time

// MemStatsMsg carries a sample of the Go runtime's memory statistics.
type MemStatsMsg struct {
	Alloc        uint64
	HeapInuse    uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg carries a host-level resource sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
	Load1      float64
}

// BenchCompleteMsg signals that the whole benchmark finished, carrying
// the exit code the process should return. Generation guards against
// messages from a run that was restarted while in flight.
type BenchCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// CancelledMsg signals that the run context was cancelled.
type CancelledMsg struct {
	Err        error
	Generation uint64
}
