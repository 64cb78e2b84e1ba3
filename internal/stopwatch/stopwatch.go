//go:generate mockgen -source=stopwatch.go -destination=mocks/mock_stopwatch.go -package=mocks

// Package stopwatch provides a millisecond-resolution wall-clock timer
// built on the runtime's monotonic clock. The benchmark runner wraps
// every policy run in one, and the interface seam lets runner tests
// substitute a scripted clock for the real one.
package stopwatch

import "time"

// Stopwatch abstracts a restartable wall-clock timer. Implementations
// accumulate elapsed time across Start/Stop segments; Reset discards the
// accumulation without changing the running state.
type Stopwatch interface {
	// Reset clears the accumulated time. A running stopwatch keeps
	// running, measuring from the moment of the reset.
	Reset()
	// Start begins a timing segment. Starting a running stopwatch is a
	// no-op.
	Start()
	// Stop ends the current timing segment and folds it into the
	// accumulated total. Stopping a stopped stopwatch is a no-op.
	Stop()
	// Elapsed returns the accumulated time, including the current
	// segment if the stopwatch is running.
	Elapsed() time.Duration
	// ElapsedMilliseconds returns the accumulated time truncated to
	// whole milliseconds, matching the resolution of the result lines.
	ElapsedMilliseconds() int64
}

// MonotonicStopwatch implements Stopwatch on time.Now, whose readings
// carry the monotonic clock and are therefore immune to wall-clock
// steps. The zero value is a stopped stopwatch with no accumulated time.
// Not safe for concurrent use; each benchmark run owns its own.
type MonotonicStopwatch struct {
	accumulated time.Duration
	startedAt   time.Time
	running     bool
}

// New creates a stopped MonotonicStopwatch with no accumulated time.
//
// Returns:
//   - *MonotonicStopwatch: A ready-to-start stopwatch.
func New() *MonotonicStopwatch {
	return &MonotonicStopwatch{}
}

// Reset clears the accumulated time. If the stopwatch is running, the
// current segment restarts from now.
func (s *MonotonicStopwatch) Reset() {
	s.accumulated = 0
	if s.running {
		s.startedAt = time.Now()
	}
}

// Start begins a timing segment if one is not already in flight.
func (s *MonotonicStopwatch) Start() {
	if s.running {
		return
	}
	s.startedAt = time.Now()
	s.running = true
}

// Stop ends the current timing segment, if any, and folds its duration
// into the accumulated total.
func (s *MonotonicStopwatch) Stop() {
	if !s.running {
		return
	}
	s.accumulated += time.Since(s.startedAt)
	s.running = false
}

// Elapsed returns the accumulated time, including the in-flight segment
// when the stopwatch is running.
//
// Returns:
//   - time.Duration: Total measured time.
func (s *MonotonicStopwatch) Elapsed() time.Duration {
	if s.running {
		return s.accumulated + time.Since(s.startedAt)
	}
	return s.accumulated
}

// ElapsedMilliseconds returns Elapsed truncated to whole milliseconds.
//
// Returns:
//   - int64: Total measured time in milliseconds, rounded toward zero.
func (s *MonotonicStopwatch) ElapsedMilliseconds() int64 {
	return s.Elapsed().Milliseconds()
}
