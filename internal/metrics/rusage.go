package metrics

import "time"

// ResourceUsage holds process-wide CPU time and peak memory as reported
// by the operating system. For a parallelism benchmark the interesting
// figure is CPU time versus wall time: it shows how many cores were
// actually kept busy.
type ResourceUsage struct {
	// UserTime is CPU time spent in user mode across all threads.
	UserTime time.Duration
	// SystemTime is CPU time spent in kernel mode across all threads.
	SystemTime time.Duration
	// MaxRSSBytes is the peak resident set size of the process.
	MaxRSSBytes uint64
}

// Sub returns the CPU-time delta against an earlier reading. MaxRSSBytes
// is a high-water mark, not a counter, so the later value is kept.
func (r ResourceUsage) Sub(prev ResourceUsage) ResourceUsage {
	return ResourceUsage{
		UserTime:    r.UserTime - prev.UserTime,
		SystemTime:  r.SystemTime - prev.SystemTime,
		MaxRSSBytes: r.MaxRSSBytes,
	}
}

// CPUUtilization returns total CPU seconds consumed per wall-clock
// second over the given window, i.e. the effective number of busy
// cores. Returns 0 for a degenerate window.
func (r ResourceUsage) CPUUtilization(wall time.Duration) float64 {
	if wall <= 0 {
		return 0
	}
	return (r.UserTime.Seconds() + r.SystemTime.Seconds()) / wall.Seconds()
}
