//go:build darwin

package metrics

import (
	"time"

	"golang.org/x/sys/unix"
)

// ReadResourceUsage reads the process's CPU time and peak RSS via
// getrusage(2). The second return value reports whether a reading was
// obtained.
func ReadResourceUsage() (ResourceUsage, bool) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return ResourceUsage{}, false
	}
	return ResourceUsage{
		UserTime:   time.Duration(ru.Utime.Nano()),
		SystemTime: time.Duration(ru.Stime.Nano()),
		// ru_maxrss is in bytes on Darwin, unlike Linux.
		MaxRSSBytes: uint64(ru.Maxrss),
	}, true
}
