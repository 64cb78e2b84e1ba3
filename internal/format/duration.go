package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration renders d at a precision suited to benchmark
// timings: whole microseconds below 1ms, whole milliseconds below 1s,
// and time.Duration's own notation beyond that.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.String()
	}
}
