// Package parallel provides small synchronization helpers shared by the
// benchmark's concurrent components.
package parallel

import "sync"

// ErrorCollector records the first error reported by a group of goroutines.
// The zero value is ready to use. Later errors and nil values are discarded,
// so workers can report unconditionally without ordering concerns.
type ErrorCollector struct {
	mu  sync.Mutex
	err error
}

// SetError records err if it is the first non-nil error seen.
//
// Parameters:
//   - err: The error to record; nil is ignored.
func (ec *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	ec.mu.Lock()
	if ec.err == nil {
		ec.err = err
	}
	ec.mu.Unlock()
}

// Err returns the first recorded error, or nil if none was recorded.
//
// Returns:
//   - error: The first error passed to SetError.
func (ec *ErrorCollector) Err() error {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	return ec.err
}
