package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Process exit codes reported to the operating system. The values are
// part of the CLI contract: wrapper scripts dispatch on them.
const (
	ExitSuccess       = 0   // Run completed and every enforced check passed.
	ExitErrorGeneric  = 1   // Failure with no more specific class below.
	ExitErrorTimeout  = 2   // A deadline elapsed before the run finished.
	ExitErrorMismatch = 3   // Strict mode found a sum that missed its target.
	ExitErrorConfig   = 4   // Flags, environment, or profile were invalid.
	ExitErrorCanceled = 130 // Interrupted, conventionally 128+SIGINT.
)

// ConfigError reports user configuration the program cannot proceed
// with, such as a malformed flag or environment value.
type ConfigError struct {
	// Message explains what was wrong with the configuration.
	Message string
}

// Error returns the configuration message verbatim.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError builds a ConfigError from a format string.
//
// Parameters:
//   - format: Sprintf-style format for the message.
//   - a: Values interpolated into the format.
//
// Returns:
//   - error: A ConfigError carrying the rendered message.
func NewConfigError(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	return ConfigError{Message: msg}
}

// BenchmarkError marks a failure inside one policy's timed run and
// remembers which policy it was.
type BenchmarkError struct {
	// Policy is the display label of the policy whose run failed.
	Policy string
	// Cause is the error that interrupted the run.
	Cause error
}

// Error names the failed policy and its cause.
func (e BenchmarkError) Error() string {
	return fmt.Sprintf("benchmark %q: %v", e.Policy, e.Cause)
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e BenchmarkError) Unwrap() error { return e.Cause }

// TimeoutError reports an operation that exceeded its duration budget.
type TimeoutError struct {
	// Operation names what was being waited on.
	Operation string
	// Limit is the budget that ran out.
	Limit time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError reports a single input field whose value was
// rejected.
type ValidationError struct {
	// Field names the offending field.
	Field string
	// Message explains why the value was rejected.
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError adds printf-style context while keeping the original error
// reachable through errors.Unwrap.
//
// Parameters:
//   - err: The error to annotate. nil passes through unchanged.
//   - format: Sprintf-style context prefix.
//   - args: Values interpolated into the prefix.
//
// Returns:
//   - error: err wrapped as "context: err", or nil when err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether a cancellation or deadline expiry
// sentinel appears anywhere in err's chain.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeForError maps an error chain to the exit code the process
// should report. The context sentinels take precedence over the typed
// classes, so a deadline expiry wrapped in a BenchmarkError still
// exits as a timeout.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	}

	var timeoutErr TimeoutError
	if errors.As(err, &timeoutErr) {
		return ExitErrorTimeout
	}
	var configErr ConfigError
	if errors.As(err, &configErr) {
		return ExitErrorConfig
	}
	var validationErr ValidationError
	if errors.As(err, &validationErr) {
		return ExitErrorConfig
	}
	return ExitErrorGeneric
}
