// Package apperrors holds the error taxonomy shared by the CLI, the
// benchmark runner, and the TUI, together with the process exit codes
// each class maps to.
//
// Errors are plain structs matched with errors.As. Context sentinels
// (cancellation, deadline expiry) outrank the typed classes when
// choosing an exit code, and BenchmarkError implements Unwrap so a
// wrapped sentinel stays visible to errors.Is.
package apperrors
