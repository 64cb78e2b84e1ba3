// Package bench orchestrates benchmark runs: it executes the summation
// policies in a fixed order over one workload, times each run, verifies
// the sums against the closed form, and reports progress and results
// through interfaces implemented by the CLI and TUI front-ends.
package bench
