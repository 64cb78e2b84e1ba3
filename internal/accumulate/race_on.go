//go:build race

package accumulate

// raceEnabled reports whether the binary was built with the race
// detector. Tests consult it to skip exercising the deliberately racy
// policy on multi-element ranges, where the detector would (correctly)
// abort the run.
const raceEnabled = true
