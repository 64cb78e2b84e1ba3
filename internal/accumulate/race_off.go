//go:build !race

package accumulate

const raceEnabled = false
