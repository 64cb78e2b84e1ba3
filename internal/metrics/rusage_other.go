//go:build !linux && !darwin

package metrics

// ReadResourceUsage reports no reading on platforms without rusage
// support; callers fall back to wall-clock figures only.
func ReadResourceUsage() (ResourceUsage, bool) {
	return ResourceUsage{}, false
}
