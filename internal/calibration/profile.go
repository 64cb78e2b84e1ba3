package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// CurrentProfileVersion identifies the profile schema. Bump it when the
// sweep methodology changes so stale measurements are discarded.
const CurrentProfileVersion = 1

// DefaultProfileFileName is the file name used for the persisted profile.
const DefaultProfileFileName = "calibration.json"

// CalibrationProfile records the outcome of a worker-count sweep along
// with the hardware fingerprint it was measured on. A profile is only
// trusted when the fingerprint still matches the running machine.
type CalibrationProfile struct {
	// ProfileVersion is the schema version this profile was written with.
	ProfileVersion int `json:"profile_version"`
	// NumCPU is the logical CPU count at calibration time.
	NumCPU int `json:"num_cpu"`
	// GOARCH is the architecture the sweep ran on.
	GOARCH string `json:"goarch"`
	// GOOS is the operating system the sweep ran on.
	GOOS string `json:"goos"`
	// GoVersion is the toolchain that built the sweeping binary.
	GoVersion string `json:"go_version"`
	// WordSize is the native word size in bits (32 or 64).
	WordSize int `json:"word_size"`
	// CalibratedAt is when the sweep completed.
	CalibratedAt time.Time `json:"calibrated_at"`

	// OptimalWorkers is the worker count with the lowest measured time.
	OptimalWorkers int `json:"optimal_workers"`
	// SweepElements is the element count the sweep summed per step.
	SweepElements uint64 `json:"sweep_elements"`
	// SweepDuration is the total wall time of the sweep, as a string.
	SweepDuration string `json:"sweep_duration"`
}

// NewProfile creates a profile stamped with the current hardware
// fingerprint and time. The measurement fields start at zero.
func NewProfile() *CalibrationProfile {
	return &CalibrationProfile{
		ProfileVersion: CurrentProfileVersion,
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
		CalibratedAt:   time.Now(),
	}
}

// SaveProfile writes the profile as indented JSON, creating parent
// directories as needed.
//
// Parameters:
//   - path: The destination file path.
//
// Returns:
//   - error: An error if the directory or file cannot be written.
func (p *CalibrationProfile) SaveProfile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating profile directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	return nil
}

// loadProfile reads and decodes a profile file.
func loadProfile(path string) (*CalibrationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	var profile CalibrationProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	return &profile, nil
}

// LoadOrCreateProfile loads the profile at path when one exists and is
// valid for this machine; otherwise it returns a fresh profile. The
// second return value reports whether an existing profile was loaded.
//
// Parameters:
//   - path: The profile file path.
//
// Returns:
//   - *CalibrationProfile: The loaded or newly created profile.
//   - bool: true when an existing valid profile was loaded.
func LoadOrCreateProfile(path string) (*CalibrationProfile, bool) {
	profile, err := loadProfile(path)
	if err != nil || !profile.IsValid() {
		return NewProfile(), false
	}
	return profile, true
}

// IsValid reports whether the profile was measured on hardware matching
// the current machine and with the current schema. A nil profile is
// invalid.
func (p *CalibrationProfile) IsValid() bool {
	if p == nil {
		return false
	}
	return p.ProfileVersion == CurrentProfileVersion &&
		p.NumCPU == runtime.NumCPU() &&
		p.GOARCH == runtime.GOARCH &&
		p.GOOS == runtime.GOOS &&
		p.GoVersion == runtime.Version() &&
		p.WordSize == 32<<(^uint(0)>>63)
}

// IsStale reports whether the profile is older than maxAge. A nil
// profile is stale.
func (p *CalibrationProfile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

// String renders a one-line human-readable summary of the profile.
func (p *CalibrationProfile) String() string {
	return fmt.Sprintf(
		"calibration: %d workers optimal (%s/%s, %d CPUs, %d-bit, %s, measured %s)",
		p.OptimalWorkers, p.GOOS, p.GOARCH, p.NumCPU, p.WordSize,
		p.GoVersion, p.CalibratedAt.Format(time.RFC3339),
	)
}

// GetDefaultProfilePath returns the per-user location for the persisted
// profile, falling back to the working directory when the user config
// directory cannot be determined.
func GetDefaultProfilePath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(configDir, "sharedvars", DefaultProfileFileName)
}
