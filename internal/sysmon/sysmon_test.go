package sysmon

import "testing"

// Sampling twice matters: interval=0 CPU readings are deltas since the
// previous call, so the second snapshot exercises the real path.
func TestSample(t *testing.T) {
	first := Sample()
	second := Sample()

	for name, s := range map[string]Stats{"first": first, "second": second} {
		if s.CPUPercent < 0 || s.CPUPercent > 100 {
			t.Errorf("%s CPUPercent = %v, want within [0, 100]", name, s.CPUPercent)
		}
		if s.MemPercent < 0 || s.MemPercent > 100 {
			t.Errorf("%s MemPercent = %v, want within [0, 100]", name, s.MemPercent)
		}
		if s.Load1 < 0 {
			t.Errorf("%s Load1 = %v, want non-negative", name, s.Load1)
		}
	}

	if second.MemPercent == 0 {
		t.Error("MemPercent = 0, want a positive reading on a live system")
	}
}
