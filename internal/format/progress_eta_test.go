package format

import (
	"testing"
	"time"
)

func TestNewProgressWithETA(t *testing.T) {
	t.Parallel()

	p := NewProgressWithETA(3)
	if p.ProgressState == nil {
		t.Fatal("embedded ProgressState is nil")
	}
	if p.numRuns != 3 {
		t.Errorf("numRuns = %d, want 3", p.numRuns)
	}
	if p.progressRate != 0 {
		t.Errorf("fresh progressRate = %v, want 0", p.progressRate)
	}
	if p.startTime.IsZero() {
		t.Error("startTime should be anchored at construction")
	}
}

func TestProgressWithETA_UpdateWithETA(t *testing.T) {
	t.Parallel()

	t.Run("averages across all slots", func(t *testing.T) {
		p := NewProgressWithETA(4)

		avg, _ := p.UpdateWithETA(1, 0.5)
		if avg != 0.125 {
			t.Errorf("average = %v, want 0.125", avg)
		}
		avg, _ = p.UpdateWithETA(3, 0.25)
		if avg != 0.1875 {
			t.Errorf("average = %v, want 0.1875", avg)
		}
	})

	t.Run("establishes a rate from elapsed time", func(t *testing.T) {
		p := NewProgressWithETA(1)
		p.startTime = time.Now().Add(-4 * time.Second)

		// Half done after four seconds projects four more.
		_, eta := p.UpdateWithETA(0, 0.5)
		if eta < 4*time.Second || eta > 6*time.Second {
			t.Errorf("eta = %v, want about 4s", eta)
		}
	})

	t.Run("stray index leaves the estimate alone", func(t *testing.T) {
		p := NewProgressWithETA(2)

		avg, eta := p.UpdateWithETA(9, 0.7)
		if avg != 0 {
			t.Errorf("average = %v, want 0", avg)
		}
		if eta != 0 {
			t.Errorf("eta = %v, want 0", eta)
		}
	})
}

func TestProgressWithETA_GetETA(t *testing.T) {
	t.Parallel()

	t.Run("zero until a rate exists", func(t *testing.T) {
		p := NewProgressWithETA(1)
		if got := p.GetETA(); got != 0 {
			t.Errorf("GetETA() = %v, want 0", got)
		}
	})

	t.Run("zero once complete", func(t *testing.T) {
		p := NewProgressWithETA(1)
		p.Update(0, 1)
		p.progressRate = 0.5
		if got := p.GetETA(); got != 0 {
			t.Errorf("GetETA() = %v, want 0", got)
		}
	})

	t.Run("remaining over rate", func(t *testing.T) {
		p := NewProgressWithETA(1)
		p.Update(0, 0.5)
		p.progressRate = 0.25

		if got := p.GetETA(); got != 2*time.Second {
			t.Errorf("GetETA() = %v, want 2s", got)
		}
	})

	t.Run("capped for stalled runs", func(t *testing.T) {
		p := NewProgressWithETA(1)
		p.Update(0, 0.5)
		p.progressRate = 1e-9

		if got := p.GetETA(); got != maxETA {
			t.Errorf("GetETA() = %v, want the %v cap", got, maxETA)
		}
	})
}

func TestFormatETA(t *testing.T) {
	t.Parallel()

	tests := []struct {
		eta  time.Duration
		want string
	}{
		{0, "calculating..."},
		{-5 * time.Second, "calculating..."},
		{250 * time.Millisecond, "< 1s"},
		{time.Second, "1s"},
		{59 * time.Second, "59s"},
		{time.Minute, "1m"},
		{90 * time.Second, "1m30s"},
		{time.Hour, "1h"},
		{61 * time.Minute, "1h1m"},
		{2*time.Hour + 5*time.Minute, "2h5m"},
		{24 * time.Hour, "24h"},
	}

	for _, tt := range tests {
		if got := FormatETA(tt.eta); got != tt.want {
			t.Errorf("FormatETA(%v) = %q, want %q", tt.eta, got, tt.want)
		}
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		progress float64
		eta      time.Duration
		width    int
		want     string
	}{
		{"no progress yet", 0, 0, 4, "[░░░░]   0.0% ETA: calculating..."},
		{"halfway", 0.5, 90 * time.Second, 8, "[████░░░░]  50.0% ETA: 1m30s"},
		{"overshoot clamps to full", 1.2, 45 * time.Second, 4, "[████] 100.0% ETA: 45s"},
		{"negative clamps to empty", -0.5, time.Minute, 4, "[░░░░]   0.0% ETA: 1m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatProgressBarWithETA(tt.progress, tt.eta, tt.width); got != tt.want {
				t.Errorf("FormatProgressBarWithETA(%v, %v, %d) = %q, want %q",
					tt.progress, tt.eta, tt.width, got, tt.want)
			}
		})
	}
}
