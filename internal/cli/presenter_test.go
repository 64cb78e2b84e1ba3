package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/accumulate"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/bench"
	apperrors "github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/errors"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/metrics"
	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/ui"
)

// The result block is parsed by scripts and eyeballed in saved logs, so
// these tests pin its exact bytes rather than fragments.

func TestPresentResultLine_Sequential(t *testing.T) {
	ui.InitTheme(true)
	var buf bytes.Buffer

	CLIResultPresenter{}.PresentResultLine(bench.PolicyResult{
		Policy:   accumulate.Sequential,
		Sum:      36028796616310785,
		Duration: 120 * time.Millisecond,
		Millis:   120,
	}, 120*time.Millisecond, &buf)

	want := "Serial:              120 ms, sum = 36028796616310785\n"
	if got := buf.String(); got != want {
		t.Errorf("sequential line = %q, want %q", got, want)
	}
}

func TestPresentResultLine_ParallelAddsSpeedup(t *testing.T) {
	ui.InitTheme(true)
	var buf bytes.Buffer

	CLIResultPresenter{}.PresentResultLine(bench.PolicyResult{
		Policy:   accumulate.ParallelReduce,
		Sum:      36028796616310785,
		Duration: 30 * time.Millisecond,
		Millis:   30,
	}, 120*time.Millisecond, &buf)

	want := "Parallel reduce:      30 ms, sum = 36028796616310785\n" +
		"Speedup:           4.000e+00\n"
	if got := buf.String(); got != want {
		t.Errorf("parallel lines = %q, want %q", got, want)
	}
}

func TestPresentResultLine_ZeroBaseline(t *testing.T) {
	ui.InitTheme(true)
	var buf bytes.Buffer

	// A sub-millisecond sequential run reports baseline 0; the speedup
	// line still prints, as 0, rather than dividing by zero.
	CLIResultPresenter{}.PresentResultLine(bench.PolicyResult{
		Policy:   accumulate.ParallelAtomic,
		Sum:      45,
		Duration: 2 * time.Millisecond,
		Millis:   2,
	}, 0, &buf)

	want := "Parallel atomic:       2 ms, sum = 45\n" +
		"Speedup:           0.000e+00\n"
	if got := buf.String(); got != want {
		t.Errorf("zero-baseline lines = %q, want %q", got, want)
	}
}

func TestPresentResultLine_Error(t *testing.T) {
	ui.InitTheme(true)
	var buf bytes.Buffer

	CLIResultPresenter{}.PresentResultLine(bench.PolicyResult{
		Policy: accumulate.Parallel,
		Err:    errors.New("boom"),
	}, 0, &buf)

	want := "Parallel:          error: boom\n"
	if got := buf.String(); got != want {
		t.Errorf("error line = %q, want %q", got, want)
	}
}

func TestPresentComparisonTable(t *testing.T) {
	ui.InitTheme(true)
	var buf bytes.Buffer

	results := []bench.PolicyResult{
		{Policy: accumulate.ParallelReduce, Duration: 30 * time.Millisecond},
		{Policy: accumulate.Sequential, Duration: 120 * time.Millisecond},
		{Policy: accumulate.Parallel, Err: errors.New("context deadline exceeded")},
	}
	CLIResultPresenter{}.PresentComparisonTable(results, &buf)
	output := buf.String()

	for _, s := range []string{
		"--- Comparison Summary ---",
		"Policy", "Duration", "Status",
		"Parallel reduce", "30ms", "✅ Success",
		"Serial", "120ms",
		"❌ Failure (context deadline exceeded)",
	} {
		if !strings.Contains(output, s) {
			t.Errorf("Expected table to contain %q, but got:\n%s", s, output)
		}
	}
}

func TestPresentComparisonTable_ZeroDuration(t *testing.T) {
	ui.InitTheme(true)
	var buf bytes.Buffer

	results := []bench.PolicyResult{
		{Policy: accumulate.Sequential, Duration: 0},
	}
	CLIResultPresenter{}.PresentComparisonTable(results, &buf)

	if !strings.Contains(buf.String(), "< 1µs") {
		t.Errorf("Expected a floor marker for a zero duration, got:\n%s", buf.String())
	}
}

func TestPresentVerification(t *testing.T) {
	ui.InitTheme(true)

	tests := []struct {
		name     string
		check    bench.Verification
		strict   bool
		contains string
	}{
		{
			name:     "Matching sum",
			check:    bench.Verification{Policy: accumulate.Sequential, Sum: 45, Want: 45, Match: true, Enforced: true},
			contains: "✓ 45",
		},
		{
			name:     "Racy mismatch is annotated, not condemned",
			check:    bench.Verification{Policy: accumulate.Parallel, Sum: 31415926, Want: 36028796616310785, Match: false, Enforced: false},
			contains: "✗ 31415926 (want 36028796616310785; lost updates expected here)",
		},
		{
			name:     "Fastest trial right, a slower one wrong",
			check:    bench.Verification{Policy: accumulate.ParallelAtomic, Sum: 100, Want: 100, Match: false, Enforced: true},
			strict:   true,
			contains: "✗ a slower trial diverged from 100 (fails the run)",
		},
		{
			name:     "Enforced mismatch without strict",
			check:    bench.Verification{Policy: accumulate.ParallelCritical, Sum: 5, Want: 10, Match: false, Enforced: true},
			contains: "✗ 5, want 10\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			CLIResultPresenter{}.PresentVerification([]bench.Verification{tt.check}, tt.strict, &buf)
			output := buf.String()
			if !strings.Contains(output, "--- Sum Verification ---") {
				t.Errorf("Expected the section header, got:\n%s", output)
			}
			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, but got:\n%s", tt.contains, output)
			}
		})
	}
}

func TestHandleError(t *testing.T) {
	ui.InitTheme(true)

	tests := []struct {
		name     string
		err      error
		duration time.Duration
		wantCode int
		wantMsg  string
	}{
		{
			name:     "No error",
			err:      nil,
			wantCode: apperrors.ExitSuccess,
			wantMsg:  "",
		},
		{
			name:     "Timeout without duration",
			err:      context.DeadlineExceeded,
			wantCode: apperrors.ExitErrorTimeout,
			wantMsg:  "The run timed out.\n",
		},
		{
			name:     "Timeout with duration",
			err:      context.DeadlineExceeded,
			duration: 90 * time.Second,
			wantCode: apperrors.ExitErrorTimeout,
			wantMsg:  "The run timed out after 1m30s.\n",
		},
		{
			name:     "Canceled",
			err:      context.Canceled,
			wantCode: apperrors.ExitErrorCanceled,
			wantMsg:  "The run was canceled.\n",
		},
		{
			name:     "Generic",
			err:      errors.New("boom"),
			wantCode: apperrors.ExitErrorGeneric,
			wantMsg:  "Error: boom\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			code := CLIErrorHandler{}.HandleError(tt.err, tt.duration, &buf)
			if code != tt.wantCode {
				t.Errorf("HandleError() = %d, want %d", code, tt.wantCode)
			}
			if got := buf.String(); got != tt.wantMsg {
				t.Errorf("HandleError() wrote %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestHandleError_ValidationErrorExitsConfig(t *testing.T) {
	ui.InitTheme(true)
	var buf bytes.Buffer

	err := apperrors.ValidationError{Field: "trials", Message: "must be at least 1"}
	code := CLIErrorHandler{}.HandleError(err, 0, &buf)

	if code != apperrors.ExitErrorConfig {
		t.Errorf("HandleError() = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if !strings.Contains(buf.String(), "Error: ") {
		t.Errorf("Expected a generic error message, got %q", buf.String())
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{120 * time.Millisecond, "120ms"},
		{2 * time.Second, "2s"},
	}

	for _, tt := range tests {
		if got := (CLIResultPresenter{}).FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestDisplayMemoryStats(t *testing.T) {
	ui.InitTheme(true)
	var buf bytes.Buffer

	DisplayMemoryStats(metrics.MemorySnapshot{
		HeapAlloc:  2 * 1024 * 1024,
		TotalAlloc: 6 * 1024 * 1024,
		NumGC:      3,
	}, &buf)
	output := buf.String()

	for _, s := range []string{
		"Memory Stats:",
		"Peak heap:       2.00 MiB",
		"Total allocated: 6.00 MiB",
		"GC cycles:       3",
		"GC pause total:  0ms (no collections in the timed region)",
	} {
		if !strings.Contains(output, s) {
			t.Errorf("Expected output to contain %q, but got:\n%s", s, output)
		}
	}
}

func TestDisplayMemoryStats_WithPauses(t *testing.T) {
	ui.InitTheme(true)
	var buf bytes.Buffer

	DisplayMemoryStats(metrics.MemorySnapshot{PauseTotalNs: 2_500_000}, &buf)

	if !strings.Contains(buf.String(), "GC pause total:  2.50ms") {
		t.Errorf("Expected the pause total in milliseconds, got:\n%s", buf.String())
	}
}

func TestDisplayResourceUsage(t *testing.T) {
	ui.InitTheme(true)
	var buf bytes.Buffer

	DisplayResourceUsage(metrics.ResourceUsage{
		UserTime:    2 * time.Second,
		SystemTime:  100 * time.Millisecond,
		MaxRSSBytes: 64 * 1024 * 1024,
	}, time.Second, &buf)
	output := buf.String()

	for _, s := range []string{
		"Resource Usage:",
		"User CPU time:   2s",
		"System CPU time: 100ms",
		"Max RSS:         64.00 MiB",
		"CPU utilization: 2.1 cores",
	} {
		if !strings.Contains(output, s) {
			t.Errorf("Expected output to contain %q, but got:\n%s", s, output)
		}
	}
}

func TestDisplayResourceUsage_ZeroWall(t *testing.T) {
	ui.InitTheme(true)
	var buf bytes.Buffer

	DisplayResourceUsage(metrics.ResourceUsage{UserTime: time.Second}, 0, &buf)

	if strings.Contains(buf.String(), "CPU utilization") {
		t.Errorf("Utilization needs a wall-clock divisor, got:\n%s", buf.String())
	}
}
