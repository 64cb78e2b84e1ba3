package config

import (
	"bytes"
	"errors"
	"flag"
	"testing"
	"time"

	apperrors "github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/errors"
)

func parse(t *testing.T, args ...string) (AppConfig, error) {
	t.Helper()
	var buf bytes.Buffer
	return ParseConfig("sharedvars", args, &buf)
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("ParseConfig() with no args: %v", err)
	}

	if cfg.Start != 0 {
		t.Errorf("Start = %d, want 0", cfg.Start)
	}
	if cfg.End != DefaultEnd {
		t.Errorf("End = %d, want %d", cfg.End, DefaultEnd)
	}
	if cfg.End != 268435455 {
		t.Errorf("DefaultEnd = %d, want 268435455", cfg.End)
	}
	if cfg.Workers != 0 {
		t.Errorf("Workers = %d, want 0 (all CPUs)", cfg.Workers)
	}
	if cfg.Trials != 1 {
		t.Errorf("Trials = %d, want 1", cfg.Trials)
	}
	if cfg.Timeout != 0 {
		t.Errorf("Timeout = %v, want 0 (disabled)", cfg.Timeout)
	}
	if cfg.Strict || cfg.NoGC || cfg.Sweep || cfg.TUI || cfg.Interactive || cfg.Quiet || cfg.Verbose {
		t.Errorf("boolean flags not all false by default: %+v", cfg)
	}
	if cfg.MetricsAddr != "" {
		t.Errorf("MetricsAddr = %q, want empty", cfg.MetricsAddr)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	cfg, err := parse(t,
		"-start", "-100", "-end", "1000",
		"-workers", "4", "-trials", "3",
		"-timeout", "30s", "-strict", "-no-gc", "-quiet", "-v",
		"-metrics-addr", ":9090")
	if err != nil {
		t.Fatalf("ParseConfig(): %v", err)
	}

	if cfg.Start != -100 || cfg.End != 1000 {
		t.Errorf("range = [%d, %d), want [-100, 1000)", cfg.Start, cfg.End)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.Trials != 3 {
		t.Errorf("Trials = %d, want 3", cfg.Trials)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if !cfg.Strict || !cfg.NoGC || !cfg.Quiet || !cfg.Verbose {
		t.Errorf("boolean flags not applied: %+v", cfg)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("MetricsAddr = %q, want :9090", cfg.MetricsAddr)
	}
}

func TestParseConfig_HelpRequested(t *testing.T) {
	_, err := parse(t, "-h")
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("expected flag.ErrHelp, got %v", err)
	}
}

func TestParseConfig_UnexpectedArgument(t *testing.T) {
	_, err := parse(t, "leftover")
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("expected ConfigError for stray argument, got %v", err)
	}
}

func TestParseConfig_CompletionSubcommand(t *testing.T) {
	cfg, err := parse(t, "completion", "bash")
	if err != nil {
		t.Fatalf("ParseConfig(completion bash): %v", err)
	}
	if cfg.Completion != "bash" {
		t.Errorf("Completion = %q, want bash", cfg.Completion)
	}

	_, err = parse(t, "completion")
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("expected ConfigError for missing shell, got %v", err)
	}
}

func TestParseConfig_Validation(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		field string
	}{
		{"zero trials", []string{"-trials", "0"}, "trials"},
		{"negative trials", []string{"-trials", "-2"}, "trials"},
		{"negative workers", []string{"-workers", "-1"}, "workers"},
		{"negative timeout", []string{"-timeout", "-5s"}, "timeout"},
		{"sweep with dashboard", []string{"-sweep", "-tui"}, "sweep"},
		{"repl with dashboard", []string{"-i", "-tui"}, "i"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.args...)
			var valErr apperrors.ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if valErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", valErr.Field, tt.field)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"END", "5000")
	t.Setenv(EnvPrefix+"TRIALS", "5")
	t.Setenv(EnvPrefix+"STRICT", "yes")
	t.Setenv(EnvPrefix+"TIMEOUT", "2m")

	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("ParseConfig(): %v", err)
	}
	if cfg.End != 5000 {
		t.Errorf("End = %d, want 5000 from environment", cfg.End)
	}
	if cfg.Trials != 5 {
		t.Errorf("Trials = %d, want 5 from environment", cfg.Trials)
	}
	if !cfg.Strict {
		t.Error("Strict not applied from environment")
	}
	if cfg.Timeout != 2*time.Minute {
		t.Errorf("Timeout = %v, want 2m from environment", cfg.Timeout)
	}
}

func TestEnvOverrides_FlagTakesPrecedence(t *testing.T) {
	t.Setenv(EnvPrefix+"END", "5000")
	t.Setenv(EnvPrefix+"QUIET", "1")

	cfg, err := parse(t, "-end", "777", "-quiet=false")
	if err != nil {
		t.Fatalf("ParseConfig(): %v", err)
	}
	if cfg.End != 777 {
		t.Errorf("End = %d, want 777 (flag over environment)", cfg.End)
	}
	if cfg.Quiet {
		t.Error("Quiet = true; explicit -quiet=false must beat the environment")
	}
}

func TestEnvOverrides_InvalidValuesIgnored(t *testing.T) {
	t.Setenv(EnvPrefix+"END", "not-a-number")
	t.Setenv(EnvPrefix+"TIMEOUT", "soon")

	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("ParseConfig(): %v", err)
	}
	if cfg.End != DefaultEnd {
		t.Errorf("End = %d, want default %d for unparseable env value", cfg.End, DefaultEnd)
	}
	if cfg.Timeout != 0 {
		t.Errorf("Timeout = %v, want 0 for unparseable env value", cfg.Timeout)
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		val        string
		defaultVal bool
		want       bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"yes", false, true},
		{"TRUE", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"No", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
		{"", true, true},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.val, tt.defaultVal); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.val, tt.defaultVal, got, tt.want)
		}
	}
}

func TestElementCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		start, end int64
		want       uint64
	}{
		{0, 268435455, 268435455},
		{0, 0, 0},
		{10, 3, 0},
		{-5, 5, 10},
		{-10, -5, 5},
	}
	for _, tt := range tests {
		cfg := AppConfig{Start: tt.start, End: tt.end}
		if got := cfg.ElementCount(); got != tt.want {
			t.Errorf("ElementCount() for [%d, %d) = %d, want %d", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestIsMultiTrial(t *testing.T) {
	t.Parallel()

	if (AppConfig{Trials: 1}).IsMultiTrial() {
		t.Error("Trials=1 reported as multi-trial")
	}
	if !(AppConfig{Trials: 2}).IsMultiTrial() {
		t.Error("Trials=2 not reported as multi-trial")
	}
}
