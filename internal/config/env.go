// Environment variable overrides. Flags set on the command line always
// win; env values only fill the gaps.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// envOverride binds one environment key (without the SHAREDVARS_
// prefix) to the flag name(s) it mirrors and the setter that applies
// its value.
type envOverride struct {
	key   string
	flags []string
	apply func(*AppConfig, string)
}

// overridden reports whether any of the mirrored flags was passed
// explicitly, in which case the environment value must not apply.
func (o envOverride) overridden(seen map[string]bool) bool {
	for _, name := range o.flags {
		if seen[name] {
			return true
		}
	}
	return false
}

// boolEnv adapts a bool field accessor into an override setter. An
// unrecognized value leaves the field as it was.
func boolEnv(field func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		p := field(c)
		*p = parseBoolEnv(v, *p)
	}
}

// envOverrides is the declarative table of every environment override,
// grouped as numeric, duration, string, then boolean keys.
var envOverrides = []envOverride{
	// numeric
	{"START", []string{"start"}, func(c *AppConfig, v string) {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Start = n
		}
	}},
	{"END", []string{"end"}, func(c *AppConfig, v string) {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.End = n
		}
	}},
	{"WORKERS", []string{"workers"}, func(c *AppConfig, v string) {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}},
	{"TRIALS", []string{"trials"}, func(c *AppConfig, v string) {
		if n, err := strconv.Atoi(v); err == nil {
			c.Trials = n
		}
	}},

	// durations
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}},

	// strings
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) {
		c.MetricsAddr = v
	}},

	// booleans
	{"STRICT", []string{"strict"}, boolEnv(func(c *AppConfig) *bool { return &c.Strict })},
	{"NO_GC", []string{"no-gc"}, boolEnv(func(c *AppConfig) *bool { return &c.NoGC })},
	{"SWEEP", []string{"sweep"}, boolEnv(func(c *AppConfig) *bool { return &c.Sweep })},
	{"TUI", []string{"tui"}, boolEnv(func(c *AppConfig) *bool { return &c.TUI })},
	{"INTERACTIVE", []string{"i"}, boolEnv(func(c *AppConfig) *bool { return &c.Interactive })},
	{"QUIET", []string{"quiet"}, boolEnv(func(c *AppConfig) *bool { return &c.Quiet })},
	{"NO_COLOR", []string{"no-color"}, boolEnv(func(c *AppConfig) *bool { return &c.NoColor })},
	{"VERBOSE", []string{"v"}, boolEnv(func(c *AppConfig) *bool { return &c.Verbose })},
}

// parseBoolEnv interprets a boolean environment value. "true", "1" and
// "yes" enable, "false", "0" and "no" disable, case-insensitively;
// anything else keeps defaultVal.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		return defaultVal
	}
}

// setFlags collects the names of flags passed explicitly on the
// command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	seen := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { seen[f.Name] = true })
	return seen
}

// applyEnvOverrides copies SHAREDVARS_-prefixed environment values into
// the configuration wherever the matching flag was not given, yielding
// the priority order CLI flags, then environment, then defaults.
//
// Recognized keys: START, END, WORKERS, TRIALS, TIMEOUT, METRICS_ADDR,
// STRICT, NO_GC, SWEEP, TUI, INTERACTIVE, QUIET, NO_COLOR, VERBOSE.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	seen := setFlags(fs)
	for _, o := range envOverrides {
		if o.overridden(seen) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.key); val != "" {
			o.apply(config, val)
		}
	}
}
