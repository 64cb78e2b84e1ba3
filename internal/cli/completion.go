package cli

import (
	"fmt"
	"io"
	"strings"

	apperrors "github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/errors"
)

// completionFlag is one row of the table the script writers walk. A row
// with options completes to those values, a row with only a hint takes a
// free-form value, and everything else is a plain switch.
type completionFlag struct {
	long    string
	short   string
	help    string
	hint    string   // value placeholder shown by zsh, empty for switches
	options []string // canned value suggestions
	group   string   // fish comment header this row sorts under
}

// completionFlags mirrors the flag surface of the binary. Every script
// writer derives its output from this table, so a new flag needs exactly
// one new row. Rows sharing a group must stay adjacent.
var completionFlags = []completionFlag{
	{long: "help", short: "h", help: "Show help message", group: "Help and version"},
	{long: "version", help: "Print version information", group: "Help and version"},
	{long: "start", help: "Inclusive lower bound of the summation range", hint: "number", group: "Workload"},
	{long: "end", help: "Exclusive upper bound of the summation range", hint: "number", group: "Workload"},
	{long: "workers", help: "Parallel worker cap (0 = all logical CPUs)", hint: "count", options: []string{"1", "2", "4", "8", "16"}, group: "Workload"},
	{long: "trials", help: "Timed runs per policy", hint: "count", options: []string{"1", "3", "5", "10"}, group: "Workload"},
	{long: "timeout", help: "Deadline for the whole suite", hint: "duration", options: []string{"30s", "1m", "5m", "10m"}, group: "Workload"},
	{long: "strict", help: "Fail when a synchronized policy misses the verified sum", group: "Run discipline"},
	{long: "no-gc", help: "Disable the garbage collector during timed regions", group: "Run discipline"},
	{long: "sweep", help: "Run the worker-count scaling sweep", group: "Run discipline"},
	{long: "metrics-addr", help: "Serve Prometheus metrics on this address", hint: "address", group: "Front ends and output"},
	{long: "tui", help: "Full-screen dashboard front end", group: "Front ends and output"},
	{short: "i", help: "Interactive read-eval-print loop", group: "Front ends and output"},
	{long: "quiet", help: "Print only the result block", group: "Front ends and output"},
	{long: "no-color", help: "Disable ANSI colors", group: "Front ends and output"},
	{short: "v", help: "Debug logging and per-run memory statistics", group: "Front ends and output"},
}

// completionShells lists what the completion subcommand accepts, in the
// order the scripts offer them.
var completionShells = []string{"bash", "zsh", "fish"}

// GenerateCompletion writes a completion script for the requested shell
// to out.
func GenerateCompletion(out io.Writer, shell string) error {
	write, ok := map[string]func(io.Writer) error{
		"bash": writeBashScript,
		"zsh":  writeZshScript,
		"fish": writeFishScript,
	}[shell]
	if !ok {
		return apperrors.NewConfigError("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
	return write(out)
}

// flagTokens returns every flag spelling the binary accepts, dashes
// restored, long form before short for rows carrying both.
func flagTokens() []string {
	var toks []string
	for _, f := range completionFlags {
		if f.long != "" {
			toks = append(toks, "--"+f.long)
		}
		if f.short != "" {
			toks = append(toks, "-"+f.short)
		}
	}
	return toks
}

// writeBashScript emits a programmable-completion function for bash.
// Value suggestions hang off the previous word, flag names complete
// whenever the current word starts with a dash, and the completion
// subcommand is offered in the first position.
func writeBashScript(out io.Writer) error {
	var cases strings.Builder
	caseArm := func(pattern string, words []string) {
		fmt.Fprintf(&cases, "    %s)\n        COMPREPLY=( $(compgen -W '%s' -- \"$cur\") )\n        return\n        ;;\n",
			pattern, strings.Join(words, " "))
	}
	caseArm("completion", completionShells)
	for _, f := range completionFlags {
		if len(f.options) > 0 {
			caseArm("--"+f.long, f.options)
		}
	}

	script := fmt.Sprintf(`# Completions for the sharedvars benchmark driver (bash).
# Source this file from ~/.bashrc or install it under /etc/bash_completion.d/.

_sharedvars() {
    local cur prev
    COMPREPLY=()
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}

    case $prev in
%s    esac

    if [[ $cur == -* ]]; then
        COMPREPLY=( $(compgen -W '%s' -- "$cur") )
        return
    fi

    if (( COMP_CWORD == 1 )); then
        COMPREPLY=( $(compgen -W 'completion' -- "$cur") )
    fi
}

complete -F _sharedvars sharedvars
`, cases.String(), strings.Join(flagTokens(), " "))

	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("write bash completion: %w", err)
	}
	return nil
}

// writeZshScript emits an _arguments based completer for zsh.
func writeZshScript(out io.Writer) error {
	var b strings.Builder
	b.WriteString("#compdef sharedvars\n\n")
	b.WriteString("# Completions for the sharedvars benchmark driver (zsh).\n")
	b.WriteString("# Install on $fpath as _sharedvars or source it directly.\n\n")
	b.WriteString("_sharedvars() {\n    _arguments -s")
	for _, f := range completionFlags {
		b.WriteString(" \\\n        " + zshSpec(f))
	}
	b.WriteString(" \\\n        '1:command:(completion)'")
	fmt.Fprintf(&b, " \\\n        '2:shell:(%s)'", strings.Join(completionShells, " "))
	b.WriteString("\n}\n\n_sharedvars \"$@\"\n")

	if _, err := io.WriteString(out, b.String()); err != nil {
		return fmt.Errorf("write zsh completion: %w", err)
	}
	return nil
}

// zshSpec renders one table row as a quoted _arguments spec. Rows
// carrying both spellings exclude each other, and value rows append a
// message plus an optional action listing the canned suggestions.
func zshSpec(f completionFlag) string {
	var tail string
	switch {
	case len(f.options) > 0:
		tail = fmt.Sprintf(":%s:(%s)", f.hint, strings.Join(f.options, " "))
	case f.hint != "":
		tail = ":" + f.hint + ":"
	}
	switch {
	case f.long != "" && f.short != "":
		return fmt.Sprintf("'(-%[1]s --%[2]s)'{-%[1]s,--%[2]s}'[%[3]s]%[4]s'", f.short, f.long, f.help, tail)
	case f.long != "":
		return fmt.Sprintf("'--%s[%s]%s'", f.long, f.help, tail)
	default:
		return fmt.Sprintf("'-%s[%s]%s'", f.short, f.help, tail)
	}
}

// writeFishScript emits one complete(1) call per table row for fish,
// under comment headers taken from the group column.
func writeFishScript(out io.Writer) error {
	var b strings.Builder
	b.WriteString("# Completions for the sharedvars benchmark driver (fish).\n")
	b.WriteString("# Install as ~/.config/fish/completions/sharedvars.fish\n\n")
	b.WriteString("complete -c sharedvars -f\n")

	group := ""
	for _, f := range completionFlags {
		if f.group != group {
			group = f.group
			b.WriteString("\n# " + group + "\n")
		}
		b.WriteString(fishSpec(f) + "\n")
	}

	b.WriteString("\n# Completion subcommand\n")
	b.WriteString("complete -c sharedvars -n __fish_use_subcommand -a completion -d 'Generate completion script'\n")
	fmt.Fprintf(&b, "complete -c sharedvars -n '__fish_seen_subcommand_from completion' -xa '%s'\n", strings.Join(completionShells, " "))

	if _, err := io.WriteString(out, b.String()); err != nil {
		return fmt.Errorf("write fish completion: %w", err)
	}
	return nil
}

// fishSpec renders one table row as a complete(1) invocation.
func fishSpec(f completionFlag) string {
	cmd := "complete -c sharedvars"
	if f.short != "" {
		cmd += " -s " + f.short
	}
	if f.long != "" {
		cmd += " -l " + f.long
	}
	cmd += " -d '" + f.help + "'"
	switch {
	case len(f.options) > 0:
		cmd += " -xa '" + strings.Join(f.options, " ") + "'"
	case f.hint != "":
		cmd += " -x"
	}
	return cmd
}
