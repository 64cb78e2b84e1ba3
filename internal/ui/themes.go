package ui

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is one ANSI color scheme. Every field holds a ready-to-print
// escape code; the no-color theme holds empty strings throughout, which
// is what lets call sites splice codes in unconditionally.
type Theme struct {
	Name string

	Primary   string // main accent
	Secondary string // dimmed, de-emphasized text
	Success   string // verified sums, optimal rungs
	Warning   string // non-fatal divergence
	Error     string // failures
	Info      string // informational notes
	Cyan      string // banners and table headers
	Bold      string
	Underline string
	Reset     string
}

const (
	ansiBold      = "\033[1m"
	ansiUnderline = "\033[4m"
	ansiReset     = "\033[0m"
)

// fg renders a 256-color foreground escape code.
func fg(code int) string {
	return fmt.Sprintf("\033[38;5;%dm", code)
}

// DarkTheme favors bright 256-color codes for dark backgrounds.
var DarkTheme = Theme{
	Name:      "dark",
	Primary:   fg(75),  // sky blue
	Secondary: fg(246), // grey
	Success:   fg(114), // green
	Warning:   fg(221), // yellow
	Error:     fg(203), // coral red
	Info:      fg(176), // orchid
	Cyan:      fg(44),
	Bold:      ansiBold,
	Underline: ansiUnderline,
	Reset:     ansiReset,
}

// LightTheme darkens every hue for readability on light backgrounds.
var LightTheme = Theme{
	Name:      "light",
	Primary:   fg(25),  // navy
	Secondary: fg(241), // dark grey
	Success:   fg(22),  // forest green
	Warning:   fg(94),  // ochre
	Error:     fg(88),  // dark red
	Info:      fg(90),  // plum
	Cyan:      fg(23),
	Bold:      ansiBold,
	Underline: ansiUnderline,
	Reset:     ansiReset,
}

// OrangeTheme matches the dashboard's warm palette in the plain CLI.
var OrangeTheme = Theme{
	Name:      "orange",
	Primary:   fg(214), // orange
	Secondary: fg(247), // grey
	Success:   fg(113), // green
	Warning:   fg(215), // peach
	Error:     fg(160), // red
	Info:      fg(75),  // blue
	Cyan:      fg(123),
	Bold:      ansiBold,
	Underline: ansiUnderline,
	Reset:     ansiReset,
}

// NoColorTheme renders everything unstyled.
var NoColorTheme = Theme{Name: "none"}

// themesByName backs SetTheme. Adding a theme means adding a row here;
// the accessors pick it up unchanged.
var themesByName = map[string]Theme{
	"dark":   DarkTheme,
	"light":  LightTheme,
	"orange": OrangeTheme,
	"none":   NoColorTheme,
}

var (
	themeMu sync.RWMutex
	active  = DarkTheme
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return active
}

// SetCurrentTheme replaces the active theme wholesale. Tests use it to
// restore the state they found.
func SetCurrentTheme(t Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	active = t
}

// SetTheme activates a theme by name ("dark", "light", "orange",
// "none"). Unknown names fall back to the dark theme.
func SetTheme(name string) {
	theme, ok := themesByName[name]
	if !ok {
		theme = DarkTheme
	}
	SetCurrentTheme(theme)
}

// InitTheme selects the startup theme. The -no-color flag wins, then a
// set NO_COLOR environment variable (any value, per no-color.org),
// otherwise the dark default.
func InitTheme(noColor bool) {
	if !noColor {
		_, noColor = os.LookupEnv("NO_COLOR")
	}
	if noColor {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DarkTheme)
}

// TUITheme carries the dashboard palette as lipgloss colors, ready for
// Style.Foreground and Background.
type TUITheme struct {
	Bg, Text, Border, Accent           lipgloss.TerminalColor
	Success, Warning, Error, Dim, Info lipgloss.TerminalColor
}

// DarkTUITheme is the dashboard's warm orange-on-black palette.
var DarkTUITheme = TUITheme{
	Bg:      lipgloss.Color("#101010"),
	Text:    lipgloss.Color("#DADADA"),
	Border:  lipgloss.Color("#E8731A"),
	Accent:  lipgloss.Color("#F59E42"),
	Success: lipgloss.Color("#98C379"),
	Warning: lipgloss.Color("#E5C07B"),
	Error:   lipgloss.Color("#E06C75"),
	Dim:     lipgloss.Color("#5F6672"),
	Info:    lipgloss.Color("#61AFEF"),
}

// NoColorTUITheme leaves the terminal's own colors in place.
var NoColorTUITheme = TUITheme{
	Bg:      lipgloss.NoColor{},
	Text:    lipgloss.NoColor{},
	Border:  lipgloss.NoColor{},
	Accent:  lipgloss.NoColor{},
	Success: lipgloss.NoColor{},
	Warning: lipgloss.NoColor{},
	Error:   lipgloss.NoColor{},
	Dim:     lipgloss.NoColor{},
	Info:    lipgloss.NoColor{},
}

// GetCurrentTUITheme maps the active CLI theme onto a dashboard
// palette: no-color stays unstyled, every other theme uses the dark
// dashboard colors.
func GetCurrentTUITheme() TUITheme {
	if GetCurrentTheme().Name == NoColorTheme.Name {
		return NoColorTUITheme
	}
	return DarkTUITheme
}
