package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// press builds the message a terminal delivers for name, either a
// single rune or one of the named keys the dashboard binds.
func press(name string) tea.KeyMsg {
	named := map[string]tea.KeyType{
		"ctrl+c": tea.KeyCtrlC,
		"esc":    tea.KeyEsc,
		"up":     tea.KeyUp,
		"down":   tea.KeyDown,
		"pgup":   tea.KeyPgUp,
		"pgdown": tea.KeyPgDown,
		"f1":     tea.KeyF1,
	}
	if typ, ok := named[name]; ok {
		return tea.KeyMsg{Type: typ}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

// TestDefaultKeyMap_Dispatch drives every binding through key.Matches
// with the same messages the update loop sees.
func TestDefaultKeyMap_Dispatch(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"Quit", km.Quit, []string{"q", "ctrl+c", "esc"}},
		{"Pause", km.Pause, []string{"p"}},
		{"Reset", km.Reset, []string{"r"}},
		{"Help", km.Help, []string{"?", "f1"}},
		{"Up", km.Up, []string{"up", "k"}},
		{"Down", km.Down, []string{"down", "j"}},
		{"PageUp", km.PageUp, []string{"pgup"}},
		{"PageDown", km.PageDown, []string{"pgdown"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range tt.keys {
				if !key.Matches(press(k), tt.binding) {
					t.Errorf("%s should match %q", tt.name, k)
				}
			}
			if key.Matches(press("x"), tt.binding) {
				t.Errorf("%s should not match an unbound key", tt.name)
			}
		})
	}
}

// TestDefaultKeyMap_HelpEntries verifies each binding carries the help
// text the footer renders.
func TestDefaultKeyMap_HelpEntries(t *testing.T) {
	km := DefaultKeyMap()

	bindings := map[string]key.Binding{
		"Quit":     km.Quit,
		"Pause":    km.Pause,
		"Reset":    km.Reset,
		"Help":     km.Help,
		"Up":       km.Up,
		"Down":     km.Down,
		"PageUp":   km.PageUp,
		"PageDown": km.PageDown,
	}

	for name, b := range bindings {
		h := b.Help()
		if h.Key == "" || h.Desc == "" {
			t.Errorf("%s help = {%q %q}, want both populated", name, h.Key, h.Desc)
		}
	}
}
