// Package ui holds the terminal color theme shared by every front end.
// The accessor functions return ANSI escape codes, or empty strings once
// color is disabled, so callers can splice them into output without
// branching on the active theme.
//
// Both the plain CLI reporter and the dashboard styles read from here,
// which keeps color policy (NO_COLOR, the -no-color flag) in one place.
package ui
