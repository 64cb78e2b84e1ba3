package ui

// Accessor functions for the active theme's escape codes. Call sites use
// these instead of reading theme fields so that theme switches (including
// NO_COLOR) take effect everywhere without plumbing a Theme value through.

// ColorBlue returns the primary accent color code.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorGreen returns the success color code.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color code.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorRed returns the error color code.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorMagenta returns the informational color code.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan returns the banner and table header color code.
func ColorCyan() string { return GetCurrentTheme().Cyan }

// ColorGrey returns the secondary (dim) color code.
func ColorGrey() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold escape code.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline escape code.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ColorReset returns the reset escape code.
func ColorReset() string { return GetCurrentTheme().Reset }
