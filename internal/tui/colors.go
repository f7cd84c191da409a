package tui

// Color constants for the chrono TUI theme
const (
	// Base Colors
	ColorCardBackground = "#141B2E" // Dark blue
	ColorBorder         = "#33405C" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Titles and values
	ColorSecondaryText = "#AEB6C8" // Labels and planned ranges
	ColorDisabledText  = "#6D7383" // Muted text
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors
	ColorAccentMain   = "#2563EB" // Active timer, highlights
	ColorAccentBright = "#60A5FA" // Hour labels, emphasis

	// State Colors
	ColorError   = "#EF4444" // Errors, the now line
	ColorSuccess = "#22C55E" // Completed state
	ColorWarning = "#F59E0B" // Paused state
)
