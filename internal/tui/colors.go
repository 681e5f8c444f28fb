package tui

// Color constants for the focustache TUI theme
const (
	// Base Colors
	ColorBorder = "#2E4057" // Slate blue

	// Text Colors
	ColorPrimaryText   = "#EAF0F6" // Primary text (titles, values)
	ColorSecondaryText = "#9FB3C8" // Secondary text - muted blue-grey
	ColorDisabledText  = "#627D98" // Disabled/muted text
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Teal theme)
	ColorAccentMain   = "#0D9488" // Accent elements, active borders
	ColorAccentBright = "#2DD4BF" // Highlights, running timer

	// State Colors
	ColorError   = "#EF4444" // Cancelled, errors
	ColorSuccess = "#22C55E" // Completed sessions
	ColorWarning = "#F59E0B" // Paused timer, breaks
)
