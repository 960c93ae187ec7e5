package tui

// Color constants for the daybook TUI theme
const (
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Field labels, user input, titles
	ColorSecondaryText = "#B1B8C7"
	ColorDisabledText  = "#6D7383"
	ColorPlaceholder   = "#B1B8C7"
	ColorHelpText      = "240" // Dark grey for help text

	// Accent Colors (teal theme)
	ColorAccentMain   = "#0F766E" // Logo, active borders
	ColorAccentBright = "#2DD4BF" // Highlights, current step, clock digits

	// State Colors
	ColorError   = "#EF4444"
	ColorSuccess = "#22C55E"
	ColorWarning = "#F59E0B"
)
