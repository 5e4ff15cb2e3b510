package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: hardwood orange on a dark court
var (
	Primary   = lipgloss.Color("#E8772E") // Ball orange
	Secondary = lipgloss.Color("#D9A066") // Hardwood
	Accent    = lipgloss.Color("#F5C542") // Baseline yellow
	Success   = lipgloss.Color("#4CAF7A") // Green
	Error     = lipgloss.Color("#E5484D") // Red
	Text      = lipgloss.Color("#F4F1EC") // Chalk
	TextDim   = lipgloss.Color("#9A948C") // Worn paint
	BgCard    = lipgloss.Color("#26211C") // Bench
	Border    = lipgloss.Color("#4A3F35") // Sideline
)

var Hint = lipgloss.NewStyle().
	Foreground(TextDim).
	Italic(true)

// Buttons
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(BgCard).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
