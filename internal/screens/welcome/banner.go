package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/courtside/internal/ui/theme"
)

const bannerArt = `
  ___  ___  _   _ ___ _____ ___ ___ ___  ___
 / __|/ _ \| | | | _ \_   _/ __|_ _|   \| __|
| (__| (_) | |_| |   / | | \__ \| || |) | _|
 \___|\___/ \___/|_|_\ |_| |___/___|___/|___|`

const bannerCompact = "C O U R T S I D E"

// RenderBanner returns the COURTSIDE banner, falling back to spaced
// letters below 48 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true)

	if width < 48 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
