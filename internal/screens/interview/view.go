package interview

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/courtside/internal/ui/theme"
)

func (s *InterviewScreen) renderQuestion(width, height int) string {
	var b strings.Builder

	turn := len(s.driver.Session().History)
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  Question %d", turn)))
	b.WriteString("\n\n")

	inner := width - 8
	if inner < 20 {
		inner = 20
	}
	card := lipgloss.NewStyle().
		Width(inner).
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(s.qform.View(inner - 4))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("%s\nPress Enter to try again.", s.errMsg)))
	}
	return b.String()
}

func renderLoading(width int, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  " + text)
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press R to retry or Esc to go back.", errMsg))
}

func renderDefect(width int, err error) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  The server sent a question this app cannot show.\n\n  %s\n\n  The problem has been logged. Press R to retry or Esc to go back.", err))
}
