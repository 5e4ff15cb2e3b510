// Package analysis presents a finished assessment: findings with their
// confidence, or the questionnaire diagnosis and recommended doctors.
package analysis

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/courtside/internal/result"
	"github.com/abhisek/courtside/internal/router"
	"github.com/abhisek/courtside/internal/screen"
	"github.com/abhisek/courtside/internal/ui/components"
	"github.com/abhisek/courtside/internal/ui/layout"
	"github.com/abhisek/courtside/internal/ui/theme"
)

// AnalysisScreen renders a result.Assessment.
type AnalysisScreen struct {
	assessment     result.Assessment
	workoutFactory func() screen.Screen
}

var _ screen.Screen = (*AnalysisScreen)(nil)
var _ screen.KeyHintProvider = (*AnalysisScreen)(nil)

// New creates the analysis screen. workoutFactory may be nil when no
// motion engine is configured; the treatment action then restarts.
func New(a result.Assessment, workoutFactory func() screen.Screen) *AnalysisScreen {
	return &AnalysisScreen{assessment: a, workoutFactory: workoutFactory}
}

// Assessment returns the presented assessment.
func (s *AnalysisScreen) Assessment() result.Assessment { return s.assessment }

func (s *AnalysisScreen) Init() tea.Cmd {
	return nil
}

func (s *AnalysisScreen) Title() string {
	return "Assessment"
}

func (s *AnalysisScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: s.assessment.Action().Label()},
		{Key: "R", Description: "Restart"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *AnalysisScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "enter":
		if s.assessment.Action() == result.ActionTreatment && s.workoutFactory != nil {
			next := s.workoutFactory()
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
		return s, restart
	case "r":
		return s, restart
	}
	return s, nil
}

func restart() tea.Msg { return router.PopToRootMsg{} }

func (s *AnalysisScreen) View(width, height int) string {
	a := s.assessment
	var b strings.Builder

	heading := "Assessment complete"
	if a.EarlyExit {
		heading = "Assessment complete (early)"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(heading))
	b.WriteString("\n\n")

	barWidth := width - 8
	if barWidth > 70 {
		barWidth = 70
	}
	for _, f := range a.Findings {
		bar := components.NewProgressBar(f.Name, f.Confidence, true, barWidth)
		b.WriteString("    " + bar.View())
		b.WriteString("\n")
	}

	if a.Diagnosis != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width-8).
			PaddingLeft(4).
			Foreground(theme.Text).
			Render(a.Diagnosis))
		b.WriteString("\n")
	}

	if len(a.Doctors) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true).
			Render("    Recommended doctors"))
		b.WriteString("\n")
		for _, d := range a.Doctors {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf("    • %s, %s", d.Name, d.Specialty)))
			b.WriteString("\n")
			if d.Location != "" || d.Contact != "" {
				b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("      %s  %s", d.Location, d.Contact)))
				b.WriteString("\n")
			}
		}
	}

	if len(a.Findings) == 0 && a.Diagnosis == "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("No findings were returned."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	btn := components.NewActionButton(a.Action())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, btn.View()))

	return b.String()
}
