// Package intake is the body-part picker that opens every assessment.
package intake

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	parts "github.com/abhisek/courtside/internal/intake"
	"github.com/abhisek/courtside/internal/router"
	"github.com/abhisek/courtside/internal/screen"
	"github.com/abhisek/courtside/internal/ui/components"
	"github.com/abhisek/courtside/internal/ui/layout"
	"github.com/abhisek/courtside/internal/ui/theme"
)

type pickMsg struct{ token string }

type startInterviewMsg struct{}

type startQuestionnaireMsg struct{}

// IntakeScreen lets the user mark one body part and start an interview
// or a questionnaire seeded with it.
type IntakeScreen struct {
	parts                []parts.Part
	selected             string
	menu                 components.Menu
	interviewFactory     func(seed string) screen.Screen
	questionnaireFactory func(bodyPart string) screen.Screen
	errMsg               string
}

var _ screen.Screen = (*IntakeScreen)(nil)
var _ screen.KeyHintProvider = (*IntakeScreen)(nil)

// New creates the intake screen. questionnaireFactory may be nil, in which
// case only the interview is offered.
func New(ps []parts.Part, interviewFactory func(seed string) screen.Screen, questionnaireFactory func(bodyPart string) screen.Screen) *IntakeScreen {
	s := &IntakeScreen{
		parts:                ps,
		interviewFactory:     interviewFactory,
		questionnaireFactory: questionnaireFactory,
	}
	s.menu = components.NewMenu(s.items())
	return s
}

// Selected returns the marked body-part token, or "".
func (s *IntakeScreen) Selected() string { return s.selected }

func (s *IntakeScreen) items() []components.MenuItem {
	none := s.selected == ""
	items := make([]components.MenuItem, 0, len(s.parts)+2)
	for _, p := range s.parts {
		token := p.Token
		items = append(items, components.MenuItem{
			Label:  p.Label,
			Marked: token == s.selected,
			Action: func() tea.Cmd {
				return func() tea.Msg { return pickMsg{token: token} }
			},
		})
	}
	items = append(items, components.MenuItem{
		Label:    "Start interview",
		Disabled: none,
		Action: func() tea.Cmd {
			return func() tea.Msg { return startInterviewMsg{} }
		},
	})
	if s.questionnaireFactory != nil {
		items = append(items, components.MenuItem{
			Label:    "Quick questionnaire",
			Disabled: none,
			Action: func() tea.Cmd {
				return func() tea.Msg { return startQuestionnaireMsg{} }
			},
		})
	}
	return items
}

func (s *IntakeScreen) Init() tea.Cmd {
	return nil
}

func (s *IntakeScreen) Title() string {
	return "Where does it hurt?"
}

func (s *IntakeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *IntakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case pickMsg:
		s.selected = msg.token
		s.errMsg = ""
		cursor := s.menu.Selected
		s.menu = components.NewMenu(s.items())
		s.menu.Selected = cursor
		return s, nil

	case startInterviewMsg:
		seed, err := parts.Seed(s.selected)
		if err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		next := s.interviewFactory(seed)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }

	case startQuestionnaireMsg:
		seed, err := parts.Seed(s.selected)
		if err != nil || s.questionnaireFactory == nil {
			if err != nil {
				s.errMsg = err.Error()
			}
			return s, nil
		}
		next := s.questionnaireFactory(seed)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *IntakeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Pick the injured body part"))
	b.WriteString("\n\n")

	menu := lipgloss.NewStyle().Width(32).Render(s.menu.View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.errMsg))
	}

	return b.String()
}
