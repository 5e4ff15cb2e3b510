// Package questionnaire is the terminal front end of the one-shot
// body-part questionnaire.
package questionnaire

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/courtside/internal/api"
	qn "github.com/abhisek/courtside/internal/questionnaire"
	"github.com/abhisek/courtside/internal/result"
	"github.com/abhisek/courtside/internal/router"
	"github.com/abhisek/courtside/internal/screen"
	"github.com/abhisek/courtside/internal/ui/components"
	"github.com/abhisek/courtside/internal/ui/layout"
	"github.com/abhisek/courtside/internal/ui/theme"
)

type loadedMsg struct {
	q   *qn.Questionnaire
	err error
}

type submittedMsg struct {
	assessment result.Assessment
	err        error
}

// QuestionnaireScreen walks through every question in order and submits
// the whole set after the last answer.
type QuestionnaireScreen struct {
	client          api.Client
	bodyPart        string
	analysisFactory func(result.Assessment) screen.Screen

	ctx    context.Context
	cancel context.CancelFunc

	q          *qn.Questionnaire
	index      int
	qform      *components.QuestionForm
	submitting bool
	errMsg     string
}

var _ screen.Screen = (*QuestionnaireScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionnaireScreen)(nil)
var _ screen.Closer = (*QuestionnaireScreen)(nil)

// New creates a questionnaire screen for bodyPart.
func New(client api.Client, bodyPart string, analysisFactory func(result.Assessment) screen.Screen) *QuestionnaireScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &QuestionnaireScreen{
		client:          client,
		bodyPart:        bodyPart,
		analysisFactory: analysisFactory,
		ctx:             ctx,
		cancel:          cancel,
	}
}

func (s *QuestionnaireScreen) Init() tea.Cmd {
	return s.load()
}

func (s *QuestionnaireScreen) Title() string {
	return "Questionnaire"
}

func (s *QuestionnaireScreen) KeyHints() []layout.KeyHint {
	if s.q == nil {
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Next"},
		{Key: "Shift+Tab", Description: "Previous"},
		{Key: "Esc", Description: "Back"},
	}
}

// Close cancels any request still running.
func (s *QuestionnaireScreen) Close() {
	s.cancel()
}

func (s *QuestionnaireScreen) load() tea.Cmd {
	ctx, client, bp := s.ctx, s.client, s.bodyPart
	return func() tea.Msg {
		q, err := qn.Load(ctx, client, bp)
		return loadedMsg{q: q, err: err}
	}
}

func (s *QuestionnaireScreen) show(i int) tea.Cmd {
	s.index = i
	qf := components.NewQuestionForm(s.q.Forms()[i])
	s.qform = &qf
	return qf.Init()
}

func (s *QuestionnaireScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.q = msg.q
		return s, s.show(0)

	case components.AnswerMsg:
		if s.qform == nil || msg.Form != s.qform.Form() {
			return s, nil
		}
		if s.index < len(s.q.Forms())-1 {
			return s, s.show(s.index + 1)
		}
		rs, err := s.q.Responses()
		if err != nil {
			s.errMsg = err.Error()
			return s, s.show(s.index)
		}
		s.submitting = true
		ctx, q := s.ctx, s.q
		return s, func() tea.Msg {
			a, err := q.Analyze(ctx, rs)
			return submittedMsg{assessment: a, err: err}
		}

	case submittedMsg:
		s.submitting = false
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			s.q.Reopen()
			return s, s.show(s.index)
		}
		next := s.analysisFactory(msg.assessment)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case tea.KeyMsg:
		if s.submitting {
			return s, nil
		}
		if s.q == nil {
			if msg.String() == "r" {
				s.errMsg = ""
				return s, s.load()
			}
			return s, nil
		}
		if msg.String() == "shift+tab" && s.index > 0 {
			s.q.Forms()[s.index-1].Reopen()
			return s, s.show(s.index - 1)
		}
	}

	if s.qform != nil {
		qf, cmd := s.qform.Update(msg)
		s.qform = &qf
		return s, cmd
	}
	return s, nil
}

func (s *QuestionnaireScreen) View(width, height int) string {
	if s.q == nil {
		if s.errMsg != "" {
			return lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.Error).
				Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press R to retry or Esc to go back.", s.errMsg))
		}
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("\n\n\n  Loading %s questions...", s.bodyPart))
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %s  ·  %d of %d", strings.ToUpper(s.q.BodyPart()), s.index+1, len(s.q.Forms()))))
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

	if s.submitting {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("    Analysing your answers..."))
	}
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.errMsg + "\nPress Enter to try again."))
	}
	return b.String()
}
