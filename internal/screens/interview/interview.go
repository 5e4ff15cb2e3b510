// Package interview is the terminal screen for the adaptive interview. It
// owns one driver for its lifetime and abandons it on close.
package interview

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/courtside/internal/form"
	drv "github.com/abhisek/courtside/internal/interview"
	"github.com/abhisek/courtside/internal/question"
	"github.com/abhisek/courtside/internal/result"
	"github.com/abhisek/courtside/internal/router"
	"github.com/abhisek/courtside/internal/screen"
	"github.com/abhisek/courtside/internal/ui/components"
	"github.com/abhisek/courtside/internal/ui/layout"
)

// InterviewScreen asks the server-driven questions one at a time.
type InterviewScreen struct {
	driver          *drv.Driver
	seed            string
	analysisFactory func(result.Assessment) screen.Screen

	ctx    context.Context
	cancel context.CancelFunc

	qform  *components.QuestionForm
	errMsg string
	defect error
}

var _ screen.Screen = (*InterviewScreen)(nil)
var _ screen.KeyHintProvider = (*InterviewScreen)(nil)
var _ screen.Closer = (*InterviewScreen)(nil)

// New creates an interview screen that starts d with seed. analysisFactory
// builds the screen that replaces this one once a diagnosis arrives.
func New(d *drv.Driver, seed string, analysisFactory func(result.Assessment) screen.Screen) *InterviewScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &InterviewScreen{
		driver:          d,
		seed:            seed,
		analysisFactory: analysisFactory,
		ctx:             ctx,
		cancel:          cancel,
	}
}

// Driver returns the screen's interview driver.
func (s *InterviewScreen) Driver() *drv.Driver { return s.driver }

func (s *InterviewScreen) Init() tea.Cmd {
	return s.start()
}

func (s *InterviewScreen) Title() string {
	return "Injury Interview"
}

func (s *InterviewScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.defect != nil || (s.qform == nil && s.errMsg != ""):
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	case s.qform == nil:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}

	hints := []layout.KeyHint{{Key: "Enter", Description: "Submit"}}
	switch t := s.qform.Form().Question().Type; {
	case t == question.TypeScale:
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Adjust"})
	case t.HasOptions():
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: "Move"},
			layout.KeyHint{Key: "Space", Description: "Pick"},
		)
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit interview"})
}

// Close abandons the interview. A reply still in flight is discarded.
func (s *InterviewScreen) Close() {
	s.cancel()
	s.driver.Abandon()
}

func (s *InterviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		if msg.driver != s.driver {
			return s, nil
		}
		return s.handleReply(msg.reply)

	case components.AnswerMsg:
		return s.handleAnswer(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.qform != nil {
		qf, cmd := s.qform.Update(msg)
		s.qform = &qf
		return s, cmd
	}
	return s, nil
}

func (s *InterviewScreen) start() tea.Cmd {
	t, err := s.driver.PrepareStart(s.seed)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return s.send(t)
}

func (s *InterviewScreen) send(t *drv.Turn) tea.Cmd {
	d, ctx := s.driver, s.ctx
	return func() tea.Msg {
		return replyMsg{driver: d, reply: t.Send(ctx)}
	}
}

func (s *InterviewScreen) handleReply(r drv.Reply) (screen.Screen, tea.Cmd) {
	out, err := s.driver.Complete(s.ctx, r)
	switch {
	case errors.Is(err, drv.ErrAbandoned), errors.Is(err, drv.ErrStaleReply):
		return s, nil
	case errors.Is(err, question.ErrSchemaMismatch):
		s.defect = err
		s.reopen()
		return s, nil
	case err != nil:
		s.errMsg = err.Error()
		s.reopen()
		return s, nil
	}

	s.errMsg = ""
	s.defect = nil

	switch out.State {
	case drv.Terminal:
		a, err := result.FromDiagnosis(out.Diagnosis.Injuries, out.Diagnosis.Confidence)
		if err != nil {
			s.defect = err
			return s, nil
		}
		a.EarlyExit = out.Diagnosis.EarlyExit
		next := s.analysisFactory(a)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case drv.AwaitingAnswer:
		f, err := form.New(*out.Question, nil)
		if err != nil {
			s.defect = err
			return s, nil
		}
		qf := components.NewQuestionForm(f)
		s.qform = &qf
		return s, qf.Init()
	}
	return s, nil
}

func (s *InterviewScreen) handleAnswer(msg components.AnswerMsg) (screen.Screen, tea.Cmd) {
	if s.qform == nil || msg.Form != s.qform.Form() {
		return s, nil
	}
	t, err := s.driver.Prepare(msg.Answer)
	if err != nil {
		s.errMsg = err.Error()
		s.reopen()
		return s, nil
	}
	s.errMsg = ""
	return s, s.send(t)
}

func (s *InterviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.driver.Busy() {
		return s, nil
	}

	if s.defect != nil {
		if msg.String() == "r" {
			s.defect = nil
			if s.qform == nil {
				return s, s.start()
			}
		}
		return s, nil
	}

	if s.qform == nil {
		if msg.String() == "r" {
			s.errMsg = ""
			return s, s.start()
		}
		return s, nil
	}

	qf, cmd := s.qform.Update(msg)
	s.qform = &qf
	return s, cmd
}

// reopen lets the user edit and resend the current answer.
func (s *InterviewScreen) reopen() {
	if s.qform != nil {
		s.qform.Form().Reopen()
	}
}

func (s *InterviewScreen) View(width, height int) string {
	switch {
	case s.defect != nil:
		return renderDefect(width, s.defect)
	case s.qform == nil && s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.qform == nil:
		return renderLoading(width, fmt.Sprintf("Starting %s interview...", s.seed))
	}
	return s.renderQuestion(width, height)
}
