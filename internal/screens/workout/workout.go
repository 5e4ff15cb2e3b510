// Package workout is the motion-assessment view: it boots the engine
// behind a camera permission check, runs assessments on demand and shows
// a rolling log of engine events.
package workout

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/courtside/internal/assessment"
	"github.com/abhisek/courtside/internal/router"
	"github.com/abhisek/courtside/internal/screen"
	"github.com/abhisek/courtside/internal/ui/layout"
	"github.com/abhisek/courtside/internal/ui/theme"
)

type bootMsg struct {
	status assessment.Status
}

type eventMsg struct {
	sub   *assessment.Subscription
	event assessment.Event
}

type runDoneMsg struct {
	summary assessment.Summary
	err     error
}

// WorkoutScreen hosts one engine subscription for its lifetime.
type WorkoutScreen struct {
	engine assessment.Engine
	perm   assessment.Permission
	key    string

	ctx    context.Context
	cancel context.CancelFunc

	sub    *assessment.Subscription
	status assessment.Status
	log    *assessment.Log
	busy   bool
}

var _ screen.Screen = (*WorkoutScreen)(nil)
var _ screen.KeyHintProvider = (*WorkoutScreen)(nil)
var _ screen.Closer = (*WorkoutScreen)(nil)

// New creates a workout screen. perm may be nil to skip the permission step.
func New(engine assessment.Engine, perm assessment.Permission, key string) *WorkoutScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkoutScreen{
		engine: engine,
		perm:   perm,
		key:    key,
		ctx:    ctx,
		cancel: cancel,
		log:    assessment.NewLog(),
	}
}

// Status returns the boot status.
func (s *WorkoutScreen) Status() assessment.Status { return s.status }

// Log returns the assessment log.
func (s *WorkoutScreen) Log() *assessment.Log { return s.log }

func (s *WorkoutScreen) Init() tea.Cmd {
	s.sub = s.engine.Events().Subscribe()
	return tea.Batch(s.boot(), waitEvent(s.sub))
}

func (s *WorkoutScreen) Title() string {
	return "Rehab Workout"
}

func (s *WorkoutScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{}
	if s.status.State == assessment.BootOK && !s.busy {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Start assessment"})
	}
	return append(hints,
		layout.KeyHint{Key: "R", Description: "Restart"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

// Close releases the event subscription and cancels any running boot or
// assessment.
func (s *WorkoutScreen) Close() {
	s.cancel()
	if s.sub != nil {
		s.sub.Close()
	}
}

func (s *WorkoutScreen) boot() tea.Cmd {
	ctx, perm, engine, key := s.ctx, s.perm, s.engine, s.key
	return func() tea.Msg {
		return bootMsg{status: assessment.BootCheck(ctx, perm, engine, key)}
	}
}

func waitEvent(sub *assessment.Subscription) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-sub.C()
		if !ok {
			return nil
		}
		return eventMsg{sub: sub, event: e}
	}
}

func (s *WorkoutScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case bootMsg:
		s.status = msg.status
		s.log.Add(msg.status.Message())
		return s, nil

	case eventMsg:
		if msg.sub != s.sub {
			return s, nil
		}
		s.log.Add(msg.event.String())
		return s, waitEvent(s.sub)

	case runDoneMsg:
		s.busy = false
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if s.status.State != assessment.BootOK || s.busy {
				return s, nil
			}
			s.busy = true
			ctx, engine, log := s.ctx, s.engine, s.log
			return s, func() tea.Msg {
				sum, err := assessment.Run(ctx, engine, assessment.KindFitness, log)
				return runDoneMsg{summary: sum, err: err}
			}
		case "r":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

func (s *WorkoutScreen) View(width, height int) string {
	var b strings.Builder

	color := theme.TextDim
	switch s.status.State {
	case assessment.BootOK:
		color = theme.Success
	case assessment.BootFail:
		color = theme.Error
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(color).
		Bold(true).
		Render(s.status.Message()))
	b.WriteString("\n\n")

	switch {
	case s.busy:
		b.WriteString(theme.Hint.Render("    Assessment running..."))
	case s.status.State == assessment.BootOK:
		b.WriteString(theme.ButtonActive.Render("▸ Start fitness assessment "))
	}
	b.WriteString("\n\n")

	lines := s.log.Lines()
	room := height - 6
	if room < 1 {
		room = 1
	}
	if len(lines) > room {
		lines = lines[len(lines)-room:]
	}
	logStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	for _, l := range lines {
		b.WriteString(logStyle.Render("    " + l))
		b.WriteString("\n")
	}

	return b.String()
}
