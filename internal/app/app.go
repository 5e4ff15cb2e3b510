// Package app assembles the terminal UI: it wires the screens together
// and hosts the router inside a Bubble Tea program.
package app

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/courtside/internal/api"
	"github.com/abhisek/courtside/internal/assessment"
	"github.com/abhisek/courtside/internal/intake"
	"github.com/abhisek/courtside/internal/interview"
	"github.com/abhisek/courtside/internal/result"
	"github.com/abhisek/courtside/internal/router"
	"github.com/abhisek/courtside/internal/screen"
	"github.com/abhisek/courtside/internal/screens/analysis"
	intakescreen "github.com/abhisek/courtside/internal/screens/intake"
	interviewscreen "github.com/abhisek/courtside/internal/screens/interview"
	questionnairescreen "github.com/abhisek/courtside/internal/screens/questionnaire"
	"github.com/abhisek/courtside/internal/screens/welcome"
	"github.com/abhisek/courtside/internal/screens/workout"
	"github.com/abhisek/courtside/internal/ui/layout"
)

// Options holds the dependencies of the terminal UI.
type Options struct {
	Client     api.Client
	Engine     assessment.Engine     // nil disables the workout view
	Permission assessment.Permission // nil skips the permission step
	SDKKey     string
	Defects    interview.DefectReporter
	Logger     *slog.Logger
	ServerURL  string // shown in the header
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	status string
	width  int
	height int
}

// newAppModel wires the screen graph: welcome -> intake -> interview or
// questionnaire -> analysis -> workout.
func newAppModel(opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var workoutFactory func() screen.Screen
	if opts.Engine != nil {
		workoutFactory = func() screen.Screen {
			return workout.New(opts.Engine, opts.Permission, opts.SDKKey)
		}
	}

	analysisFactory := func(a result.Assessment) screen.Screen {
		return analysis.New(a, workoutFactory)
	}

	interviewFactory := func(seed string) screen.Screen {
		ivOpts := []interview.Option{interview.WithLogger(logger)}
		if opts.Defects != nil {
			ivOpts = append(ivOpts, interview.WithDefectReporter(opts.Defects))
		}
		return interviewscreen.New(interview.New(opts.Client, ivOpts...), seed, analysisFactory)
	}

	questionnaireFactory := func(bodyPart string) screen.Screen {
		return questionnairescreen.New(opts.Client, bodyPart, analysisFactory)
	}

	intakeFactory := func() screen.Screen {
		return intakescreen.New(intake.DefaultParts, interviewFactory, questionnaireFactory)
	}

	var root screen.Screen
	if opts.SkipSplash {
		root = intakeFactory()
	} else {
		root = welcome.New(intakeFactory)
	}

	return AppModel{
		router: router.New(root),
		status: hostOf(opts.ServerURL),
	}
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.CloseAll()
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.frame())
	return v
}

// frame renders header, active screen and footer at the current size.
func (m AppModel) frame() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Any key", Description: "Continue"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
