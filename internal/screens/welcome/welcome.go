// Package welcome is the splash shown at launch.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/courtside/internal/router"
	"github.com/abhisek/courtside/internal/screen"
	"github.com/abhisek/courtside/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bounceEnd    = 1200 * time.Millisecond
	totalDur     = 2000 * time.Millisecond
)

const ballArt = ` .-""-.
/ \  / \
|--()--|
\ /  \ /
 '-..-'`

// bounceHeights is the ball's lift above the floor line per tick.
var bounceHeights = []int{4, 3, 1, 0, 1, 2, 2, 1, 0, 1, 0, 0}

type tickMsg time.Time

// WelcomeScreen bounces a ball, shows the banner and then waits for a key.
// Any key skips ahead to the next screen.
type WelcomeScreen struct {
	nextFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with nextFactory().
func New(nextFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{nextFactory: nextFactory}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned || w.elapsed >= totalDur {
			return w, nil
		}
		w.elapsed += tickInterval
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.nextFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) lift() int {
	if w.tickCount >= len(bounceHeights) {
		return 0
	}
	return bounceHeights[w.tickCount]
}

func (w *WelcomeScreen) View(width, height int) string {
	ball := lipgloss.NewStyle().Foreground(theme.Accent).Render(ballArt)
	floor := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", 16))

	sections := []string{ball + strings.Repeat("\n", w.lift()+1) + floor}

	if w.elapsed >= bounceEnd {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Get back on the court."),
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Triage support only. See a clinician for medical advice."),
		)
	}

	if w.elapsed >= totalDur {
		sections = append(sections,
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to continue"),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
