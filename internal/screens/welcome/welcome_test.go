package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/courtside/internal/router"
	"github.com/abhisek/courtside/internal/screen"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "intake" }
func (s *stubScreen) Title() string                           { return "Intake" }

func newTestWelcome() (*WelcomeScreen, *int) {
	calls := 0
	return New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestBannerAppearsAfterBounce(t *testing.T) {
	w, _ := newTestWelcome()
	assert.NotContains(t, w.View(100, 30), "Get back on the court")

	sendTicks(w, 12)
	assert.Equal(t, bounceEnd, w.elapsed)
	view := w.View(100, 30)
	assert.Contains(t, view, "Get back on the court")
	assert.NotContains(t, view, "press any key")

	sendTicks(w, 8)
	assert.Contains(t, w.View(100, 30), "press any key")
}

func TestTicksStopAtTotal(t *testing.T) {
	w, calls := newTestWelcome()
	cmd := sendTicks(w, 30)
	assert.Nil(t, cmd)
	assert.Equal(t, totalDur, w.elapsed)
	assert.Equal(t, 0, *calls, "no transition without a key")
}

func TestKeypressSkipsAnimation(t *testing.T) {
	w, calls := newTestWelcome()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	require.NotNil(t, cmd)
	replace, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Intake", replace.Screen.Title())
	assert.Equal(t, 1, *calls)
}

func TestFactoryCalledOnce(t *testing.T) {
	w, calls := newTestWelcome()
	w.Update(tea.KeyPressMsg{Code: 'a'})
	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, *calls)
}

func TestCompactBanner(t *testing.T) {
	assert.Contains(t, RenderBanner(40), "C O U R T S I D E")
	assert.True(t, strings.Contains(RenderBanner(100), "___"))
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newTestWelcome()
	assert.Empty(t, w.Title())
}
