package interview

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/courtside/internal/api"
	drv "github.com/abhisek/courtside/internal/interview"
	"github.com/abhisek/courtside/internal/question"
	"github.com/abhisek/courtside/internal/result"
	"github.com/abhisek/courtside/internal/router"
	"github.com/abhisek/courtside/internal/screen"
	"github.com/abhisek/courtside/internal/ui/components"
)

type stubScreen struct{ a result.Assessment }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "analysis" }
func (s *stubScreen) Title() string                           { return "Analysis" }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func choice(prompt string, opts ...string) api.MockReply {
	return api.MockReply{Chat: &question.ChatResponse{Content: question.Question{Type: question.TypeObjective, Question: prompt, Options: opts}}}
}

func diagnosis(done bool, injuries []string, conf []float64) api.MockReply {
	return api.MockReply{Chat: &question.ChatResponse{
		Content: question.Question{Type: question.TypeDiagnosis, Injuries: injuries, Confidence: conf},
		Done:    done,
	}}
}

func newTestScreen(replies ...api.MockReply) (*InterviewScreen, *api.MockClient, *[]result.Assessment) {
	mock := api.NewMockClient(replies...)
	var got []result.Assessment
	s := New(drv.New(mock), "knee", func(a result.Assessment) screen.Screen {
		got = append(got, a)
		return &stubScreen{a: a}
	})
	return s, mock, &got
}

// deliver runs a send command synchronously and applies its reply.
func deliver(t *testing.T, s *InterviewScreen, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	_, ok := msg.(replyMsg)
	require.True(t, ok, "expected replyMsg, got %T", msg)
	_, next := s.Update(msg)
	return next
}

// answer submits the option at index i of a choice question.
func answer(t *testing.T, s *InterviewScreen, i int) tea.Cmd {
	t.Helper()
	s.Update(keyPress(rune('1' + i)))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	msg := cmd()
	am, ok := msg.(components.AnswerMsg)
	require.True(t, ok, "expected AnswerMsg, got %T", msg)
	_, send := s.Update(am)
	return send
}

func TestInterviewQuestionLoop(t *testing.T) {
	s, mock, got := newTestScreen(
		choice("Any swelling?", "Yes", "No"),
		diagnosis(true, []string{"Meniscus tear"}, []float64{0.7}),
	)

	assert.Contains(t, s.View(80, 24), "Starting knee interview")
	deliver(t, s, s.Init())
	assert.Equal(t, drv.AwaitingAnswer, s.driver.State())
	assert.Contains(t, s.View(80, 24), "Any swelling?")

	next := deliver(t, s, answer(t, s, 1))
	require.NotNil(t, next)
	replace, ok := next().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Analysis", replace.Screen.Title())

	require.Len(t, *got, 1)
	assert.False(t, (*got)[0].EarlyExit)
	assert.Equal(t, "Meniscus tear (70%)", (*got)[0].Findings[0].Label())
	assert.Equal(t, "No", mock.LastCall().Chat.UserInput)
}

func TestInterviewEarlyExit(t *testing.T) {
	s, _, got := newTestScreen(
		choice("Any swelling?", "Yes", "No"),
		diagnosis(false, []string{"Sprain"}, []float64{0.5}),
	)
	deliver(t, s, s.Init())
	next := deliver(t, s, answer(t, s, 0))
	require.NotNil(t, next)
	_, ok := next().(router.ReplaceScreenMsg)
	require.True(t, ok)
	require.Len(t, *got, 1)
	assert.True(t, (*got)[0].EarlyExit)
}

func TestInterviewTransportErrorIsRetryable(t *testing.T) {
	s, mock, _ := newTestScreen(
		choice("Any swelling?", "Yes", "No"),
		api.MockReply{Err: &api.TransportError{Endpoint: api.PathNext, Status: 502}},
		choice("Does it click?", "Yes", "No"),
	)
	deliver(t, s, s.Init())
	deliver(t, s, answer(t, s, 0))

	assert.Equal(t, drv.AwaitingAnswer, s.driver.State())
	assert.Len(t, s.driver.Session().History, 1)
	assert.Contains(t, s.View(80, 24), "502")
	assert.False(t, s.qform.Form().Submitted())

	// The captured answer is kept; Enter resends it.
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	_, send := s.Update(cmd())
	deliver(t, s, send)
	assert.Equal(t, "Yes", mock.LastCall().Chat.UserInput)
	assert.Contains(t, s.View(80, 24), "Does it click?")
	assert.Empty(t, s.errMsg)
}

func TestInterviewStartFailureRetry(t *testing.T) {
	s, _, _ := newTestScreen(
		api.MockReply{Err: errors.New("connection refused")},
		choice("Any swelling?", "Yes", "No"),
	)
	deliver(t, s, s.Init())
	assert.Nil(t, s.qform)
	assert.Contains(t, s.View(80, 24), "connection refused")

	_, cmd := s.Update(keyPress('r'))
	deliver(t, s, cmd)
	require.NotNil(t, s.qform)
	assert.Contains(t, s.View(80, 24), "Any swelling?")
}

func TestInterviewSchemaDefectView(t *testing.T) {
	s, _, _ := newTestScreen(
		api.MockReply{Chat: &question.ChatResponse{Content: question.Question{Type: "slider", Question: "Rate"}}},
	)
	deliver(t, s, s.Init())
	require.Error(t, s.defect)
	assert.ErrorIs(t, s.defect, question.ErrSchemaMismatch)
	assert.Contains(t, s.View(80, 24), "cannot show")
	assert.Nil(t, s.qform)
}

func TestInterviewCloseDropsLateReply(t *testing.T) {
	s, _, got := newTestScreen(diagnosis(true, []string{"Sprain"}, []float64{0.5}))
	cmd := s.Init()
	msg := cmd()

	s.Close()
	_, next := s.Update(msg)
	assert.Nil(t, next)
	assert.Empty(t, *got)
}

func TestInterviewIgnoresOtherDriversReplies(t *testing.T) {
	s, _, _ := newTestScreen(choice("Any swelling?", "Yes", "No"))
	other, _, _ := newTestScreen(choice("Other?", "A"))

	msg := other.Init()()
	_, cmd := s.Update(msg)
	assert.Nil(t, cmd)
	assert.Nil(t, s.qform)
}

func TestInterviewKeysIgnoredWhileBusy(t *testing.T) {
	s, _, _ := newTestScreen(choice("Any swelling?", "Yes", "No"))
	cmd := s.Init()
	require.True(t, s.driver.Busy())

	_, c := s.Update(keyPress('r'))
	assert.Nil(t, c)
	deliver(t, s, cmd)
	assert.False(t, s.driver.Busy())
}
