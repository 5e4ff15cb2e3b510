package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/courtside/internal/form"
	"github.com/abhisek/courtside/internal/question"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newForm(t *testing.T, q question.Question) *form.Form {
	t.Helper()
	f, err := form.New(q, nil)
	require.NoError(t, err)
	return f
}

func press(qf QuestionForm, keys ...tea.Msg) (QuestionForm, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		qf, cmd = qf.Update(k)
	}
	return qf, cmd
}

func TestQuestionForm_TextSubmit(t *testing.T) {
	qf := NewQuestionForm(newForm(t, question.Question{Type: question.TypeSubjective, Question: "Where does it hurt?"}))

	qf, cmd := press(qf, specialKey(tea.KeyEnter))
	assert.Nil(t, cmd, "blank answer must not submit")

	qf, cmd = press(qf, keyPress('s'), keyPress('h'), keyPress('i'), keyPress('n'), specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	msg, ok := cmd().(AnswerMsg)
	require.True(t, ok)
	assert.Equal(t, "shin", msg.Answer)
	assert.Same(t, qf.Form(), msg.Form)

	_, cmd = press(qf, specialKey(tea.KeyEnter))
	assert.Nil(t, cmd, "a form submits once")
}

func TestQuestionForm_ChoiceRequiresSelection(t *testing.T) {
	qf := NewQuestionForm(newForm(t, question.Question{Type: question.TypeObjective, Question: "Swelling?", Options: []string{"Yes", "No"}}))

	qf, cmd := press(qf, specialKey(tea.KeyDown), specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, qf.Cursor())

	qf, cmd = press(qf, specialKey(tea.KeySpace), specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, "No", cmd().(AnswerMsg).Answer)
}

func TestQuestionForm_NumberKeys(t *testing.T) {
	qf := NewQuestionForm(newForm(t, question.Question{Type: question.TypeMultiple, Question: "Symptoms?", Options: []string{"A", "B", "C"}}))

	qf, cmd := press(qf, keyPress('3'), keyPress('1'), keyPress('9'), specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, "A, C", cmd().(AnswerMsg).Answer)
	assert.Equal(t, 0, qf.Cursor())
}

func TestQuestionForm_MultipleEmptyBlocked(t *testing.T) {
	qf := NewQuestionForm(newForm(t, question.Question{Type: question.TypeMultiple, Question: "Symptoms?", Options: []string{"A", "B"}}))

	_, cmd := press(qf, keyPress('1'), keyPress('1'), specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
}

func TestQuestionForm_Scale(t *testing.T) {
	qf := NewQuestionForm(newForm(t, question.Question{Type: question.TypeScale, Question: "Pain?"}))

	_, cmd := press(qf, specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, "5", cmd().(AnswerMsg).Answer)

	qf = NewQuestionForm(newForm(t, question.Question{Type: question.TypeScale, Question: "Pain?"}))
	_, cmd = press(qf, specialKey(tea.KeyRight), specialKey(tea.KeyRight), specialKey(tea.KeyEnter))
	assert.Equal(t, "7", cmd().(AnswerMsg).Answer)

	qf = NewQuestionForm(newForm(t, question.Question{Type: question.TypeScale, Question: "Pain?"}))
	_, cmd = press(qf, keyPress('0'), specialKey(tea.KeyEnter))
	assert.Equal(t, "10", cmd().(AnswerMsg).Answer)
}

func TestTerminalRenderer_Deterministic(t *testing.T) {
	f := newForm(t, question.Question{Type: question.TypeChoice, Question: "Side?", Options: []string{"Left", "Right"}})
	r := TerminalRenderer{Width: 80}

	first, err := r.Render(f)
	require.NoError(t, err)
	second, err := r.Render(f)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Contains(t, first, "Side?")
	assert.Contains(t, first, "Left")
	assert.Contains(t, first, "Answer to continue")

	f.Select(1)
	third, err := r.Render(f)
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
	assert.Contains(t, third, "(•)")
}

func TestTerminalRenderer_Scale(t *testing.T) {
	f := newForm(t, question.Question{Type: question.TypeScale, Question: "Pain?"})
	s, err := TerminalRenderer{}.Render(f)
	require.NoError(t, err)
	assert.Contains(t, s, "Pain?")
	assert.Contains(t, s, "●")
	assert.Contains(t, s, "Submit")
}
