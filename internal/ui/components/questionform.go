package components

import (
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/courtside/internal/form"
	"github.com/abhisek/courtside/internal/question"
)

// AnswerMsg is emitted once a QuestionForm has produced its answer.
type AnswerMsg struct {
	Form   *form.Form
	Answer string
}

// QuestionForm is the keyboard front end of a form.Form. It only moves
// input into the form; encoding and validation stay with the form.
type QuestionForm struct {
	form   *form.Form
	input  TextInput
	cursor int
}

// NewQuestionForm creates a terminal form for f.
func NewQuestionForm(f *form.Form) QuestionForm {
	qf := QuestionForm{form: f}
	if isText(f.Question().Type) {
		qf.input = NewTextInput("Type your answer...", 500)
		qf.input.SetValue(f.State().Text)
	}
	return qf
}

// Form returns the bound form.
func (q QuestionForm) Form() *form.Form { return q.form }

// Cursor returns the highlighted option index.
func (q QuestionForm) Cursor() int { return q.cursor }

// Init focuses the text input for text questions.
func (q QuestionForm) Init() tea.Cmd {
	if isText(q.form.Question().Type) {
		return q.input.Init()
	}
	return nil
}

// Update applies one key to the form.
func (q QuestionForm) Update(msg tea.Msg) (QuestionForm, tea.Cmd) {
	if q.form.Submitted() {
		return q, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if isText(q.form.Question().Type) {
			var cmd tea.Cmd
			q.input, cmd = q.input.Update(msg)
			return q, cmd
		}
		return q, nil
	}

	key := kmsg.String()
	if key == "enter" {
		return q.submit()
	}

	t := q.form.Question().Type
	switch {
	case isText(t):
		var cmd tea.Cmd
		q.input, cmd = q.input.Update(msg)
		q.form.SetText(q.input.Value())
		return q, cmd

	case t == question.TypeScale:
		switch key {
		case "left", "h", "-":
			q.form.Step(-1)
		case "right", "l", "+":
			q.form.Step(1)
		case "0":
			q.form.SetScale(10)
		default:
			if d, ok := digit(key); ok {
				q.form.SetScale(d)
			}
		}

	case t.HasOptions():
		n := len(q.form.Question().Options)
		switch key {
		case "up", "k":
			if q.cursor > 0 {
				q.cursor--
			}
		case "down", "j":
			if q.cursor < n-1 {
				q.cursor++
			}
		case "space", " ":
			q.pick(q.cursor)
		default:
			if d, ok := digit(key); ok && d <= n {
				q.cursor = d - 1
				q.pick(q.cursor)
			}
		}
	}
	return q, nil
}

func (q *QuestionForm) pick(i int) {
	if q.form.Question().Type == question.TypeMultiple {
		q.form.Toggle(i)
		return
	}
	q.form.Select(i)
}

func (q QuestionForm) submit() (QuestionForm, tea.Cmd) {
	if !q.form.Submittable() {
		return q, nil
	}
	f := q.form
	a, err := f.Submit()
	if err != nil {
		return q, nil
	}
	return q, func() tea.Msg { return AnswerMsg{Form: f, Answer: a} }
}

// View renders the form.
func (q QuestionForm) View(width int) string {
	r := TerminalRenderer{Cursor: q.cursor, Width: width}
	if isText(q.form.Question().Type) {
		r.Input = q.input.View()
	}
	s, err := r.Render(q.form)
	if err != nil {
		return err.Error()
	}
	return s
}

func isText(t question.Type) bool {
	return t == question.TypeSubjective || t == question.TypeText
}

func digit(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	d, _ := strconv.Atoi(key)
	return d, true
}
