// Package form binds one question to its captured input and submission
// callback. Renderers draw a Form; they never validate or encode.
package form

import (
	"errors"

	"github.com/abhisek/courtside/internal/answer"
	"github.com/abhisek/courtside/internal/question"
)

// ErrAlreadySubmitted is returned by Submit once the form has produced its answer.
var ErrAlreadySubmitted = errors.New("form already submitted")

// Renderer draws a form. Implementations must be deterministic: the same
// form state renders to the same bytes.
type Renderer interface {
	Render(f *Form) (string, error)
}

// Form is the live input surface for one question.
type Form struct {
	q         question.Question
	st        answer.State
	onAnswer  func(string)
	submitted bool
	last      string
}

// New creates a form for q. Questions that cannot be rendered (diagnosis
// payloads, unknown types, missing fields) are refused with their schema error.
func New(q question.Question, onAnswer func(string)) (*Form, error) {
	if q.IsDiagnosis() {
		return nil, &question.SchemaError{Type: q.Type, Field: "type", Reason: "diagnosis is not renderable"}
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return &Form{q: q, onAnswer: onAnswer}, nil
}

// Question returns the bound question.
func (f *Form) Question() question.Question { return f.q }

// State returns a copy of the captured input.
func (f *Form) State() answer.State {
	st := f.st
	st.Selected = append([]int(nil), f.st.Selected...)
	return st
}

// Submitted reports whether a submission is outstanding.
func (f *Form) Submitted() bool { return f.submitted }

// Answer returns the last encoded answer, empty before the first submit.
func (f *Form) Answer() string { return f.last }

// SetText replaces the free-text input.
func (f *Form) SetText(s string) {
	if f.submitted {
		return
	}
	f.st.Text = s
}

// Select makes option i the single selection.
func (f *Form) Select(i int) {
	if f.submitted || i < 0 || i >= len(f.q.Options) {
		return
	}
	f.st.Selected = []int{i}
}

// Toggle flips option i in a multiple-choice selection.
func (f *Form) Toggle(i int) {
	if f.submitted || i < 0 || i >= len(f.q.Options) {
		return
	}
	for n, v := range f.st.Selected {
		if v == i {
			f.st.Selected = append(f.st.Selected[:n], f.st.Selected[n+1:]...)
			return
		}
	}
	f.st.Selected = append(f.st.Selected, i)
}

// SetScale sets the scale value, clamped to the scale domain.
func (f *Form) SetScale(v int) {
	if f.submitted {
		return
	}
	f.st.Scale = clamp(v)
}

// Step moves the scale value by delta from its effective value.
func (f *Form) Step(delta int) {
	if f.submitted {
		return
	}
	f.st.Scale = clamp(f.st.ScaleValue() + delta)
}

// Submittable reports whether Submit would succeed.
func (f *Form) Submittable() bool {
	return !f.submitted && answer.Valid(f.q, f.st)
}

// Submit encodes the captured input and hands it to the callback. It runs
// the callback at most once until Reopen is called.
func (f *Form) Submit() (string, error) {
	if f.submitted {
		return "", ErrAlreadySubmitted
	}
	a, err := answer.Encode(f.q, f.st)
	if err != nil {
		return "", err
	}
	f.submitted = true
	f.last = a
	if f.onAnswer != nil {
		f.onAnswer(a)
	}
	return a, nil
}

// Reopen re-arms the form after its answer failed to reach the server.
// The captured input is kept so the user can retry as-is.
func (f *Form) Reopen() {
	f.submitted = false
}

func clamp(v int) int {
	if v < answer.ScaleMin {
		return answer.ScaleMin
	}
	if v > answer.ScaleMax {
		return answer.ScaleMax
	}
	return v
}
