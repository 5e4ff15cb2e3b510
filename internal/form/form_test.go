package form

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/courtside/internal/question"
)

func TestNew_FailsClosed(t *testing.T) {
	_, err := New(question.Question{Type: question.TypeDiagnosis, Injuries: []string{"x"}, Confidence: []float64{1}}, nil)
	assert.True(t, errors.Is(err, question.ErrSchemaMismatch))

	_, err = New(question.Question{Type: "slider", Question: "?"}, nil)
	assert.True(t, errors.Is(err, question.ErrSchemaMismatch))

	_, err = New(question.Question{Type: question.TypeObjective, Question: "Swelling?"}, nil)
	assert.True(t, errors.Is(err, question.ErrSchemaMismatch))
}

func TestSubmit_ExactlyOnce(t *testing.T) {
	var got []string
	f, err := New(question.Question{Type: question.TypeSubjective, Question: "Where?"}, func(a string) {
		got = append(got, a)
	})
	require.NoError(t, err)

	assert.False(t, f.Submittable())
	_, err = f.Submit()
	require.Error(t, err)
	assert.Empty(t, got)

	f.SetText(" inner knee ")
	assert.True(t, f.Submittable())

	a, err := f.Submit()
	require.NoError(t, err)
	assert.Equal(t, "inner knee", a)

	_, err = f.Submit()
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.Equal(t, []string{"inner knee"}, got)
	assert.False(t, f.Submittable())
}

func TestMutationsIgnoredAfterSubmit(t *testing.T) {
	f, err := New(question.Question{Type: question.TypeChoice, Question: "Side?", Options: []string{"Left", "Right"}}, nil)
	require.NoError(t, err)

	f.Select(1)
	_, err = f.Submit()
	require.NoError(t, err)

	f.Select(0)
	assert.Equal(t, []int{1}, f.State().Selected)
}

func TestReopen_KeepsState(t *testing.T) {
	calls := 0
	f, err := New(question.Question{Type: question.TypeMultiple, Question: "Symptoms?", Options: []string{"A", "B", "C"}}, func(string) { calls++ })
	require.NoError(t, err)

	f.Toggle(2)
	f.Toggle(0)
	a, err := f.Submit()
	require.NoError(t, err)
	assert.Equal(t, "A, C", a)

	f.Reopen()
	assert.True(t, f.Submittable())
	a, err = f.Submit()
	require.NoError(t, err)
	assert.Equal(t, "A, C", a)
	assert.Equal(t, 2, calls)
}

func TestToggle(t *testing.T) {
	f, err := New(question.Question{Type: question.TypeMultiple, Question: "Symptoms?", Options: []string{"A", "B"}}, nil)
	require.NoError(t, err)

	f.Toggle(0)
	f.Toggle(1)
	f.Toggle(0)
	assert.Equal(t, []int{1}, f.State().Selected)

	f.Toggle(1)
	assert.False(t, f.Submittable())

	f.Toggle(5)
	assert.Empty(t, f.State().Selected)
}

func TestScale(t *testing.T) {
	f, err := New(question.Question{Type: question.TypeScale, Question: "Pain?"}, nil)
	require.NoError(t, err)

	assert.True(t, f.Submittable())
	f.Step(1)
	assert.Equal(t, 6, f.State().ScaleValue())
	f.SetScale(42)
	assert.Equal(t, 10, f.State().ScaleValue())
	f.Step(-20)
	assert.Equal(t, 1, f.State().ScaleValue())

	a, err := f.Submit()
	require.NoError(t, err)
	assert.Equal(t, "1", a)
}

func TestState_IsACopy(t *testing.T) {
	f, err := New(question.Question{Type: question.TypeMultiple, Question: "Symptoms?", Options: []string{"A", "B"}}, nil)
	require.NoError(t, err)
	f.Toggle(0)

	st := f.State()
	st.Selected[0] = 1
	assert.Equal(t, []int{0}, f.State().Selected)
}
