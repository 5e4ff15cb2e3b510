package questionnaire

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/courtside/internal/api"
	"github.com/abhisek/courtside/internal/intake"
	"github.com/abhisek/courtside/internal/question"
)

func ankleQuestions() []question.Question {
	return []question.Question{
		{Type: question.TypeChoice, Question: "Which side hurts?", Options: []string{"Inner", "Outer"}},
		{Type: question.TypeMultiple, Question: "Symptoms?", Options: []string{"Swelling", "Bruising", "Instability"}},
		{Type: question.TypeScale, Question: "Pain level?"},
		{Type: question.TypeText, Question: "How did it happen?"},
	}
}

func TestLoadAndSubmit(t *testing.T) {
	mock := &api.MockClient{}
	mock.AddQuestions(api.MockReply{Questions: ankleQuestions()})
	mock.AddAnalysis(api.MockReply{Analysis: &question.Analysis{
		Diagnosis: "Lateral ankle sprain",
		Doctors:   []question.Doctor{{Name: "Dr. Reyes", Specialty: "Sports medicine", Location: "Austin", Contact: "555-0101"}},
	}})
	ctx := context.Background()

	q, err := Load(ctx, mock, "ankle")
	require.NoError(t, err)
	require.Len(t, q.Forms(), 4)
	assert.False(t, q.Complete())

	forms := q.Forms()
	forms[0].Select(1)
	forms[1].Toggle(2)
	forms[1].Toggle(0)
	forms[3].SetText("rolled it on a rebound")
	assert.True(t, q.Complete())

	a, err := q.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Lateral ankle sprain", a.Diagnosis)
	assert.Len(t, a.Doctors, 1)

	sent := mock.LastCall().Answers
	require.Len(t, sent, 4)
	assert.Equal(t, "Outer", sent[0].Answer)
	assert.Equal(t, "Swelling, Instability", sent[1].Answer)
	assert.Equal(t, "5", sent[2].Answer)
	assert.Equal(t, "rolled it on a rebound", sent[3].Answer)
	for _, r := range sent {
		assert.Equal(t, "ankle", r.BodyPart)
	}
	assert.Equal(t, question.TypeMultiple, sent[1].Type)
}

func TestLoad_RequiresBodyPart(t *testing.T) {
	_, err := Load(context.Background(), &api.MockClient{}, "")
	assert.ErrorIs(t, err, intake.ErrNoBodyPart)
}

func TestLoad_FailsClosed(t *testing.T) {
	mock := &api.MockClient{}
	mock.AddQuestions(api.MockReply{Questions: []question.Question{
		{Type: question.TypeChoice, Question: "Side?"},
	}})

	_, err := Load(context.Background(), mock, "knee")
	assert.True(t, errors.Is(err, question.ErrSchemaMismatch))
}

func TestSubmit_Unanswered(t *testing.T) {
	mock := &api.MockClient{}
	mock.AddQuestions(api.MockReply{Questions: ankleQuestions()})

	q, err := Load(context.Background(), mock, "ankle")
	require.NoError(t, err)

	_, err = q.Submit(context.Background())
	assert.ErrorIs(t, err, ErrUnanswered)
	assert.Equal(t, 1, mock.CallCount(), "analysis must not be requested")
}

func TestSubmit_TransportFailureKeepsAnswers(t *testing.T) {
	mock := &api.MockClient{}
	mock.AddQuestions(api.MockReply{Questions: ankleQuestions()[2:]})
	mock.AddAnalysis(api.MockReply{Err: &api.TransportError{Endpoint: api.PathAnalyze, Status: 500, Err: errors.New("boom")}})
	mock.AddAnalysis(api.MockReply{Analysis: &question.Analysis{Diagnosis: "Sprain"}})
	ctx := context.Background()

	q, err := Load(ctx, mock, "ankle")
	require.NoError(t, err)
	q.Forms()[0].SetScale(8)
	q.Forms()[1].SetText("landed on a foot")

	_, err = q.Submit(ctx)
	require.Error(t, err)
	assert.True(t, api.IsTransport(err))
	assert.False(t, q.Forms()[0].Submitted())

	a, err := q.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sprain", a.Diagnosis)
	assert.Equal(t, "8", mock.LastCall().Answers[0].Answer)
}
