package interview

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/courtside/internal/api"
	"github.com/abhisek/courtside/internal/question"
)

func subjective(prompt string) *question.ChatResponse {
	return &question.ChatResponse{Content: question.Question{Type: question.TypeSubjective, Question: prompt}}
}

func objective(prompt string, opts ...string) *question.ChatResponse {
	return &question.ChatResponse{Content: question.Question{Type: question.TypeObjective, Question: prompt, Options: opts}}
}

type defectRecorder struct {
	mu   sync.Mutex
	errs []error
}

func (r *defectRecorder) ReportDefect(_ context.Context, _ string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func TestHistoryGrowsOnePerTurn(t *testing.T) {
	mock := api.NewMockClient(
		api.MockReply{Chat: subjective("Where does it hurt?")},
		api.MockReply{Chat: objective("Any swelling?", "Yes", "No")},
		api.MockReply{Chat: subjective("When did it start?")},
	)
	d := New(mock)
	ctx := context.Background()

	out, err := d.Start(ctx, "knee")
	require.NoError(t, err)
	assert.Equal(t, AwaitingAnswer, out.State)
	assert.Equal(t, "Where does it hurt?", out.Question.Question)
	assert.Len(t, d.Session().History, 1)

	out, err = d.Submit(ctx, "inside of the knee")
	require.NoError(t, err)
	assert.Equal(t, "Any swelling?", out.Question.Question)
	assert.Len(t, d.Session().History, 2)

	out, err = d.Submit(ctx, "Yes")
	require.NoError(t, err)
	assert.Equal(t, "When did it start?", out.Question.Question)

	s := d.Session()
	assert.Equal(t, []string{"knee", "inside of the knee", "Yes"}, s.History)
	assert.Equal(t, "When did it start?", s.Pending.Question)
}

func TestSessionIDReused(t *testing.T) {
	first := subjective("Where?")
	first.SessionID = "srv-42"
	mock := api.NewMockClient(api.MockReply{Chat: first}, api.MockReply{Chat: subjective("When?")})
	d := New(mock)
	ctx := context.Background()

	initial := d.Session().ID
	require.NotEmpty(t, initial)

	_, err := d.Start(ctx, "ankle")
	require.NoError(t, err)
	assert.Equal(t, initial, mock.Calls[0].Chat.SessionID)

	_, err = d.Submit(ctx, "outer side")
	require.NoError(t, err)
	assert.Equal(t, "srv-42", mock.Calls[1].Chat.SessionID)
	assert.Equal(t, "outer side", mock.Calls[1].Chat.UserInput)
	assert.Equal(t, "srv-42", d.Session().ID)
}

func TestEarlyExit(t *testing.T) {
	mock := api.NewMockClient(
		api.MockReply{Chat: subjective("Where?")},
		api.MockReply{Chat: &question.ChatResponse{
			Content: question.Question{Type: question.TypeDiagnosis, Injuries: []string{"ACL strain"}, Confidence: []float64{0.82}},
			Done:    false,
		}},
	)
	d := New(mock)
	ctx := context.Background()

	_, err := d.Start(ctx, "knee")
	require.NoError(t, err)
	out, err := d.Submit(ctx, "popped when landing")
	require.NoError(t, err)

	assert.Equal(t, Terminal, out.State)
	assert.Nil(t, out.Question)
	require.NotNil(t, out.Diagnosis)
	assert.True(t, out.Diagnosis.EarlyExit)
	assert.Equal(t, []string{"ACL strain"}, out.Diagnosis.Injuries)
	assert.Equal(t, []float64{0.82}, out.Diagnosis.Confidence)
	assert.Nil(t, d.Session().Pending)
}

func TestDoneWinsOverNestedType(t *testing.T) {
	mock := api.NewMockClient(api.MockReply{Chat: &question.ChatResponse{
		Done: true,
		Content: question.Question{
			Type:       question.TypeSubjective,
			Question:   "ignored",
			Injuries:   []string{"Sprained ankle", "Tendinitis"},
			Confidence: []float64{0.7, 0.4},
		},
	}})
	d := New(mock)

	out, err := d.Start(context.Background(), "ankle")
	require.NoError(t, err)
	assert.Equal(t, Terminal, out.State)
	assert.False(t, out.Diagnosis.EarlyExit)
	assert.Equal(t, []string{"Sprained ankle", "Tendinitis"}, out.Diagnosis.Injuries)
}

func TestTerminalIsAbsorbing(t *testing.T) {
	mock := api.NewMockClient(api.MockReply{Chat: &question.ChatResponse{
		Done:    true,
		Content: question.Question{Injuries: []string{"Bruise"}, Confidence: []float64{0.5}},
	}})
	d := New(mock)
	_, err := d.Start(context.Background(), "hip")
	require.NoError(t, err)

	_, err = d.Submit(context.Background(), "more")
	assert.ErrorIs(t, err, ErrTerminal)
	assert.Equal(t, 1, mock.CallCount())
}

func TestTransportFailureKeepsState(t *testing.T) {
	mock := api.NewMockClient(
		api.MockReply{Chat: objective("Any swelling?", "Yes", "No")},
		api.MockReply{Err: &api.TransportError{Endpoint: api.PathNext, Status: 503, Err: errors.New("unavailable")}},
		api.MockReply{Chat: subjective("When?")},
	)
	d := New(mock)
	ctx := context.Background()

	_, err := d.Start(ctx, "ankle")
	require.NoError(t, err)

	out, err := d.Submit(ctx, "Yes")
	require.Error(t, err)
	assert.True(t, api.IsTransport(err))
	assert.Equal(t, AwaitingAnswer, out.State)
	assert.Equal(t, "Any swelling?", out.Question.Question)
	assert.Equal(t, []string{"ankle"}, d.Session().History)
	assert.False(t, d.Busy())

	// Retry with the same answer.
	out, err = d.Submit(ctx, "Yes")
	require.NoError(t, err)
	assert.Equal(t, "When?", out.Question.Question)
	assert.Equal(t, []string{"ankle", "Yes"}, d.Session().History)
}

func TestStartFailureAllowsRetry(t *testing.T) {
	mock := api.NewMockClient(
		api.MockReply{Err: &api.TransportError{Endpoint: api.PathNext, Err: errors.New("refused")}},
		api.MockReply{Chat: subjective("Where?")},
	)
	d := New(mock)
	ctx := context.Background()

	_, err := d.Start(ctx, "wrist")
	require.Error(t, err)
	assert.Equal(t, Idle, d.State())

	out, err := d.Start(ctx, "wrist")
	require.NoError(t, err)
	assert.Equal(t, AwaitingAnswer, out.State)
}

func TestSchemaMismatchReportedAndNotRendered(t *testing.T) {
	mock := api.NewMockClient(
		api.MockReply{Chat: subjective("Where?")},
		api.MockReply{Chat: &question.ChatResponse{Content: question.Question{Type: "slider", Question: "Rate"}}},
	)
	defects := &defectRecorder{}
	d := New(mock, WithDefectReporter(defects))
	ctx := context.Background()

	_, err := d.Start(ctx, "back")
	require.NoError(t, err)

	out, err := d.Submit(ctx, "lower back")
	require.Error(t, err)
	assert.ErrorIs(t, err, question.ErrSchemaMismatch)
	assert.Equal(t, "Where?", out.Question.Question)
	assert.Len(t, d.Session().History, 1)
	require.Len(t, defects.errs, 1)
}

func TestGuards(t *testing.T) {
	d := New(api.NewMockClient(api.MockReply{Chat: subjective("Where?")}))

	_, err := d.Submit(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotAwaiting)

	_, err = d.Start(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyAnswer)

	_, err = d.Start(context.Background(), "knee")
	require.NoError(t, err)

	_, err = d.Submit(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyAnswer)

	_, err = d.Start(context.Background(), "knee")
	assert.ErrorIs(t, err, ErrNotAwaiting)
}

func TestOneTurnInFlight(t *testing.T) {
	d := New(api.NewMockClient(api.MockReply{Chat: subjective("Where?")}))

	turn, err := d.PrepareStart("elbow")
	require.NoError(t, err)
	assert.True(t, d.Busy())

	_, err = d.PrepareStart("elbow")
	assert.ErrorIs(t, err, ErrBusy)

	out, err := d.Complete(context.Background(), turn.Send(context.Background()))
	require.NoError(t, err)
	assert.Equal(t, AwaitingAnswer, out.State)
	assert.False(t, d.Busy())
}

func TestStaleReplyDiscarded(t *testing.T) {
	mock := api.NewMockClient(
		api.MockReply{Chat: subjective("Where?")},
		api.MockReply{Chat: subjective("When?")},
	)
	d := New(mock)
	ctx := context.Background()

	turn, err := d.PrepareStart("knee")
	require.NoError(t, err)
	reply := turn.Send(ctx)
	_, err = d.Complete(ctx, reply)
	require.NoError(t, err)

	_, err = d.Complete(ctx, reply)
	assert.ErrorIs(t, err, ErrStaleReply)
	assert.Len(t, d.Session().History, 1)
}

func TestLateReplyAfterAbandon(t *testing.T) {
	mock := api.NewMockClient(api.MockReply{Chat: subjective("Where?")})
	mock.Gate = make(chan struct{})
	d := New(mock)
	ctx := context.Background()

	turn, err := d.PrepareStart("shoulder")
	require.NoError(t, err)

	done := make(chan Reply)
	go func() { done <- turn.Send(ctx) }()

	d.Abandon()
	mock.Gate <- struct{}{}
	reply := <-done
	require.NoError(t, reply.Err)

	_, err = d.Complete(ctx, reply)
	assert.ErrorIs(t, err, ErrAbandoned)
	assert.Empty(t, d.Session().History)

	_, err = d.Start(ctx, "shoulder")
	assert.ErrorIs(t, err, ErrAbandoned)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "awaiting-answer", AwaitingAnswer.String())
	assert.Equal(t, "terminal", Terminal.String())
}
