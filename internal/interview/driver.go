package interview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/courtside/internal/api"
	"github.com/abhisek/courtside/internal/question"
)

// Driver is the interview state machine. The network leg of a turn is
// split out (Prepare, Turn.Send, Complete) so a UI can run it off its
// event loop; Start and Submit run all three in place.
type Driver struct {
	client  api.Client
	defects DefectReporter
	logger  *slog.Logger

	mu        sync.Mutex
	session   Session
	state     State
	inflight  *Turn
	diagnosis *Diagnosis
	abandoned bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithDefectReporter sets where schema mismatches are reported.
func WithDefectReporter(r DefectReporter) Option {
	return func(d *Driver) { d.defects = r }
}

// WithLogger sets the driver's logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// New creates a driver with a fresh session.
func New(client api.Client, opts ...Option) *Driver {
	d := &Driver{
		client:  client,
		session: Session{ID: uuid.NewString()},
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Turn is one answer on its way to the server.
type Turn struct {
	client api.Client
	req    question.ChatRequest
}

// Answer returns the answer this turn carries.
func (t *Turn) Answer() string { return t.req.UserInput }

// Reply is the server's response to a Turn.
type Reply struct {
	turn *Turn
	Resp *question.ChatResponse
	Err  error
}

// Send performs the round trip. It touches no driver state and is safe to
// call from any goroutine.
func (t *Turn) Send(ctx context.Context) Reply {
	resp, err := t.client.Next(ctx, t.req)
	return Reply{turn: t, Resp: resp, Err: err}
}

// PrepareStart readies the seed turn. It is only valid before the server
// has accepted a seed.
func (d *Driver) PrepareStart(seed string) (*Turn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkUsable(); err != nil {
		return nil, err
	}
	if d.state != Idle {
		return nil, fmt.Errorf("start: %w", ErrNotAwaiting)
	}
	return d.prepareLocked(seed)
}

// Prepare readies a turn carrying answer to the pending question.
func (d *Driver) Prepare(answer string) (*Turn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkUsable(); err != nil {
		return nil, err
	}
	if d.state != AwaitingAnswer {
		return nil, ErrNotAwaiting
	}
	return d.prepareLocked(answer)
}

func (d *Driver) checkUsable() error {
	switch {
	case d.abandoned:
		return ErrAbandoned
	case d.state == Terminal:
		return ErrTerminal
	case d.inflight != nil:
		return ErrBusy
	}
	return nil
}

func (d *Driver) prepareLocked(answer string) (*Turn, error) {
	if strings.TrimSpace(answer) == "" {
		return nil, ErrEmptyAnswer
	}
	t := &Turn{
		client: d.client,
		req:    question.ChatRequest{SessionID: d.session.ID, UserInput: answer},
	}
	d.inflight = t
	return t, nil
}

// Complete applies a reply. Transport and schema failures leave history and
// the pending question untouched and clear the in-flight turn so the same
// answer can be retried.
func (d *Driver) Complete(ctx context.Context, r Reply) (Outcome, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.abandoned {
		return Outcome{}, ErrAbandoned
	}
	if r.turn == nil || r.turn != d.inflight {
		return d.outcomeLocked(), ErrStaleReply
	}
	d.inflight = nil

	err := r.Err
	if err == nil && r.Resp == nil {
		err = &question.SchemaError{Field: "content", Reason: "empty reply"}
	}
	if err == nil {
		err = r.Resp.Validate()
	}
	if err != nil {
		if errors.Is(err, question.ErrSchemaMismatch) && d.defects != nil {
			d.defects.ReportDefect(ctx, d.session.ID, err)
		}
		d.logger.Warn("interview turn failed", "session", d.session.ID, "state", d.state.String(), "error", err)
		return d.outcomeLocked(), err
	}

	resp := r.Resp
	d.session.History = append(d.session.History, r.turn.req.UserInput)
	if resp.SessionID != "" {
		d.session.ID = resp.SessionID
	}

	switch {
	case resp.Done:
		d.finishLocked(resp.Content, false)
	case resp.Content.IsDiagnosis():
		d.finishLocked(resp.Content, true)
	default:
		q := resp.Content
		d.session.Pending = &q
		d.state = AwaitingAnswer
	}

	d.logger.Info("interview turn",
		"session", d.session.ID,
		"turn", len(d.session.History),
		"state", d.state.String(),
	)
	return d.outcomeLocked(), nil
}

func (d *Driver) finishLocked(q question.Question, early bool) {
	d.session.Pending = nil
	d.state = Terminal
	d.diagnosis = &Diagnosis{
		Injuries:   append([]string(nil), q.Injuries...),
		Confidence: append([]float64(nil), q.Confidence...),
		EarlyExit:  early,
	}
}

func (d *Driver) outcomeLocked() Outcome {
	o := Outcome{State: d.state}
	if d.session.Pending != nil {
		q := *d.session.Pending
		o.Question = &q
	}
	if d.diagnosis != nil {
		dg := *d.diagnosis
		o.Diagnosis = &dg
	}
	return o
}

// Start submits the seed and waits for the first question or diagnosis.
func (d *Driver) Start(ctx context.Context, seed string) (Outcome, error) {
	t, err := d.PrepareStart(seed)
	if err != nil {
		return Outcome{}, err
	}
	return d.Complete(ctx, t.Send(ctx))
}

// Submit answers the pending question and waits for the next step.
func (d *Driver) Submit(ctx context.Context, answer string) (Outcome, error) {
	t, err := d.Prepare(answer)
	if err != nil {
		return Outcome{}, err
	}
	return d.Complete(ctx, t.Send(ctx))
}

// Abandon discards the session. Any reply still in flight is dropped when
// it arrives.
func (d *Driver) Abandon() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.abandoned {
		return
	}
	d.abandoned = true
	d.session = Session{ID: d.session.ID}
	d.logger.Debug("interview abandoned", "session", d.session.ID)
}

// State returns the current state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Busy reports whether a turn is in flight.
func (d *Driver) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inflight != nil
}

// Session returns a copy of the session.
func (d *Driver) Session() Session {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.session.clone()
}

// Outcome returns the current outcome without advancing.
func (d *Driver) Outcome() Outcome {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.outcomeLocked()
}
