// Package interview drives one adaptive interview: it owns the session,
// sends answers to the server one turn at a time and decides from each
// reply whether to ask another question or finish with a diagnosis.
package interview

import (
	"github.com/abhisek/courtside/internal/question"
)

// State is the driver's position in the interview.
type State int

const (
	// Idle: created, seed not yet accepted by the server.
	Idle State = iota
	// AwaitingAnswer: a question is pending.
	AwaitingAnswer
	// Terminal: a diagnosis was received. Absorbing.
	Terminal
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingAnswer:
		return "awaiting-answer"
	case Terminal:
		return "terminal"
	}
	return "unknown"
}

// Session is the client half of one server-tracked interview.
type Session struct {
	ID      string
	History []string
	Pending *question.Question
}

func (s Session) clone() Session {
	c := Session{ID: s.ID, History: append([]string(nil), s.History...)}
	if s.Pending != nil {
		q := *s.Pending
		c.Pending = &q
	}
	return c
}

// Diagnosis is the terminal payload of an interview.
type Diagnosis struct {
	Injuries   []string
	Confidence []float64
	// EarlyExit is set when the server answered with a diagnosis question
	// before marking the session done.
	EarlyExit bool
}

// Outcome is the result of applying one reply.
type Outcome struct {
	State     State
	Question  *question.Question // set when State is AwaitingAnswer
	Diagnosis *Diagnosis         // set when State is Terminal
}
