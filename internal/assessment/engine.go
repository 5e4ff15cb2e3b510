// Package assessment is the boundary to the motion-assessment engine that
// backs the workout view. The engine itself is external; this package
// defines how it is configured, started and observed.
package assessment

import (
	"context"
	"errors"
	"fmt"
)

// Kind selects an assessment program.
type Kind string

// KindFitness is the general fitness assessment.
const KindFitness Kind = "fitness"

// Summary is what an engine reports after an assessment run.
type Summary struct {
	Text      string
	DidFinish bool
}

// Engine is a motion-assessment engine.
type Engine interface {
	// Configure authenticates the engine with an SDK key.
	Configure(ctx context.Context, key string) error

	// StartAssessment runs one assessment and blocks until it ends.
	StartAssessment(ctx context.Context, kind Kind) (Summary, error)

	// Events returns the engine's event bus.
	Events() *Bus
}

var (
	// ErrEngineUnavailable is returned when no engine is bound.
	ErrEngineUnavailable = errors.New("assessment engine unavailable")

	// ErrPermissionDenied is returned when the capture device cannot be used.
	ErrPermissionDenied = errors.New("camera permission denied")
)

// EngineError wraps a failure reported by the engine.
type EngineError struct {
	Op  string
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("assessment %s: %v", e.Op, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// Unavailable is the engine used when no native engine is linked in.
// Every call fails with ErrEngineUnavailable.
type Unavailable struct {
	bus *Bus
}

// NewUnavailable creates an Unavailable engine.
func NewUnavailable() *Unavailable {
	return &Unavailable{bus: NewBus()}
}

func (u *Unavailable) Configure(context.Context, string) error {
	return &EngineError{Op: "configure", Err: ErrEngineUnavailable}
}

func (u *Unavailable) StartAssessment(context.Context, Kind) (Summary, error) {
	err := &EngineError{Op: "start", Err: ErrEngineUnavailable}
	u.bus.Publish(Event{Kind: EventWorkoutError, Err: err})
	return Summary{}, err
}

func (u *Unavailable) Events() *Bus { return u.bus }
