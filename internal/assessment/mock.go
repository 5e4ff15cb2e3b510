package assessment

import (
	"context"
	"sync"
)

// MockRun is a canned assessment outcome.
type MockRun struct {
	Summary Summary
	Err     error
	Events  []Event // published before StartAssessment returns
}

// MockEngine is a deterministic Engine for tests and offline demos.
type MockEngine struct {
	mu           sync.Mutex
	bus          *Bus
	runs         []MockRun
	ConfigureErr error
	Keys         []string
	Starts       int
}

// NewMockEngine creates a MockEngine with canned runs served FIFO.
func NewMockEngine(runs ...MockRun) *MockEngine {
	return &MockEngine{bus: NewBus(), runs: runs}
}

func (m *MockEngine) Configure(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Keys = append(m.Keys, key)
	if m.ConfigureErr != nil {
		return &EngineError{Op: "configure", Err: m.ConfigureErr}
	}
	return nil
}

func (m *MockEngine) StartAssessment(_ context.Context, _ Kind) (Summary, error) {
	m.mu.Lock()
	m.Starts++
	if len(m.runs) == 0 {
		m.mu.Unlock()
		return Summary{}, &EngineError{Op: "start", Err: ErrEngineUnavailable}
	}
	r := m.runs[0]
	m.runs = m.runs[1:]
	m.mu.Unlock()

	for _, e := range r.Events {
		m.bus.Publish(e)
	}
	if r.Err != nil {
		return Summary{}, &EngineError{Op: "start", Err: r.Err}
	}
	return r.Summary, nil
}

func (m *MockEngine) Events() *Bus { return m.bus }
