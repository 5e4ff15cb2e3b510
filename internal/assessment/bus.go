package assessment

import (
	"sync"
)

// EventKind names an engine event.
type EventKind string

const (
	EventWorkoutDidFinish EventKind = "workoutDidFinish"
	EventWorkoutError     EventKind = "workoutError"
	EventDidExitWorkout   EventKind = "didExitWorkout"
)

// Event is one notification from the engine.
type Event struct {
	Kind EventKind
	Err  error // set for EventWorkoutError
}

// String renders the event as a log line.
func (e Event) String() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Err.Error()
	}
	return string(e.Kind)
}

const subscriptionBuffer = 16

// Bus fans engine events out to explicit subscriptions. There are no
// ambient listeners: a view subscribes when it is shown and closes the
// subscription when it goes away.
type Bus struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[*Subscription]struct{})}
}

// Subscribe acquires a subscription.
func (b *Bus) Subscribe() *Subscription {
	s := &Subscription{bus: b, ch: make(chan Event, subscriptionBuffer)}
	b.mu.Lock()
	b.subs[s] = struct{}{}
	b.mu.Unlock()
	return s
}

// Publish delivers e to every open subscription. Slow subscribers drop
// events rather than block the engine.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for s := range b.subs {
		select {
		case s.ch <- e:
		default:
		}
	}
}

// Len returns the number of open subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Subscription is a scoped handle on a Bus.
type Subscription struct {
	bus  *Bus
	ch   chan Event
	once sync.Once
}

// C returns the event channel. It is closed by Close.
func (s *Subscription) C() <-chan Event { return s.ch }

// Close releases the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subs, s)
		close(s.ch)
		s.bus.mu.Unlock()
	})
}
