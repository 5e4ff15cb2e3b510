package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	Kind   string    // KindRequest or KindDefect; empty means both
}

// RequestEventData captures one round trip to the interview server.
type RequestEventData struct {
	Endpoint     string
	SessionID    string
	Status       int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// DefectEventData captures a payload the clients refused to render.
type DefectEventData struct {
	Source       string // endpoint or component that saw the payload
	SessionID    string
	QuestionType string
	Detail       string
}

// Event kinds returned by RecentEvents.
const (
	KindRequest = "request"
	KindDefect  = "defect"
)

// Event is one row of the merged event log.
type Event struct {
	Sequence  int64
	Timestamp time.Time
	Kind      string
	SessionID string
	// Subject is the endpoint for requests and the source for defects.
	Subject string
	Success bool
	Detail  string
}

// EventRepo provides append and query access to the local event log.
type EventRepo interface {
	// AppendRequest records a server round trip.
	AppendRequest(ctx context.Context, data RequestEventData) error

	// AppendDefect records a schema mismatch.
	AppendDefect(ctx context.Context, data DefectEventData) error

	// Recent returns events newest first.
	Recent(ctx context.Context, opts QueryOpts) ([]Event, error)
}
