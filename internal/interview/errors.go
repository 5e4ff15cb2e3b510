package interview

import "errors"

var (
	// ErrEmptyAnswer is returned for a blank answer.
	ErrEmptyAnswer = errors.New("interview: empty answer")

	// ErrNotAwaiting is returned when no question is pending.
	ErrNotAwaiting = errors.New("interview: no pending question")

	// ErrBusy is returned while a turn is in flight.
	ErrBusy = errors.New("interview: turn in flight")

	// ErrTerminal is returned once a diagnosis has been received.
	ErrTerminal = errors.New("interview: session finished")

	// ErrAbandoned is returned for any use after Abandon, including late replies.
	ErrAbandoned = errors.New("interview: session abandoned")

	// ErrStaleReply is returned for a reply to a turn that is no longer in flight.
	ErrStaleReply = errors.New("interview: stale reply")
)
