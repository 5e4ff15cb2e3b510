package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on the ent SQL builders and the global
// sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *eventRepo) AppendRequest(ctx context.Context, data RequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	q, args := entsql.Dialect(dialect.SQLite).
		Insert(requestEventsTable).
		Columns("sequence", "timestamp", "endpoint", "session_id", "status", "latency_ms", "success", "error_message").
		Values(seqNum, time.Now().UnixNano(), data.Endpoint, data.SessionID, data.Status,
			data.LatencyMs, data.Success, data.ErrorMessage).
		Query()
	if err := r.drv.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("save request event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendDefect(ctx context.Context, data DefectEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	q, args := entsql.Dialect(dialect.SQLite).
		Insert(defectEventsTable).
		Columns("sequence", "timestamp", "source", "session_id", "question_type", "detail").
		Values(seqNum, time.Now().UnixNano(), data.Source, data.SessionID, data.QuestionType, data.Detail).
		Query()
	if err := r.drv.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("save defect event: %w", err)
	}
	return nil
}

// Recent reads each table newest first under the same filters and limit,
// then merges by sequence. The top N of the merge is the top N overall.
func (r *eventRepo) Recent(ctx context.Context, opts QueryOpts) ([]Event, error) {
	var events []Event

	if opts.Kind == "" || opts.Kind == KindRequest {
		q, args := recentQuery(requestEventsTable, opts,
			"sequence", "timestamp", "session_id", "endpoint", "success", "error_message")
		reqs, err := r.scan(ctx, q, args, KindRequest)
		if err != nil {
			return nil, err
		}
		events = append(events, reqs...)
	}

	if opts.Kind == "" || opts.Kind == KindDefect {
		q, args := recentQuery(defectEventsTable, opts,
			"sequence", "timestamp", "session_id", "source", "detail")
		defects, err := r.scan(ctx, q, args, KindDefect)
		if err != nil {
			return nil, err
		}
		events = append(events, defects...)
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Sequence > events[j].Sequence })
	if opts.Limit > 0 && len(events) > opts.Limit {
		events = events[:opts.Limit]
	}
	return events, nil
}

func recentQuery(table string, opts QueryOpts, columns ...string) (string, []any) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(columns...).
		From(entsql.Table(table))
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixNano()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixNano()))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel.Query()
}

func (r *eventRepo) scan(ctx context.Context, q string, args []any, kind string) ([]Event, error) {
	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query %s events: %w", kind, err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e  = Event{Kind: kind}
			ts int64
			err error
		)
		switch kind {
		case KindRequest:
			err = rows.Scan(&e.Sequence, &ts, &e.SessionID, &e.Subject, &e.Success, &e.Detail)
		default:
			err = rows.Scan(&e.Sequence, &ts, &e.SessionID, &e.Subject, &e.Detail)
		}
		if err != nil {
			return nil, fmt.Errorf("scan %s event: %w", kind, err)
		}
		e.Timestamp = time.Unix(0, ts).UTC()
		events = append(events, e)
	}
	return events, rows.Err()
}
