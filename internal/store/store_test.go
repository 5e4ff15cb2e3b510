package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is not checked here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{"request_events", "defect_events", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}
}

func TestEventRepo_MergedOrder(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendRequest(ctx, RequestEventData{Endpoint: "/chat/next", SessionID: "s1", Status: 200, LatencyMs: 12, Success: true}); err != nil {
		t.Fatalf("append request: %v", err)
	}
	if err := repo.AppendDefect(ctx, DefectEventData{Source: "/chat/next", SessionID: "s1", QuestionType: "slider", Detail: "unknown question type"}); err != nil {
		t.Fatalf("append defect: %v", err)
	}
	if err := repo.AppendRequest(ctx, RequestEventData{Endpoint: "/chat/next", SessionID: "s1", Status: 502, Success: false, ErrorMessage: "bad gateway"}); err != nil {
		t.Fatalf("append request: %v", err)
	}

	events, err := repo.Recent(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("len(events) = %d, want 3", len(events))
	}

	wantKinds := []string{KindRequest, KindDefect, KindRequest}
	for i, e := range events {
		if e.Kind != wantKinds[i] {
			t.Errorf("events[%d].Kind = %q, want %q", i, e.Kind, wantKinds[i])
		}
		if e.Sequence != int64(3-i) {
			t.Errorf("events[%d].Sequence = %d, want %d", i, e.Sequence, 3-i)
		}
	}
	if events[0].Success || events[0].Detail != "bad gateway" {
		t.Errorf("newest event = %+v, want failed request", events[0])
	}
	if !events[2].Success {
		t.Error("oldest event should be the successful request")
	}
	if events[1].Detail != "unknown question type" {
		t.Errorf("defect detail = %q", events[1].Detail)
	}
}

func TestEventRepo_QueryOpts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := repo.AppendRequest(ctx, RequestEventData{Endpoint: "/get_questions", Success: true}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	limited, err := repo.Recent(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(limited) != 2 || limited[0].Sequence != 5 {
		t.Errorf("limited = %+v, want sequences 5,4", limited)
	}

	window, err := repo.Recent(ctx, QueryOpts{After: 1, Before: 4})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(window) != 2 {
		t.Errorf("len(window) = %d, want 2", len(window))
	}

	future, err := repo.Recent(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(future) != 0 {
		t.Errorf("len(future) = %d, want 0", len(future))
	}
}

func TestEventRepo_KindFilterBeforeLimit(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendDefect(ctx, DefectEventData{Source: "/chat/next", Detail: "missing options"}); err != nil {
		t.Fatalf("append defect: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := repo.AppendRequest(ctx, RequestEventData{Endpoint: "/chat/next", Success: true}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	defects, err := repo.Recent(ctx, QueryOpts{Kind: KindDefect, Limit: 1})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(defects) != 1 || defects[0].Kind != KindDefect || defects[0].Sequence != 1 {
		t.Errorf("defects = %+v, want the single defect", defects)
	}
}

func TestOpen_MigrationIsRepeatable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := s.EventRepo().AppendRequest(ctx, RequestEventData{Endpoint: "/chat/next", Status: 200, Success: true}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s.Close()

	if err := s.EventRepo().AppendDefect(ctx, DefectEventData{Source: "/chat/next", Detail: "no options"}); err != nil {
		t.Fatalf("append after reopen: %v", err)
	}
	events, err := s.EventRepo().Recent(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[0].Kind != KindDefect || events[0].Sequence != 2 {
		t.Errorf("newest = %+v, want defect with sequence 2", events[0])
	}
	if events[1].Subject != "/chat/next" || !events[1].Success {
		t.Errorf("oldest = %+v, want the successful request", events[1])
	}
}

func TestEventRepo_LimitSpansBothKinds(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.AppendRequest(ctx, RequestEventData{Endpoint: "/chat/next", Success: true}); err != nil {
			t.Fatalf("append request %d: %v", i, err)
		}
		if err := repo.AppendDefect(ctx, DefectEventData{Source: "/chat/next", Detail: "bad"}); err != nil {
			t.Fatalf("append defect %d: %v", i, err)
		}
	}

	events, err := repo.Recent(ctx, QueryOpts{Limit: 3})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	var seqs []int64
	for _, e := range events {
		seqs = append(seqs, e.Sequence)
	}
	if fmt.Sprint(seqs) != "[6 5 4]" {
		t.Errorf("sequences = %v, want [6 5 4]", seqs)
	}
	if events[0].Kind != KindDefect || events[1].Kind != KindRequest {
		t.Errorf("kinds = %s, %s; want defect, request", events[0].Kind, events[1].Kind)
	}
}

func TestWithConnPragmas(t *testing.T) {
	if got := withConnPragmas("/tmp/events.db"); got != "/tmp/events.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)" {
		t.Errorf("plain path = %q", got)
	}
	if got := withConnPragmas("file:x?mode=memory"); !strings.HasPrefix(got, "file:x?mode=memory&_pragma=") {
		t.Errorf("dsn with query = %q", got)
	}
}
