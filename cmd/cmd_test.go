package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/courtside/internal/store"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersion(t *testing.T) {
	out := execute(t, "version")
	assert.Contains(t, out, "courtside (devel)")
	assert.Contains(t, out, runtime.Version())
}

func TestEventsEmpty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "events.db")
	assert.Contains(t, execute(t, "events", "--db", db), "No events found.")
}

func TestEventsListsRecorded(t *testing.T) {
	db := filepath.Join(t.TempDir(), "events.db")
	s, err := store.Open(db)
	require.NoError(t, err)
	ctx := context.Background()
	repo := s.EventRepo()
	require.NoError(t, repo.AppendRequest(ctx, store.RequestEventData{Endpoint: "/chat/next", SessionID: "s-1", Status: 200, Success: true}))
	require.NoError(t, repo.AppendDefect(ctx, store.DefectEventData{Source: "tui", SessionID: "s-1", QuestionType: "slider", Detail: "unknown type"}))
	require.NoError(t, s.Close())

	out := execute(t, "events", "--db", db, "--kind", "")
	assert.Contains(t, out, "/chat/next")
	assert.Contains(t, out, "defect")
	assert.Contains(t, out, "unknown type")
}

func TestLoadConfigRejectsBadServer(t *testing.T) {
	rootCmd.SetArgs([]string{"events", "--server", "ftp://nope"})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	assert.Error(t, rootCmd.Execute())
	rootCmd.PersistentFlags().Set("server", "")
}
