package interview

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/courtside/internal/question"
	"github.com/abhisek/courtside/internal/store"
)

type fakeEventRepo struct {
	defects []store.DefectEventData
}

func (f *fakeEventRepo) AppendRequest(context.Context, store.RequestEventData) error { return nil }

func (f *fakeEventRepo) AppendDefect(_ context.Context, d store.DefectEventData) error {
	f.defects = append(f.defects, d)
	return nil
}

func (f *fakeEventRepo) Recent(context.Context, store.QueryOpts) ([]store.Event, error) {
	return nil, nil
}

func TestStoreDefects_RecordsQuestionType(t *testing.T) {
	repo := &fakeEventRepo{}
	r := StoreDefects{Repo: repo, Source: "/chat/next"}

	err := (question.Question{Type: question.TypeObjective, Question: "Where?"}).Validate()
	require.Error(t, err)

	r.ReportDefect(context.Background(), "sess-1", err)

	require.Len(t, repo.defects, 1)
	d := repo.defects[0]
	assert.Equal(t, "/chat/next", d.Source)
	assert.Equal(t, "sess-1", d.SessionID)
	assert.Equal(t, string(question.TypeObjective), d.QuestionType)
	assert.Equal(t, err.Error(), d.Detail)
}

func TestStoreDefects_NilRepo(t *testing.T) {
	r := StoreDefects{Source: "web"}
	assert.NotPanics(t, func() {
		r.ReportDefect(context.Background(), "", errors.New("boom"))
	})
}
