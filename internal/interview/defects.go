package interview

import (
	"context"
	"errors"
	"log/slog"

	"github.com/abhisek/courtside/internal/question"
	"github.com/abhisek/courtside/internal/store"
)

// DefectReporter receives payloads the client refused to render.
type DefectReporter interface {
	ReportDefect(ctx context.Context, sessionID string, err error)
}

// StoreDefects records defects in the local event log.
type StoreDefects struct {
	Repo   store.EventRepo
	Source string
	Logger *slog.Logger
}

// ReportDefect implements DefectReporter.
func (s StoreDefects) ReportDefect(ctx context.Context, sessionID string, err error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	data := store.DefectEventData{
		Source:    s.Source,
		SessionID: sessionID,
		Detail:    err.Error(),
	}
	var se *question.SchemaError
	if errors.As(err, &se) {
		data.QuestionType = string(se.Type)
	}

	logger.Error("schema mismatch", "source", s.Source, "session", sessionID, "error", err)
	if s.Repo == nil {
		return
	}
	if logErr := s.Repo.AppendDefect(context.WithoutCancel(ctx), data); logErr != nil {
		logger.Warn("failed to record defect event", "error", logErr)
	}
}
