package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/courtside/internal/question"
	"github.com/abhisek/courtside/internal/store"
)

// EventClient is a decorator that records every round trip in the event log.
type EventClient struct {
	inner  Client
	repo   store.EventRepo
	logger *slog.Logger
}

// WithEvents wraps a Client with request event logging.
func WithEvents(c Client, repo store.EventRepo, logger *slog.Logger) Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventClient{inner: c, repo: repo, logger: logger}
}

func (e *EventClient) Next(ctx context.Context, req question.ChatRequest) (*question.ChatResponse, error) {
	start := time.Now()
	resp, err := e.inner.Next(ctx, req)
	e.record(ctx, PathNext, req.SessionID, start, err)
	return resp, err
}

func (e *EventClient) Questions(ctx context.Context, bodyPart string) ([]question.Question, error) {
	start := time.Now()
	qs, err := e.inner.Questions(ctx, bodyPart)
	e.record(ctx, PathQuestions, "", start, err)
	return qs, err
}

func (e *EventClient) Analyze(ctx context.Context, responses []question.Response) (*question.Analysis, error) {
	start := time.Now()
	a, err := e.inner.Analyze(ctx, responses)
	e.record(ctx, PathAnalyze, "", start, err)
	return a, err
}

func (e *EventClient) record(ctx context.Context, endpoint, sessionID string, start time.Time, err error) {
	data := store.RequestEventData{
		Endpoint:  endpoint,
		SessionID: sessionID,
		Status:    StatusOf(err),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// The round trip's outcome stands even if the log write fails.
	if logErr := e.repo.AppendRequest(context.WithoutCancel(ctx), data); logErr != nil {
		e.logger.Warn("failed to record request event", "endpoint", endpoint, "error", logErr)
	}
}
