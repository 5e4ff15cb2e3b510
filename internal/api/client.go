// Package api talks to the injury triage server.
package api

import (
	"context"

	"github.com/abhisek/courtside/internal/question"
)

// Endpoint paths.
const (
	PathNext      = "/chat/next"
	PathQuestions = "/get_questions"
	PathAnalyze   = "/analyze_responses"
)

// Client is the set of remote calls the clients make. Implementations
// validate every reply before returning it: a non-nil reply is always
// safe to render.
type Client interface {
	// Next sends one interview answer and returns the server's next step.
	Next(ctx context.Context, req question.ChatRequest) (*question.ChatResponse, error)

	// Questions fetches the one-shot questionnaire for a body part.
	Questions(ctx context.Context, bodyPart string) ([]question.Question, error)

	// Analyze submits questionnaire answers and returns the assessment.
	Analyze(ctx context.Context, responses []question.Response) (*question.Analysis, error)
}
