package api

import (
	"context"
	"errors"
	"sync"

	"github.com/abhisek/courtside/internal/question"
)

// ErrNoReply is returned by MockClient when its queue for an endpoint is empty.
var ErrNoReply = errors.New("mock: no canned reply")

// MockReply is a canned reply for one MockClient call.
type MockReply struct {
	Chat      *question.ChatResponse
	Questions []question.Question
	Analysis  *question.Analysis
	Err       error
}

// Call records one request seen by MockClient.
type Call struct {
	Endpoint string
	Chat     question.ChatRequest
	BodyPart string
	Answers  []question.Response
}

// MockClient is a deterministic Client for tests and offline demos.
// Replies are served FIFO per endpoint. When Gate is non-nil every call
// waits for a value on it (or ctx cancellation) before replying.
type MockClient struct {
	mu        sync.Mutex
	chat      []MockReply
	questions []MockReply
	analysis  []MockReply
	Calls     []Call
	Gate      chan struct{}
}

// NewMockClient creates a MockClient with canned /chat/next replies.
func NewMockClient(chat ...MockReply) *MockClient {
	return &MockClient{chat: chat}
}

// AddChat queues a /chat/next reply.
func (m *MockClient) AddChat(r MockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chat = append(m.chat, r)
}

// AddQuestions queues a /get_questions reply.
func (m *MockClient) AddQuestions(r MockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.questions = append(m.questions, r)
}

// AddAnalysis queues an /analyze_responses reply.
func (m *MockClient) AddAnalysis(r MockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analysis = append(m.analysis, r)
}

// CallCount returns the number of calls made.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent call.
func (m *MockClient) LastCall() Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return Call{}
	}
	return m.Calls[len(m.Calls)-1]
}

func (m *MockClient) Next(ctx context.Context, req question.ChatRequest) (*question.ChatResponse, error) {
	r, err := m.take(ctx, Call{Endpoint: PathNext, Chat: req}, &m.chat)
	if err != nil {
		return nil, err
	}
	if r.Chat != nil {
		if err := r.Chat.Validate(); err != nil {
			return nil, err
		}
	}
	return r.Chat, nil
}

func (m *MockClient) Questions(ctx context.Context, bodyPart string) ([]question.Question, error) {
	r, err := m.take(ctx, Call{Endpoint: PathQuestions, BodyPart: bodyPart}, &m.questions)
	if err != nil {
		return nil, err
	}
	if err := question.ValidateQuestionnaire(r.Questions); err != nil {
		return nil, err
	}
	return r.Questions, nil
}

func (m *MockClient) Analyze(ctx context.Context, responses []question.Response) (*question.Analysis, error) {
	r, err := m.take(ctx, Call{Endpoint: PathAnalyze, Answers: responses}, &m.analysis)
	if err != nil {
		return nil, err
	}
	return r.Analysis, nil
}

func (m *MockClient) take(ctx context.Context, c Call, queue *[]MockReply) (MockReply, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, c)
	gate := m.Gate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return MockReply{}, &TransportError{Endpoint: c.Endpoint, Err: ctx.Err()}
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(*queue) == 0 {
		return MockReply{}, &TransportError{Endpoint: c.Endpoint, Err: ErrNoReply}
	}
	r := (*queue)[0]
	*queue = (*queue)[1:]
	if r.Err != nil {
		return MockReply{}, r.Err
	}
	return r, nil
}
