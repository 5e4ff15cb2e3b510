package api

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/abhisek/courtside/internal/question"
)

// DefaultQuestionCacheSize bounds the number of cached questionnaires.
const DefaultQuestionCacheSize = 32

// CachedClient serves repeated Questions calls for the same body part
// from memory. Next and Analyze always go to the wrapped client.
type CachedClient struct {
	Client
	questions *lru.Cache[string, []question.Question]
}

// WithQuestionCache wraps c with an LRU cache of questionnaires keyed by
// body part. Failed lookups are never cached.
func WithQuestionCache(c Client, size int) (*CachedClient, error) {
	if size <= 0 {
		size = DefaultQuestionCacheSize
	}
	cache, err := lru.New[string, []question.Question](size)
	if err != nil {
		return nil, err
	}
	return &CachedClient{Client: c, questions: cache}, nil
}

func (c *CachedClient) Questions(ctx context.Context, bodyPart string) ([]question.Question, error) {
	if qs, ok := c.questions.Get(bodyPart); ok {
		return clone(qs), nil
	}
	qs, err := c.Client.Questions(ctx, bodyPart)
	if err != nil {
		return nil, err
	}
	c.questions.Add(bodyPart, clone(qs))
	return qs, nil
}

// Purge drops every cached questionnaire.
func (c *CachedClient) Purge() { c.questions.Purge() }

func clone(qs []question.Question) []question.Question {
	out := make([]question.Question, len(qs))
	for i, q := range qs {
		q.Options = append([]string(nil), q.Options...)
		q.Injuries = append([]string(nil), q.Injuries...)
		q.Confidence = append([]float64(nil), q.Confidence...)
		out[i] = q
	}
	return out
}
