// Package questionnaire runs the one-shot body-part questionnaire: fetch
// every question at once, collect all answers, submit for analysis.
package questionnaire

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/courtside/internal/api"
	"github.com/abhisek/courtside/internal/form"
	"github.com/abhisek/courtside/internal/intake"
	"github.com/abhisek/courtside/internal/question"
	"github.com/abhisek/courtside/internal/result"
)

// ErrUnanswered is returned when some question has no valid answer yet.
var ErrUnanswered = errors.New("questionnaire has unanswered questions")

// Questionnaire holds one form per fetched question.
type Questionnaire struct {
	client   api.Client
	bodyPart string
	forms    []*form.Form
}

// Load fetches the questionnaire for bodyPart. It fails closed: one
// unrenderable question rejects the whole questionnaire.
func Load(ctx context.Context, client api.Client, bodyPart string) (*Questionnaire, error) {
	seed, err := intake.Seed(bodyPart)
	if err != nil {
		return nil, err
	}

	qs, err := client.Questions(ctx, seed)
	if err != nil {
		return nil, err
	}
	if err := question.ValidateQuestionnaire(qs); err != nil {
		return nil, err
	}

	q := &Questionnaire{client: client, bodyPart: seed, forms: make([]*form.Form, len(qs))}
	for i, item := range qs {
		f, err := form.New(item, nil)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		q.forms[i] = f
	}
	return q, nil
}

// BodyPart returns the seed the questionnaire was loaded for.
func (q *Questionnaire) BodyPart() string { return q.bodyPart }

// Forms returns the forms in server order.
func (q *Questionnaire) Forms() []*form.Form { return q.forms }

// Complete reports whether every form holds a valid answer.
func (q *Questionnaire) Complete() bool {
	for _, f := range q.forms {
		if !f.Submittable() && !f.Submitted() {
			return false
		}
	}
	return true
}

// Responses encodes every answer through its form. Forms stay open until
// the server accepts the batch.
func (q *Questionnaire) Responses() ([]question.Response, error) {
	out := make([]question.Response, 0, len(q.forms))
	for i, f := range q.forms {
		f.Reopen()
		a, err := f.Submit()
		if err != nil {
			q.Reopen()
			return nil, fmt.Errorf("question %d: %w: %v", i+1, ErrUnanswered, err)
		}
		item := f.Question()
		out = append(out, question.Response{
			Question: item.Question,
			Answer:   a,
			Type:     item.Type,
			BodyPart: q.bodyPart,
		})
	}
	return out, nil
}

// Submit posts every answer for analysis. On failure the forms are
// re-armed with their answers intact.
func (q *Questionnaire) Submit(ctx context.Context) (result.Assessment, error) {
	rs, err := q.Responses()
	if err != nil {
		return result.Assessment{}, err
	}
	a, err := q.Analyze(ctx, rs)
	if err != nil {
		q.Reopen()
		return result.Assessment{}, err
	}
	return a, nil
}

// Analyze sends already encoded responses. It touches no form state, so a
// UI can run it off its event loop and call Reopen itself on failure.
func (q *Questionnaire) Analyze(ctx context.Context, rs []question.Response) (result.Assessment, error) {
	an, err := q.client.Analyze(ctx, rs)
	if err != nil {
		return result.Assessment{}, err
	}
	if an == nil {
		return result.Assessment{}, &question.SchemaError{Field: "analysis", Reason: "empty reply"}
	}
	return result.FromAnalysis(*an), nil
}

// Reopen re-arms every form for editing.
func (q *Questionnaire) Reopen() {
	for _, f := range q.forms {
		f.Reopen()
	}
}
