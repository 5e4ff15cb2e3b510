package question

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrMalformedJSON reports a body that is not JSON at all. Callers treat it
// as a transport failure, not a schema mismatch.
var ErrMalformedJSON = errors.New("malformed JSON")

// Envelope schema names.
const (
	SchemaChat      = "chat-response"
	SchemaQuestions = "questions-response"
	SchemaAnalysis  = "analysis-response"
)

var stringArray = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

var questionDef = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"type":     map[string]any{"type": "string"},
		"question": map[string]any{"type": "string"},
		"options":  stringArray,
		"injuries": stringArray,
		"confidence": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "number"},
		},
	},
}

var envelopes = map[string]map[string]any{
	SchemaChat: {
		"type":     "object",
		"required": []any{"content", "done"},
		"properties": map[string]any{
			"session_id": map[string]any{"type": "string"},
			"done":       map[string]any{"type": "boolean"},
			"content":    questionDef,
		},
	},
	SchemaQuestions: {
		"type":     "object",
		"required": []any{"questions"},
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"allOf":    []any{questionDef},
					"required": []any{"type", "question"},
				},
			},
		},
	},
	SchemaAnalysis: {
		"type":     "object",
		"required": []any{"diagnosis", "doctors"},
		"properties": map[string]any{
			"diagnosis": map[string]any{"type": "string"},
			"doctors": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"name", "specialty", "location", "contact"},
					"properties": map[string]any{
						"name":      map[string]any{"type": "string"},
						"specialty": map[string]any{"type": "string"},
						"location":  map[string]any{"type": "string"},
						"contact":   map[string]any{"type": "string"},
					},
				},
			},
		},
	},
}

// compiled caches compiled envelope schemas by name.
var compiled sync.Map // map[string]*jsonschema.Schema

// ValidatePayload checks a raw response body against the named envelope
// schema. It returns an error wrapping ErrMalformedJSON when the body does
// not parse and a *SchemaError when it parses but has the wrong shape.
func ValidatePayload(name string, raw []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	sch, err := compile(name)
	if err != nil {
		return err
	}

	if err := sch.Validate(doc); err != nil {
		return &SchemaError{Field: name, Reason: err.Error()}
	}
	return nil
}

func compile(name string) (*jsonschema.Schema, error) {
	if cached, ok := compiled.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, ok := envelopes[name]
	if !ok {
		return nil, fmt.Errorf("unknown envelope schema %q", name)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}

	compiled.Store(name, sch)
	return sch, nil
}

// ValidateChatPayload checks a /chat/next body.
func ValidateChatPayload(raw []byte) error { return ValidatePayload(SchemaChat, raw) }

// ValidateQuestionsPayload checks a /get_questions body.
func ValidateQuestionsPayload(raw []byte) error { return ValidatePayload(SchemaQuestions, raw) }

// ValidateAnalysisPayload checks an /analyze_responses body.
func ValidateAnalysisPayload(raw []byte) error { return ValidatePayload(SchemaAnalysis, raw) }
