package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/abhisek/courtside/internal/question"
)

const (
	instrumentationName = "github.com/abhisek/courtside/internal/api"
	maxBodyBytes        = 1 << 20
	defaultTimeout      = 30 * time.Second
)

// HTTPClient implements Client over JSON POSTs.
type HTTPClient struct {
	baseURL  string
	http     *http.Client
	tracer   trace.Tracer
	duration metric.Float64Histogram
	failures metric.Int64Counter
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithTracer sets the tracer used for request spans.
func WithTracer(t trace.Tracer) Option {
	return func(h *HTTPClient) { h.tracer = t }
}

// WithMeter sets the meter used for request metrics.
func WithMeter(m metric.Meter) Option {
	return func(h *HTTPClient) { h.instrument(m) }
}

// NewHTTPClient creates a client for the server at baseURL. A zero timeout
// uses the default of 30s.
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	h := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tracer:  otel.Tracer(instrumentationName),
	}
	h.instrument(otel.Meter(instrumentationName))
	for _, o := range opts {
		o(h)
	}
	return h
}

func (h *HTTPClient) instrument(m metric.Meter) {
	d, err := m.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		d = noop.Float64Histogram{}
	}
	f, err := m.Int64Counter(
		"courtside.api.failures",
		metric.WithDescription("Failed round trips to the triage server"),
	)
	if err != nil {
		f = noop.Int64Counter{}
	}
	h.duration, h.failures = d, f
}

// Next implements Client.
func (h *HTTPClient) Next(ctx context.Context, req question.ChatRequest) (*question.ChatResponse, error) {
	var resp question.ChatResponse
	if err := h.post(ctx, PathNext, req, question.ValidateChatPayload, &resp); err != nil {
		return nil, err
	}
	if err := resp.Validate(); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Questions implements Client.
func (h *HTTPClient) Questions(ctx context.Context, bodyPart string) ([]question.Question, error) {
	var resp question.QuestionsResponse
	if err := h.post(ctx, PathQuestions, question.QuestionsRequest{BodyPart: bodyPart}, question.ValidateQuestionsPayload, &resp); err != nil {
		return nil, err
	}
	if err := question.ValidateQuestionnaire(resp.Questions); err != nil {
		return nil, err
	}
	return resp.Questions, nil
}

// Analyze implements Client.
func (h *HTTPClient) Analyze(ctx context.Context, responses []question.Response) (*question.Analysis, error) {
	var resp question.Analysis
	if err := h.post(ctx, PathAnalyze, question.AnalyzeRequest{Responses: responses}, question.ValidateAnalysisPayload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (h *HTTPClient) post(ctx context.Context, path string, body any, validate func([]byte) error, out any) (err error) {
	ctx, span := h.tracer.Start(ctx, "POST "+path, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	start := time.Now()
	status := 0
	defer func() {
		attrs := metric.WithAttributes(
			attribute.String("http.route", path),
			attribute.Int("http.response.status_code", status),
		)
		h.duration.Record(ctx, float64(time.Since(start).Milliseconds()), attrs)
		if err != nil {
			h.failures.Add(ctx, 1, attrs)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &TransportError{Endpoint: path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := h.http.Do(req)
	if err != nil {
		return &TransportError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()
	status = resp.StatusCode
	span.SetAttributes(attribute.Int("http.response.status_code", status))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &TransportError{Endpoint: path, Status: status, Err: fmt.Errorf("read body: %w", err)}
	}

	if status < 200 || status > 299 {
		return &TransportError{Endpoint: path, Status: status, Err: fmt.Errorf("unexpected status: %s", snippet(raw))}
	}

	if err := validate(raw); err != nil {
		if errors.Is(err, question.ErrMalformedJSON) {
			return &TransportError{Endpoint: path, Status: status, Err: err}
		}
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &TransportError{Endpoint: path, Status: status, Err: fmt.Errorf("%w: %v", question.ErrMalformedJSON, err)}
	}
	return nil
}

func snippet(b []byte) string {
	const n = 200
	s := strings.TrimSpace(string(b))
	if len(s) > n {
		s = s[:n] + "..."
	}
	if s == "" {
		return "empty body"
	}
	return s
}
