// Package web is the browser front end. It serves server-rendered pages
// for the intake, the adaptive interview, the questionnaire and the
// result, sharing every rule with the terminal UI.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/abhisek/courtside/internal/api"
	"github.com/abhisek/courtside/internal/assessment"
	"github.com/abhisek/courtside/internal/intake"
	"github.com/abhisek/courtside/internal/interview"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"index", "interview", "questionnaire", "result", "defect", "workout"}

// Server serves the web UI.
type Server struct {
	client     api.Client
	defects    interview.DefectReporter
	engine     assessment.Engine
	permission assessment.Permission
	sdkKey     string
	logger     *slog.Logger
	parts      []intake.Part

	sessions *sessions
	pages    map[string]*template.Template
	fragment *template.Template

	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithDefectReporter routes schema mismatches seen by interviews to r.
func WithDefectReporter(r interview.DefectReporter) Option {
	return func(s *Server) { s.defects = r }
}

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithEngine enables the workout page.
func WithEngine(e assessment.Engine, perm assessment.Permission, key string) Option {
	return func(s *Server) {
		s.engine = e
		s.permission = perm
		s.sdkKey = key
	}
}

// WithMaxSessions bounds the number of live browser sessions.
func WithMaxSessions(n int) Option {
	return func(s *Server) {
		if sess, err := newSessions(n); err == nil {
			s.sessions = sess
		}
	}
}

// New creates a Server backed by client.
func New(client api.Client, opts ...Option) (*Server, error) {
	s := &Server{client: client, parts: intake.DefaultParts}
	for _, o := range opts {
		o(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.sessions == nil {
		sess, err := newSessions(DefaultMaxSessions)
		if err != nil {
			return nil, err
		}
		s.sessions = sess
	}
	if err := s.loadTemplates(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) loadTemplates() error {
	base, err := template.ParseFS(templateFS, "templates/layout.html", "templates/question.html")
	if err != nil {
		return fmt.Errorf("parse layout: %w", err)
	}
	s.fragment = base
	s.pages = make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.Must(base.Clone()).ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		s.pages[name] = t
	}
	return nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /interview", s.handleStartInterview)
	mux.HandleFunc("POST /interview/answer", s.handleAnswer)
	mux.HandleFunc("POST /questionnaire", s.handleStartQuestionnaire)
	mux.HandleFunc("POST /questionnaire/submit", s.handleSubmitQuestionnaire)
	mux.HandleFunc("POST /workout", s.handleWorkout)
	mux.HandleFunc("POST /restart", s.handleRestart)
	return mux
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("web server listening", "addr", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the listener and abandons every live session.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}
	s.sessions.cache.Purge()
	return err
}

func (s *Server) render(w http.ResponseWriter, status int, page string, data any) {
	t, ok := s.pages[page]
	if !ok {
		http.Error(w, "unknown page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		s.logger.Error("render page", "page", page, "error", err)
	}
}
