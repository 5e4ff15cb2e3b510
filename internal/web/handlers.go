package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/abhisek/courtside/internal/assessment"
	"github.com/abhisek/courtside/internal/form"
	"github.com/abhisek/courtside/internal/intake"
	"github.com/abhisek/courtside/internal/interview"
	"github.com/abhisek/courtside/internal/question"
	"github.com/abhisek/courtside/internal/questionnaire"
	"github.com/abhisek/courtside/internal/result"
)

type indexPage struct {
	Title    string
	Parts    []intake.Part
	Selected string
	Error    string
}

type interviewPage struct {
	Title       string
	Turn        int
	Form        template.HTML
	Submittable bool
	Error       string
}

type questionnairePage struct {
	Title    string
	BodyPart string
	Forms    []template.HTML
	Complete bool
	Error    string
}

type resultPage struct {
	Title       string
	Diagnosis   string
	Findings    []result.Finding
	Doctors     []question.Doctor
	EarlyExit   bool
	Treatment   bool
	ActionLabel string
}

type defectPage struct {
	Title string
	Error string
}

type workoutPage struct {
	Title  string
	Status string
	Ready  bool
	Log    []string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "index", indexPage{Parts: s.parts})
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	s.sessions.drop(r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleStartInterview(w http.ResponseWriter, r *http.Request) {
	bodyPart := r.PostFormValue("body_part")
	seed, err := intake.Seed(bodyPart)
	if err != nil {
		s.render(w, http.StatusBadRequest, "index", indexPage{Parts: s.parts, Error: err.Error()})
		return
	}

	e := s.sessions.create(w, r)
	e.mu.Lock()
	defer e.mu.Unlock()

	opts := []interview.Option{interview.WithLogger(s.logger)}
	if s.defects != nil {
		opts = append(opts, interview.WithDefectReporter(s.defects))
	}
	if !e.setDriver(interview.New(s.client, opts...)) {
		s.logger.Debug("session evicted before interview start")
	}

	out, err := e.driver.Start(r.Context(), seed)
	if err != nil {
		s.failInterview(w, r, e, err, func() {
			s.render(w, http.StatusBadGateway, "index", indexPage{Parts: s.parts, Selected: seed, Error: err.Error()})
		})
		return
	}
	s.advance(w, r, e, out)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	_, e := s.sessions.get(r)
	if e == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.driver == nil || e.form == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bindForm(e.form, "", r.PostForm)
	if !e.form.Submittable() {
		s.renderQuestion(w, e, http.StatusUnprocessableEntity, "Please answer the question")
		return
	}
	a, err := e.form.Submit()
	if err != nil {
		s.renderQuestion(w, e, http.StatusUnprocessableEntity, err.Error())
		return
	}

	out, err := e.driver.Submit(r.Context(), a)
	if err != nil {
		e.form.Reopen()
		s.failInterview(w, r, e, err, func() {
			s.renderQuestion(w, e, http.StatusBadGateway, err.Error())
		})
		return
	}
	s.advance(w, r, e, out)
}

// failInterview renders the defect page for schema mismatches and calls
// retry for everything else.
func (s *Server) failInterview(w http.ResponseWriter, r *http.Request, e *entry, err error, retry func()) {
	if errors.Is(err, question.ErrSchemaMismatch) {
		s.render(w, http.StatusBadGateway, "defect", defectPage{Title: "Problem", Error: err.Error()})
		return
	}
	s.logger.Warn("interview request failed", "error", err)
	retry()
}

func (s *Server) advance(w http.ResponseWriter, r *http.Request, e *entry, out interview.Outcome) {
	switch out.State {
	case interview.Terminal:
		a, err := result.FromDiagnosis(out.Diagnosis.Injuries, out.Diagnosis.Confidence)
		if err != nil {
			s.render(w, http.StatusBadGateway, "defect", defectPage{Title: "Problem", Error: err.Error()})
			return
		}
		a.EarlyExit = out.Diagnosis.EarlyExit
		s.sessions.drop(r)
		s.renderResult(w, a)

	case interview.AwaitingAnswer:
		f, err := form.New(*out.Question, nil)
		if err != nil {
			s.render(w, http.StatusBadGateway, "defect", defectPage{Title: "Problem", Error: err.Error()})
			return
		}
		e.form = f
		s.renderQuestion(w, e, http.StatusOK, "")

	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (s *Server) renderQuestion(w http.ResponseWriter, e *entry, status int, errMsg string) {
	html, err := HTMLRenderer{tmpl: s.fragment}.Render(e.form)
	if err != nil {
		s.render(w, http.StatusBadGateway, "defect", defectPage{Title: "Problem", Error: err.Error()})
		return
	}
	s.render(w, status, "interview", interviewPage{
		Title:       "Interview",
		Turn:        len(e.driver.Session().History),
		Form:        template.HTML(html),
		Submittable: e.form.Submittable(),
		Error:       errMsg,
	})
}

func (s *Server) renderResult(w http.ResponseWriter, a result.Assessment) {
	s.render(w, http.StatusOK, "result", resultPage{
		Title:       "Assessment",
		Diagnosis:   a.Diagnosis,
		Findings:    a.Findings,
		Doctors:     a.Doctors,
		EarlyExit:   a.EarlyExit,
		Treatment:   a.Action() == result.ActionTreatment && s.engine != nil,
		ActionLabel: s.actionLabel(a),
	})
}

func (s *Server) actionLabel(a result.Assessment) string {
	if a.Action() == result.ActionTreatment && s.engine == nil {
		return result.ActionRestart.Label()
	}
	return a.Action().Label()
}

func (s *Server) handleStartQuestionnaire(w http.ResponseWriter, r *http.Request) {
	bodyPart := r.PostFormValue("body_part")
	if _, err := intake.Seed(bodyPart); err != nil {
		s.render(w, http.StatusBadRequest, "index", indexPage{Parts: s.parts, Error: err.Error()})
		return
	}

	q, err := questionnaire.Load(r.Context(), s.client, bodyPart)
	if err != nil {
		if errors.Is(err, question.ErrSchemaMismatch) {
			s.render(w, http.StatusBadGateway, "defect", defectPage{Title: "Problem", Error: err.Error()})
			return
		}
		s.render(w, http.StatusBadGateway, "index", indexPage{Parts: s.parts, Selected: bodyPart, Error: err.Error()})
		return
	}

	e := s.sessions.create(w, r)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.questionnaire = q
	s.renderQuestionnaire(w, e, http.StatusOK, "")
}

func (s *Server) handleSubmitQuestionnaire(w http.ResponseWriter, r *http.Request) {
	_, e := s.sessions.get(r)
	if e == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.questionnaire == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for i, f := range e.questionnaire.Forms() {
		bindForm(f, prefix(i), r.PostForm)
	}

	a, err := e.questionnaire.Submit(r.Context())
	switch {
	case errors.Is(err, questionnaire.ErrUnanswered):
		s.renderQuestionnaire(w, e, http.StatusUnprocessableEntity, "Please answer every question")
		return
	case err != nil:
		s.logger.Warn("questionnaire submit failed", "error", err)
		s.renderQuestionnaire(w, e, http.StatusBadGateway, err.Error())
		return
	}

	s.sessions.drop(r)
	s.renderResult(w, a)
}

func (s *Server) renderQuestionnaire(w http.ResponseWriter, e *entry, status int, errMsg string) {
	q := e.questionnaire
	page := questionnairePage{
		Title:    "Questionnaire",
		BodyPart: q.BodyPart(),
		Complete: q.Complete(),
		Error:    errMsg,
	}
	for i, f := range q.Forms() {
		html, err := HTMLRenderer{Prefix: prefix(i), tmpl: s.fragment}.Render(f)
		if err != nil {
			s.render(w, http.StatusBadGateway, "defect", defectPage{Title: "Problem", Error: err.Error()})
			return
		}
		page.Forms = append(page.Forms, template.HTML(html))
	}
	s.render(w, status, "questionnaire", page)
}

func (s *Server) handleWorkout(w http.ResponseWriter, r *http.Request) {
	if s.engine == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	log := assessment.NewLog()
	st := assessment.BootCheck(r.Context(), s.permission, s.engine, s.sdkKey)
	log.Add(st.Message())
	if st.State == assessment.BootOK {
		sub := s.engine.Events().Subscribe()
		_, _ = assessment.Run(r.Context(), s.engine, assessment.KindFitness, log)
		drainEvents(r.Context(), sub, log)
	}

	s.render(w, http.StatusOK, "workout", workoutPage{
		Title:  "Workout",
		Status: st.Message(),
		Ready:  st.State == assessment.BootOK,
		Log:    log.Lines(),
	})
}

// drainEvents logs whatever the engine published during a run and closes
// the subscription.
func drainEvents(ctx context.Context, sub *assessment.Subscription, log *assessment.Log) {
	defer sub.Close()
	for {
		select {
		case e := <-sub.C():
			log.Add(e.String())
		case <-ctx.Done():
			return
		default:
			return
		}
	}
}

func prefix(i int) string {
	return fmt.Sprintf("q%d_", i)
}
