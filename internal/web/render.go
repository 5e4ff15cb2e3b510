package web

import (
	"bytes"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/abhisek/courtside/internal/answer"
	"github.com/abhisek/courtside/internal/form"
	"github.com/abhisek/courtside/internal/question"
)

// HTMLRenderer draws a form as an HTML fieldset. Prefix namespaces the
// input names so several forms can share one <form> element.
type HTMLRenderer struct {
	Prefix string
	tmpl   *template.Template
}

var _ form.Renderer = HTMLRenderer{}

type optionView struct {
	Index    int
	Label    string
	Selected bool
}

type questionView struct {
	prefix     string
	Type       question.Type
	Prompt     string
	Text       bool
	Scale      bool
	Multiple   bool
	State      answer.State
	Options    []optionView
	ScaleMin   int
	ScaleMax   int
	ScaleValue int
}

// Name returns the namespaced input name for field.
func (v questionView) Name(field string) string {
	return v.prefix + field
}

// Render implements form.Renderer.
func (r HTMLRenderer) Render(f *form.Form) (string, error) {
	q := f.Question()
	st := f.State()

	v := questionView{
		prefix:     r.Prefix,
		Type:       q.Type,
		Prompt:     q.Question,
		State:      st,
		ScaleMin:   answer.ScaleMin,
		ScaleMax:   answer.ScaleMax,
		ScaleValue: st.ScaleValue(),
	}
	switch q.Type {
	case question.TypeSubjective, question.TypeText:
		v.Text = true
	case question.TypeScale:
		v.Scale = true
	case question.TypeObjective, question.TypeChoice, question.TypeMultiple:
		v.Multiple = q.Type == question.TypeMultiple
		for i, opt := range q.Options {
			v.Options = append(v.Options, optionView{Index: i, Label: opt, Selected: st.Has(i)})
		}
	default:
		return "", &question.SchemaError{Type: q.Type, Field: "type", Reason: "no HTML input for type"}
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "question", v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// bindForm copies posted field values into f. Missing fields leave the
// current state alone, except checkboxes, whose absence means unchecked.
func bindForm(f *form.Form, prefix string, values url.Values) {
	q := f.Question()
	switch q.Type {
	case question.TypeSubjective, question.TypeText:
		if vs, ok := values[prefix+"text"]; ok && len(vs) > 0 {
			f.SetText(strings.TrimSpace(vs[0]))
		}

	case question.TypeScale:
		if n, err := strconv.Atoi(values.Get(prefix + "scale")); err == nil {
			f.SetScale(n)
		}

	case question.TypeObjective, question.TypeChoice:
		if n, err := strconv.Atoi(values.Get(prefix + "option")); err == nil {
			f.Select(n)
		}

	case question.TypeMultiple:
		want := make(map[int]bool)
		for _, raw := range values[prefix+"option"] {
			if n, err := strconv.Atoi(raw); err == nil {
				want[n] = true
			}
		}
		st := f.State()
		for i := range q.Options {
			if st.Has(i) != want[i] {
				f.Toggle(i)
			}
		}
	}
}
