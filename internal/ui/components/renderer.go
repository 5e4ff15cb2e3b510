package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/courtside/internal/answer"
	"github.com/abhisek/courtside/internal/form"
	"github.com/abhisek/courtside/internal/question"
	"github.com/abhisek/courtside/internal/ui/theme"
)

// TerminalRenderer draws a form as styled terminal text. Cursor and Input
// carry widget state that lives outside the form.
type TerminalRenderer struct {
	Cursor int
	Width  int
	Input  string // rendered text input; empty draws the captured text
}

var _ form.Renderer = TerminalRenderer{}

// Render implements form.Renderer.
func (r TerminalRenderer) Render(f *form.Form) (string, error) {
	q := f.Question()
	st := f.State()

	var b strings.Builder
	prompt := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if r.Width > 4 {
		prompt = prompt.Width(r.Width - 4)
	}
	b.WriteString(prompt.Render(q.Question))
	b.WriteString("\n\n")

	switch q.Type {
	case question.TypeSubjective, question.TypeText:
		input := r.Input
		if input == "" {
			input = "> " + st.Text
		}
		b.WriteString(input)
		b.WriteString("\n")

	case question.TypeObjective, question.TypeChoice, question.TypeMultiple:
		for i, opt := range q.Options {
			b.WriteString(r.option(q.Type, i, opt, st.Has(i)))
			b.WriteString("\n")
		}

	case question.TypeScale:
		b.WriteString(renderScale(st.ScaleValue()))
		b.WriteString("\n")

	default:
		return "", &question.SchemaError{Type: q.Type, Field: "type", Reason: "no terminal input for type"}
	}

	b.WriteString("\n")
	b.WriteString(submitHint(f))
	return b.String(), nil
}

func (r TerminalRenderer) option(t question.Type, i int, label string, selected bool) string {
	mark := "( )"
	if selected {
		mark = "(•)"
	}
	if t == question.TypeMultiple {
		mark = "[ ]"
		if selected {
			mark = "[x]"
		}
	}

	prefix := "    "
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if i == r.Cursor {
		prefix = "  ▸ "
		style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	if selected && i != r.Cursor {
		style = lipgloss.NewStyle().Foreground(theme.Secondary)
	}
	return style.Render(fmt.Sprintf("%s%d. %s %s", prefix, i+1, mark, label))
}

func renderScale(v int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %d ", answer.ScaleMin)))
	for i := answer.ScaleMin; i <= answer.ScaleMax; i++ {
		if i == v {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("●"))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render("─"))
		}
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" %d", answer.ScaleMax)))
	b.WriteString("   ")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(fmt.Sprintf("%d", v)))
	return b.String()
}

func submitHint(f *form.Form) string {
	switch {
	case f.Submitted():
		return theme.Hint.Render("Sending...")
	case f.Submittable():
		return theme.ButtonActive.Render("Enter  Submit")
	}
	return theme.ButtonInactive.Render("Answer to continue")
}
