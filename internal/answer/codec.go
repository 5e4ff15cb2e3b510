// Package answer converts raw input state into the single string the server
// expects for a question. It is the only place answers are produced.
package answer

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/abhisek/courtside/internal/question"
)

// Separator joins multiple-choice labels.
const Separator = ", "

// Scale bounds.
const (
	ScaleMin     = 1
	ScaleMax     = 10
	ScaleDefault = 5
)

var (
	// ErrIncomplete means the state does not yet hold a submittable answer.
	ErrIncomplete = errors.New("answer incomplete")

	// ErrOutOfRange means a scale value or option index is outside its domain.
	ErrOutOfRange = errors.New("answer out of range")
)

// State is the raw input captured by a rendered form.
type State struct {
	Text     string
	Selected []int // option indexes, each at most once
	Scale    int   // 0 means unset
}

// Has reports whether option i is selected.
func (s State) Has(i int) bool {
	for _, v := range s.Selected {
		if v == i {
			return true
		}
	}
	return false
}

// ScaleValue returns the effective scale value, applying the default.
func (s State) ScaleValue() int {
	if s.Scale == 0 {
		return ScaleDefault
	}
	return s.Scale
}

// Encode produces the wire answer for q from st.
func Encode(q question.Question, st State) (string, error) {
	switch q.Type {
	case question.TypeSubjective, question.TypeText:
		text := strings.TrimSpace(st.Text)
		if text == "" {
			return "", ErrIncomplete
		}
		return text, nil

	case question.TypeObjective, question.TypeChoice:
		if len(st.Selected) != 1 {
			return "", ErrIncomplete
		}
		i := st.Selected[0]
		if i < 0 || i >= len(q.Options) {
			return "", fmt.Errorf("option %d: %w", i, ErrOutOfRange)
		}
		return q.Options[i], nil

	case question.TypeMultiple:
		if len(st.Selected) == 0 {
			return "", ErrIncomplete
		}
		idx := append([]int(nil), st.Selected...)
		sort.Ints(idx)
		labels := make([]string, 0, len(idx))
		for n, i := range idx {
			if i < 0 || i >= len(q.Options) {
				return "", fmt.Errorf("option %d: %w", i, ErrOutOfRange)
			}
			if n > 0 && idx[n-1] == i {
				continue
			}
			labels = append(labels, q.Options[i])
		}
		return strings.Join(labels, Separator), nil

	case question.TypeScale:
		v := st.ScaleValue()
		if v < ScaleMin || v > ScaleMax {
			return "", fmt.Errorf("scale %d: %w", v, ErrOutOfRange)
		}
		return strconv.Itoa(v), nil
	}

	return "", &question.SchemaError{Type: q.Type, Field: "type", Reason: "no answer encoding"}
}

// Valid reports whether st encodes to a submittable answer for q.
func Valid(q question.Question, st State) bool {
	_, err := Encode(q, st)
	return err == nil
}
