// Package result turns a terminal payload into the rows and action shown
// on the result screen.
package result

import (
	"fmt"
	"math"

	"github.com/abhisek/courtside/internal/question"
)

// Action is the single forward action offered with a result.
type Action int

const (
	// ActionRestart starts a new assessment from body-part selection.
	ActionRestart Action = iota
	// ActionTreatment opens the treatment (workout) view.
	ActionTreatment
)

// Label returns the button text for the action.
func (a Action) Label() string {
	if a == ActionTreatment {
		return "View Rehab Plan"
	}
	return "Start New Assessment"
}

// Finding is one suspected injury with its confidence.
type Finding struct {
	Name       string
	Confidence float64
}

// Percent returns the confidence as a rounded percentage.
func (f Finding) Percent() int { return Percent(f.Confidence) }

// Label formats the finding as "<name> (<p>%)".
func (f Finding) Label() string {
	return fmt.Sprintf("%s (%d%%)", f.Name, f.Percent())
}

// Percent rounds a fractional confidence to a whole percentage.
func Percent(c float64) int {
	return int(math.Round(c * 100))
}

// Assessment is the read-only summary owned by the result presenter.
type Assessment struct {
	Diagnosis string
	Findings  []Finding
	Doctors   []question.Doctor
	EarlyExit bool
}

// Action returns the forward action for a.
func (a Assessment) Action() Action {
	if len(a.Findings) > 0 {
		return ActionTreatment
	}
	return ActionRestart
}

// FromDiagnosis builds an assessment from parallel injury and confidence
// lists. The lists are validated first.
func FromDiagnosis(injuries []string, confidence []float64) (Assessment, error) {
	if err := question.ValidateDiagnosis(injuries, confidence); err != nil {
		return Assessment{}, err
	}
	a := Assessment{Findings: make([]Finding, len(injuries))}
	for i, name := range injuries {
		a.Findings[i] = Finding{Name: name, Confidence: confidence[i]}
	}
	return a, nil
}

// FromAnalysis builds an assessment from a questionnaire analysis.
func FromAnalysis(an question.Analysis) Assessment {
	return Assessment{
		Diagnosis: an.Diagnosis,
		Doctors:   append([]question.Doctor(nil), an.Doctors...),
	}
}
