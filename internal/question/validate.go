package question

import "strings"

// Validate checks that q carries every field its type guarantees. It fails
// closed: unknown types are rejected rather than guessed at.
func (q Question) Validate() error {
	if !q.Type.Known() {
		return mismatch(q.Type, "type", "unknown question type")
	}

	if q.IsDiagnosis() {
		return ValidateDiagnosis(q.Injuries, q.Confidence)
	}

	if strings.TrimSpace(q.Question) == "" {
		return mismatch(q.Type, "question", "missing prompt")
	}

	if q.Type.HasOptions() {
		if len(q.Options) == 0 {
			return mismatch(q.Type, "options", "no options")
		}
		seen := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			if strings.TrimSpace(o) == "" {
				return mismatch(q.Type, "options", "empty option label")
			}
			if seen[o] {
				return mismatch(q.Type, "options", "duplicate option "+o)
			}
			seen[o] = true
		}
	}
	return nil
}

// ValidateDiagnosis checks the injuries/confidence pair of a terminal payload.
func ValidateDiagnosis(injuries []string, confidence []float64) error {
	if len(injuries) == 0 {
		return mismatch(TypeDiagnosis, "injuries", "empty")
	}
	if len(injuries) != len(confidence) {
		return mismatch(TypeDiagnosis, "confidence", "length differs from injuries")
	}
	for _, c := range confidence {
		if c < 0 || c > 1 {
			return mismatch(TypeDiagnosis, "confidence", "value outside [0,1]")
		}
	}
	return nil
}

// Validate checks the chat envelope. A completed response must carry a
// diagnosis; otherwise the nested question must be renderable or be an
// early diagnosis.
func (r ChatResponse) Validate() error {
	if r.Done {
		return ValidateDiagnosis(r.Content.Injuries, r.Content.Confidence)
	}
	switch r.Content.Type {
	case TypeSubjective, TypeObjective, TypeDiagnosis:
		return r.Content.Validate()
	}
	return mismatch(r.Content.Type, "type", "not an interview type")
}

// ValidateQuestionnaire checks every question of a /get_questions reply.
func ValidateQuestionnaire(qs []Question) error {
	if len(qs) == 0 {
		return mismatch("", "questions", "empty questionnaire")
	}
	for _, q := range qs {
		switch q.Type {
		case TypeChoice, TypeMultiple, TypeScale, TypeText:
		default:
			return mismatch(q.Type, "type", "not a questionnaire type")
		}
		if err := q.Validate(); err != nil {
			return err
		}
	}
	return nil
}
