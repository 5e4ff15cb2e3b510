package question

// Type discriminates which input surface and answer encoding apply.
type Type string

// Adaptive interview types (POST /chat/next).
const (
	TypeSubjective Type = "subjective"
	TypeObjective  Type = "objective"
	TypeDiagnosis  Type = "diagnosis"
)

// Questionnaire types (POST /get_questions).
const (
	TypeChoice   Type = "choice"
	TypeMultiple Type = "multiple"
	TypeScale    Type = "scale"
	TypeText     Type = "text"
)

// Known reports whether t is a type the clients understand.
func (t Type) Known() bool {
	switch t {
	case TypeSubjective, TypeObjective, TypeDiagnosis,
		TypeChoice, TypeMultiple, TypeScale, TypeText:
		return true
	}
	return false
}

// HasOptions reports whether questions of this type carry option labels.
func (t Type) HasOptions() bool {
	return t == TypeObjective || t == TypeChoice || t == TypeMultiple
}

// Question is the wire description of one interview question. Diagnosis
// questions carry no prompt; they carry parallel Injuries and Confidence
// lists instead.
type Question struct {
	Type       Type      `json:"type"`
	Question   string    `json:"question,omitempty"`
	Options    []string  `json:"options,omitempty"`
	Injuries   []string  `json:"injuries,omitempty"`
	Confidence []float64 `json:"confidence,omitempty"`
}

// IsDiagnosis reports whether the question is a terminal diagnosis payload.
func (q Question) IsDiagnosis() bool {
	return q.Type == TypeDiagnosis
}

// ChatRequest is the body of POST /chat/next.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	UserInput string `json:"user_input"`
}

// ChatResponse is the reply of POST /chat/next.
type ChatResponse struct {
	SessionID string   `json:"session_id"`
	Content   Question `json:"content"`
	Done      bool     `json:"done"`
}

// QuestionsRequest is the body of POST /get_questions.
type QuestionsRequest struct {
	BodyPart string `json:"body_part"`
}

// QuestionsResponse is the reply of POST /get_questions.
type QuestionsResponse struct {
	Questions []Question `json:"questions"`
}

// Response is one answered questionnaire item sent to POST /analyze_responses.
type Response struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Type     Type   `json:"type"`
	BodyPart string `json:"body_part"`
}

// AnalyzeRequest is the body of POST /analyze_responses.
type AnalyzeRequest struct {
	Responses []Response `json:"responses"`
}

// Doctor is a recommended specialist.
type Doctor struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Location  string `json:"location"`
	Contact   string `json:"contact"`
}

// Analysis is the reply of POST /analyze_responses.
type Analysis struct {
	Diagnosis string   `json:"diagnosis"`
	Doctors   []Doctor `json:"doctors"`
}
