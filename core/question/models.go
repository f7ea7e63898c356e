package question

import (
	"encoding/json"
	"strings"

	"github.com/volatiletech/null/v8"

	"github.com/Rodert/learn-hub/core"
)

// Question types
const (
	TypeSingleChoice   = "single_choice"
	TypeMultipleChoice = "multiple_choice"
	TypeFillBlank      = "fill_blank"
)

var TypeLabels = map[string]string{
	TypeSingleChoice:   "Single choice",
	TypeMultipleChoice: "Multiple choice",
	TypeFillBlank:      "Fill in the blank",
}

type Question struct {
	ID           int             `json:"id"`
	ExamID       null.Int        `json:"exam_id"`
	QuestionType string          `json:"question_type"`
	Content      string          `json:"content"`
	Options      json.RawMessage `json:"options"`
	Answer       string          `json:"answer"`
	Explanation  null.String     `json:"explanation"`
	Score        float64         `json:"score"`
	CreatedAt    core.Timestamp  `json:"created_at"`
	UpdatedAt    core.Timestamp  `json:"updated_at"`
}

// OptionsText returns the options as sent by the backend, unquoting JSON strings.
func (q Question) OptionsText() string {
	raw := strings.TrimSpace(string(q.Options))
	if raw == "" || raw == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(q.Options, &s); err == nil {
		return s
	}
	return raw
}

// IsChoice reports whether questions of type qt pick among options.
func IsChoice(qt string) bool {
	return qt == TypeSingleChoice || qt == TypeMultipleChoice
}

// NewQuestion contains information needed to create a new Question.
type NewQuestion struct {
	ExamID       *int     `json:"exam_id,omitempty" validate:"omitempty,min=1"`
	QuestionType string   `json:"question_type" validate:"required,oneof=single_choice multiple_choice fill_blank"`
	Content      string   `json:"content" validate:"required,notblank"`
	Options      string   `json:"options,omitempty"`
	Answer       string   `json:"answer" validate:"required,notblank,max=500"`
	Explanation  string   `json:"explanation,omitempty"`
	Score        *float64 `json:"score" validate:"required,min=0,max=100"`
}

func (nq *NewQuestion) Validate() error {
	nq.Answer = core.CleanString(nq.Answer)
	nq.Options = normalizeOptions(nq.Options)
	return core.ValidateStruct(nq)
}

// UpdateQuestion defines what information may be provided to modify an existing Question.
type UpdateQuestion NewQuestion

func (uq *UpdateQuestion) Validate() error {
	uq.Answer = core.CleanString(uq.Answer)
	uq.Options = normalizeOptions(uq.Options)
	return core.ValidateStruct(uq)
}

// normalizeOptions accepts either a JSON array or a "|" separated list of options.
func normalizeOptions(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || json.Valid([]byte(s)) {
		return s
	}
	opts := make([]string, 0)
	for _, o := range strings.Split(s, "|") {
		if o = strings.TrimSpace(o); o != "" {
			opts = append(opts, o)
		}
	}
	b, _ := json.Marshal(opts)
	return string(b)
}

// Filter narrows the question list.
type Filter struct {
	Type string
}
