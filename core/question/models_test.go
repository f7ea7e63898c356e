package question

import (
	"encoding/json"
	"testing"

	"github.com/Rodert/learn-hub/core"
)

func TestNewQuestion_Validate(t *testing.T) {
	score := 5.0
	tests := []struct {
		name        string
		nq          NewQuestion
		wantField   string
		wantOptions string
	}{
		{name: "fill blank", nq: NewQuestion{QuestionType: TypeFillBlank, Content: "Go was released in ____", Answer: " 2009 ", Score: &score}},
		{name: "pipe options", nq: NewQuestion{QuestionType: TypeSingleChoice, Content: "Pick", Options: "A | B|", Answer: "A", Score: &score}, wantOptions: `["A","B"]`},
		{name: "json options", nq: NewQuestion{QuestionType: TypeMultipleChoice, Content: "Pick", Options: `["x","y"]`, Answer: "x", Score: &score}, wantOptions: `["x","y"]`},
		{name: "choice without options", nq: NewQuestion{QuestionType: TypeSingleChoice, Content: "Pick", Answer: "A", Score: &score}, wantField: "options"},
		{name: "missing score", nq: NewQuestion{QuestionType: TypeFillBlank, Content: "Q", Answer: "A"}, wantField: "score"},
		{name: "unknown type", nq: NewQuestion{QuestionType: "essay", Content: "Q", Answer: "A", Score: &score}, wantField: "question_type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.nq.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error = %v", err)
				}
				if tt.wantOptions != "" && tt.nq.Options != tt.wantOptions {
					t.Errorf("Options = %s, want %s", tt.nq.Options, tt.wantOptions)
				}
				return
			}
			vErr, ok := err.(*core.ValidationError)
			if !ok {
				t.Fatalf("Validate() error = %v, want *core.ValidationError", err)
			}
			if _, ok := vErr.FieldMap()[tt.wantField]; !ok {
				t.Errorf("field errors = %v, want %s", vErr.FieldMap(), tt.wantField)
			}
		})
	}
}

func TestQuestion_OptionsText(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: `null`, want: ""},
		{raw: `"[\"A\",\"B\"]"`, want: `["A","B"]`},
		{raw: `["A","B"]`, want: `["A","B"]`},
	}
	for _, tt := range tests {
		q := Question{Options: json.RawMessage(tt.raw)}
		if got := q.OptionsText(); got != tt.want {
			t.Errorf("OptionsText(%s) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}
