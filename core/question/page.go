package question

import (
	"strconv"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/form"
	"github.com/Rodert/learn-hub/core/listing"
)

var (
	typeOptions = []form.Option{
		{Value: TypeSingleChoice, Label: "Single choice"},
		{Value: TypeMultipleChoice, Label: "Multiple choice"},
		{Value: TypeFillBlank, Label: "Fill in the blank"},
	}

	Fields = []form.Field{
		{Name: "question_type", Label: "Type", Kind: form.KindSelect, Options: typeOptions, Default: TypeSingleChoice},
		{Name: "content", Label: "Content", Kind: form.KindTextarea},
		{Name: "options", Label: "Options", Kind: form.KindTextarea, Help: `JSON array or "A|B|C"; required for choice questions`},
		{Name: "answer", Label: "Answer", Kind: form.KindText},
		{Name: "explanation", Label: "Explanation", Kind: form.KindTextarea},
		{Name: "score", Label: "Score", Kind: form.KindNumber, Default: "1", Help: "0-100"},
		{Name: "exam_id", Label: "Exam ID", Kind: form.KindNumber},
	}

	Columns = []listing.Column[Question]{
		{Title: "ID", Value: func(q Question) string { return strconv.Itoa(q.ID) }},
		{Title: "TYPE", Value: func(q Question) string { return core.Label(TypeLabels, q.QuestionType) }},
		{Title: "CONTENT", Value: func(q Question) string { return core.Preview(q.Content, 48) }},
		{Title: "ANSWER", Value: func(q Question) string { return core.Preview(q.Answer, 16) }},
		{Title: "SCORE", Value: func(q Question) string { return strconv.FormatFloat(q.Score, 'f', -1, 64) }},
		{Title: "EXAM", Value: func(q Question) string {
			if !q.ExamID.Valid {
				return "-"
			}
			return strconv.Itoa(q.ExamID.Int)
		}},
	}
)

func ID(q Question) int {
	return q.ID
}

// Seed returns the form values of an existing Question.
func Seed(q Question) form.Values {
	vals := form.Values{
		"question_type": q.QuestionType,
		"content":       q.Content,
		"options":       q.OptionsText(),
		"answer":        q.Answer,
		"explanation":   q.Explanation.String,
		"score":         strconv.FormatFloat(q.Score, 'f', -1, 64),
	}
	if q.ExamID.Valid {
		vals["exam_id"] = strconv.Itoa(q.ExamID.Int)
	}
	return vals
}

// FormSpec binds the question form to svc.
func FormSpec(svc *Service) form.Spec[Question, NewQuestion, UpdateQuestion] {
	return form.Spec[Question, NewQuestion, UpdateQuestion]{
		Entity: "question",
		Fields: Fields,
		Seed:   Seed,
		ID:     ID,
		Create: svc.Create,
		Update: svc.Update,
	}
}
