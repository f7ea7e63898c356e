package question

import (
	"github.com/go-playground/validator/v10"

	"github.com/Rodert/learn-hub/core"
)

func init() {
	core.Validate.RegisterStructValidation(questionStructValidation, NewQuestion{}, UpdateQuestion{})
}

// questionStructValidation requires options for choice questions.
func questionStructValidation(sl validator.StructLevel) {
	var nq NewQuestion
	switch q := sl.Current().Interface().(type) {
	case NewQuestion:
		nq = q
	case UpdateQuestion:
		nq = NewQuestion(q)
	default:
		return
	}
	if IsChoice(nq.QuestionType) && nq.Options == "" {
		sl.ReportError(nq.Options, "options", "Options", "required", "")
	}
}
