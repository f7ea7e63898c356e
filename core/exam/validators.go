package exam

import (
	"github.com/go-playground/validator/v10"

	"github.com/Rodert/learn-hub/core"
)

var (
	passScoreTag  = "passlte"
	passScoreText = "pass score cannot exceed the total score"
)

func init() {
	core.Validate.RegisterStructValidation(examStructValidation, NewExam{}, UpdateExam{})
	core.RegisterCustomTranslation(core.Validate, core.Translator, passScoreTag, passScoreText)
}

// examStructValidation checks that pass_score <= total_score.
func examStructValidation(sl validator.StructLevel) {
	var ne NewExam
	switch e := sl.Current().Interface().(type) {
	case NewExam:
		ne = e
	case UpdateExam:
		ne = NewExam(e)
	default:
		return
	}
	if ne.PassScore != nil && ne.TotalScore != nil && *ne.PassScore > *ne.TotalScore {
		sl.ReportError(ne.PassScore, "pass_score", "PassScore", passScoreTag, "")
	}
}
