package exam

import (
	"strconv"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/form"
	"github.com/Rodert/learn-hub/core/listing"
)

var (
	statusOptions = []form.Option{
		{Value: StatusDraft, Label: "Draft"},
		{Value: StatusPublished, Label: "Published"},
		{Value: StatusArchived, Label: "Archived"},
	}

	Fields = []form.Field{
		{Name: "title", Label: "Title", Kind: form.KindText},
		{Name: "description", Label: "Description", Kind: form.KindTextarea},
		{Name: "total_score", Label: "Total score", Kind: form.KindNumber, Default: "100"},
		{Name: "pass_score", Label: "Pass score", Kind: form.KindNumber, Default: "60"},
		{Name: "time_limit", Label: "Time limit (minutes)", Kind: form.KindNumber, Default: "60"},
		{Name: "status", Label: "Status", Kind: form.KindSelect, Options: statusOptions, Default: StatusDraft},
	}

	Columns = []listing.Column[Exam]{
		{Title: "ID", Value: func(e Exam) string { return strconv.Itoa(e.ID) }},
		{Title: "TITLE", Value: func(e Exam) string { return core.Preview(e.Title, 40) }},
		{Title: "SCORE", Value: func(e Exam) string { return formatScore(e.PassScore) + "/" + formatScore(e.TotalScore) }},
		{Title: "TIME", Value: func(e Exam) string { return strconv.Itoa(e.TimeLimit) + " min" }},
		{Title: "STATUS", Value: func(e Exam) string { return core.Label(StatusLabels, e.Status) }},
		{Title: "CREATED", Value: func(e Exam) string { return e.CreatedAt.Relative() }},
	}
)

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func ID(e Exam) int {
	return e.ID
}

// Seed returns the form values of an existing Exam.
func Seed(e Exam) form.Values {
	return form.Values{
		"title":       e.Title,
		"description": e.Description,
		"total_score": formatScore(e.TotalScore),
		"pass_score":  formatScore(e.PassScore),
		"time_limit":  strconv.Itoa(e.TimeLimit),
		"status":      e.Status,
	}
}

// FormSpec binds the exam form to svc.
func FormSpec(svc *Service) form.Spec[Exam, NewExam, UpdateExam] {
	return form.Spec[Exam, NewExam, UpdateExam]{
		Entity: "exam",
		Fields: Fields,
		Seed:   Seed,
		ID:     ID,
		Create: svc.Create,
		Update: svc.Update,
	}
}
