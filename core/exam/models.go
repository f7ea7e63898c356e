package exam

import (
	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/question"
)

// Statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

var StatusLabels = map[string]string{
	StatusDraft:     "Draft",
	StatusPublished: "Published",
	StatusArchived:  "Archived",
}

type Exam struct {
	ID          int                 `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	TotalScore  float64             `json:"total_score"`
	PassScore   float64             `json:"pass_score"`
	TimeLimit   int                 `json:"time_limit"` // minutes
	Status      string              `json:"status"`
	Questions   []question.Question `json:"questions,omitempty"`
	CreatedAt   core.Timestamp      `json:"created_at"`
	UpdatedAt   core.Timestamp      `json:"updated_at"`
}

// NewExam contains information needed to create a new Exam.
type NewExam struct {
	Title       string   `json:"title" validate:"required,notblank,max=255"`
	Description string   `json:"description" validate:"required,notblank"`
	TotalScore  *float64 `json:"total_score" validate:"required,min=1"`
	PassScore   *float64 `json:"pass_score" validate:"required,min=0"`
	TimeLimit   *int     `json:"time_limit" validate:"required,min=1"`
	Status      string   `json:"status" validate:"required,oneof=draft published archived"`
}

func (ne *NewExam) Validate() error {
	ne.Title = core.CleanString(ne.Title)
	return core.ValidateStruct(ne)
}

// UpdateExam defines what information may be provided to modify an existing Exam.
type UpdateExam NewExam

func (ue *UpdateExam) Validate() error {
	ue.Title = core.CleanString(ue.Title)
	return core.ValidateStruct(ue)
}

// Filter narrows the exam list.
type Filter struct {
	Status string
}
