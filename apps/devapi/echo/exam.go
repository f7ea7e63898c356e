package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/exam"
	"github.com/Rodert/learn-hub/core/question"
)

type examApi struct {
	store *Store
}

func registerExamAPI(g *echo.Group, store *Store) {
	api := examApi{store: store}

	eg := g.Group("/exams")
	eg.GET("", api.query)
	eg.POST("", api.create)
	eg.GET("/:id", api.retrieve)
	eg.PUT("/:id", api.update)
	eg.DELETE("/:id", api.destroy)
}

func (api *examApi) query(ctx echo.Context) error {
	status := ctx.QueryParam("status")
	recs := api.store.Exams.Query(func(e exam.Exam) bool { return status == "" || e.Status == status })
	page, limit := pagination(ctx, "page", "limit")
	return okPage(ctx, recs, page, limit, nil)
}

// retrieve includes the exam's questions.
func (api *examApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	e, err := api.store.Exams.Get(id)
	if err != nil {
		return errors.Wrap(err, "finding exam")
	}
	e.Questions = api.store.Questions.Query(func(q question.Question) bool { return q.ExamID.Valid && q.ExamID.Int == id })
	return ok(ctx, http.StatusOK, e)
}

func (api *examApi) create(ctx echo.Context) error {
	var data exam.NewExam
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewExam")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	now := core.NewTimestamp(time.Now())
	e := api.store.Exams.Insert(exam.Exam{
		Title:       data.Title,
		Description: data.Description,
		TotalScore:  *data.TotalScore,
		PassScore:   *data.PassScore,
		TimeLimit:   *data.TimeLimit,
		Status:      data.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	return ok(ctx, http.StatusCreated, e)
}

func (api *examApi) update(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data exam.UpdateExam
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateExam")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	e, err := api.store.Exams.Update(id, func(e *exam.Exam) error {
		e.Title = data.Title
		e.Description = data.Description
		e.TotalScore = *data.TotalScore
		e.PassScore = *data.PassScore
		e.TimeLimit = *data.TimeLimit
		e.Status = data.Status
		e.UpdatedAt = core.NewTimestamp(time.Now())
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "updating exam")
	}
	return ok(ctx, http.StatusOK, e)
}

// destroy detaches the exam's questions from it.
func (api *examApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err := api.store.Exams.Delete(id); err != nil {
		return errors.Wrap(err, "deleting exam")
	}
	for _, q := range api.store.Questions.Query(func(q question.Question) bool { return q.ExamID.Valid && q.ExamID.Int == id }) {
		_, _ = api.store.Questions.Update(q.ID, func(q *question.Question) error {
			q.ExamID.Valid = false
			return nil
		})
	}
	return ok(ctx, http.StatusOK, nil)
}
