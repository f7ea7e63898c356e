package echoapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/question"
)

type questionApi struct {
	store *Store
}

func registerQuestionAPI(g *echo.Group, store *Store) {
	api := questionApi{store: store}

	qg := g.Group("/questions")
	qg.GET("", api.query)
	qg.POST("", api.create)
	qg.PUT("/:id", api.update)
	qg.DELETE("/:id", api.destroy)
}

func (api *questionApi) query(ctx echo.Context) error {
	qt := ctx.QueryParam("type")
	recs := api.store.Questions.Query(func(q question.Question) bool { return qt == "" || q.QuestionType == qt })
	page, limit := pagination(ctx, "page", "limit")
	return okPage(ctx, recs, page, limit, nil)
}

// fill copies a validated request into q.
func (api *questionApi) fill(q *question.Question, data question.NewQuestion) error {
	if data.ExamID != nil {
		if _, err := api.store.Exams.Get(*data.ExamID); err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "exam_id", Error: "unknown exam"})
		}
	}
	q.ExamID = null.IntFromPtr(data.ExamID)
	q.QuestionType = data.QuestionType
	q.Content = data.Content
	q.Options = nil
	if data.Options != "" {
		q.Options = json.RawMessage(data.Options)
	}
	q.Answer = data.Answer
	q.Explanation = optString(data.Explanation)
	q.Score = *data.Score
	return nil
}

func (api *questionApi) create(ctx echo.Context) error {
	var data question.NewQuestion
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuestion")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	var q question.Question
	if err := api.fill(&q, data); err != nil {
		return err
	}
	q.CreatedAt = core.NewTimestamp(time.Now())
	q.UpdatedAt = q.CreatedAt
	return ok(ctx, http.StatusCreated, api.store.Questions.Insert(q))
}

func (api *questionApi) update(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data question.UpdateQuestion
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateQuestion")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	q, err := api.store.Questions.Update(id, func(q *question.Question) error {
		if err := api.fill(q, question.NewQuestion(data)); err != nil {
			return err
		}
		q.UpdatedAt = core.NewTimestamp(time.Now())
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "updating question")
	}
	return ok(ctx, http.StatusOK, q)
}

func (api *questionApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err := api.store.Questions.Delete(id); err != nil {
		return errors.Wrap(err, "deleting question")
	}
	return ok(ctx, http.StatusOK, nil)
}
