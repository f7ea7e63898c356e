package question

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/Rodert/learn-hub/core"
)

const basePath = "/questions"

type Service struct {
	api core.Doer
}

func NewService(api core.Doer) *Service {
	return &Service{api: api}
}

func (s *Service) List(ctx context.Context, q core.PageQuery[Filter]) (core.Page[Question], error) {
	v := core.PageParams(q.Page, q.Limit)
	if q.Filter.Type != "" {
		v.Set("type", q.Filter.Type)
	}
	env, err := s.api.Do(ctx, core.Request{Method: http.MethodGet, Path: basePath, Query: v})
	if err != nil {
		return core.Page[Question]{}, errors.Wrap(err, "listing questions")
	}
	return core.DecodePage[Question](env, q)
}

func (s *Service) Create(ctx context.Context, nq NewQuestion) (Question, error) {
	q, err := core.Fetch[Question](ctx, s.api, core.Request{Method: http.MethodPost, Path: basePath, Body: nq})
	return q, errors.Wrap(err, "creating question")
}

func (s *Service) Update(ctx context.Context, id int, uq UpdateQuestion) (Question, error) {
	q, err := core.Fetch[Question](ctx, s.api, core.Request{Method: http.MethodPut, Path: path(id), Body: uq})
	return q, errors.Wrap(err, "updating question")
}

func (s *Service) Delete(ctx context.Context, id int) error {
	err := core.Send(ctx, s.api, core.Request{Method: http.MethodDelete, Path: path(id)})
	return errors.Wrap(err, "deleting question")
}

func path(id int) string {
	return basePath + "/" + strconv.Itoa(id)
}
