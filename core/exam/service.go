package exam

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/Rodert/learn-hub/core"
)

const basePath = "/exams"

type Service struct {
	api core.Doer
}

func NewService(api core.Doer) *Service {
	return &Service{api: api}
}

func (s *Service) List(ctx context.Context, q core.PageQuery[Filter]) (core.Page[Exam], error) {
	v := core.PageParams(q.Page, q.Limit)
	if q.Filter.Status != "" {
		v.Set("status", q.Filter.Status)
	}
	env, err := s.api.Do(ctx, core.Request{Method: http.MethodGet, Path: basePath, Query: v})
	if err != nil {
		return core.Page[Exam]{}, errors.Wrap(err, "listing exams")
	}
	return core.DecodePage[Exam](env, q)
}

func (s *Service) Create(ctx context.Context, ne NewExam) (Exam, error) {
	e, err := core.Fetch[Exam](ctx, s.api, core.Request{Method: http.MethodPost, Path: basePath, Body: ne})
	return e, errors.Wrap(err, "creating exam")
}

func (s *Service) Update(ctx context.Context, id int, ue UpdateExam) (Exam, error) {
	e, err := core.Fetch[Exam](ctx, s.api, core.Request{Method: http.MethodPut, Path: path(id), Body: ue})
	return e, errors.Wrap(err, "updating exam")
}

func (s *Service) Delete(ctx context.Context, id int) error {
	err := core.Send(ctx, s.api, core.Request{Method: http.MethodDelete, Path: path(id)})
	return errors.Wrap(err, "deleting exam")
}

func path(id int) string {
	return basePath + "/" + strconv.Itoa(id)
}
