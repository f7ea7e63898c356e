package material

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/Rodert/learn-hub/core"
)

const basePath = "/materials"

type Service struct {
	api core.Doer
}

func NewService(api core.Doer) *Service {
	return &Service{api: api}
}

func (s *Service) List(ctx context.Context, q core.PageQuery[Filter]) (core.Page[Material], error) {
	v := core.PageParams(q.Page, q.Limit)
	if q.Filter.Status != "" {
		v.Set("status", q.Filter.Status)
	}
	env, err := s.api.Do(ctx, core.Request{Method: http.MethodGet, Path: basePath, Query: v})
	if err != nil {
		return core.Page[Material]{}, errors.Wrap(err, "listing materials")
	}
	return core.DecodePage[Material](env, q)
}

func (s *Service) Create(ctx context.Context, nm NewMaterial) (Material, error) {
	m, err := core.Fetch[Material](ctx, s.api, core.Request{Method: http.MethodPost, Path: basePath, Body: nm})
	return m, errors.Wrap(err, "creating material")
}

func (s *Service) Update(ctx context.Context, id int, um UpdateMaterial) (Material, error) {
	m, err := core.Fetch[Material](ctx, s.api, core.Request{Method: http.MethodPut, Path: path(id), Body: um})
	return m, errors.Wrap(err, "updating material")
}

func (s *Service) Delete(ctx context.Context, id int) error {
	err := core.Send(ctx, s.api, core.Request{Method: http.MethodDelete, Path: path(id)})
	return errors.Wrap(err, "deleting material")
}

func path(id int) string {
	return basePath + "/" + strconv.Itoa(id)
}
