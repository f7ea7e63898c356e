package role

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/Rodert/learn-hub/core"
)

const basePath = "/admin/roles"

type Service struct {
	api core.Doer
}

func NewService(api core.Doer) *Service {
	return &Service{api: api}
}

// List returns roles. The backend may answer with a bare array, paging is then done by the backend's total.
func (s *Service) List(ctx context.Context, q core.PageQuery[Filter]) (core.Page[Role], error) {
	v := core.PageParams(q.Page, q.Limit)
	if q.Filter.Status != "" {
		v.Set("status", q.Filter.Status)
	}
	env, err := s.api.Do(ctx, core.Request{Method: http.MethodGet, Path: basePath, Query: v})
	if err != nil {
		return core.Page[Role]{}, errors.Wrap(err, "listing roles")
	}
	return core.DecodePage[Role](env, q)
}

func (s *Service) Create(ctx context.Context, nr NewRole) (Role, error) {
	r, err := core.Fetch[Role](ctx, s.api, core.Request{Method: http.MethodPost, Path: basePath, Body: nr})
	return r, errors.Wrap(err, "creating role")
}

func (s *Service) Update(ctx context.Context, id int, ur UpdateRole) (Role, error) {
	r, err := core.Fetch[Role](ctx, s.api, core.Request{Method: http.MethodPut, Path: path(id), Body: ur})
	return r, errors.Wrap(err, "updating role")
}

func (s *Service) Delete(ctx context.Context, id int) error {
	err := core.Send(ctx, s.api, core.Request{Method: http.MethodDelete, Path: path(id)})
	return errors.Wrap(err, "deleting role")
}

// Permissions lists every permission a role can be granted.
func (s *Service) Permissions(ctx context.Context) ([]Permission, error) {
	env, err := s.api.Do(ctx, core.Request{Method: http.MethodGet, Path: "/admin/permissions"})
	if err != nil {
		return nil, errors.Wrap(err, "listing permissions")
	}
	return core.DecodeList[Permission](env)
}

func path(id int) string {
	return basePath + "/" + strconv.Itoa(id)
}
