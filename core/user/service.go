package user

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/Rodert/learn-hub/core"
)

const basePath = "/admin/users"

type Service struct {
	api core.Doer
}

func NewService(api core.Doer) *Service {
	return &Service{api: api}
}

func (s *Service) List(ctx context.Context, q core.PageQuery[Filter]) (core.Page[User], error) {
	v := core.PageParams(q.Page, q.Limit)
	if q.Filter.Status != "" {
		v.Set("status", q.Filter.Status)
	}
	if q.Filter.Username != "" {
		v.Set("username", q.Filter.Username)
	}
	env, err := s.api.Do(ctx, core.Request{Method: http.MethodGet, Path: basePath, Query: v})
	if err != nil {
		return core.Page[User]{}, errors.Wrap(err, "listing users")
	}
	return core.DecodePage[User](env, q)
}

func (s *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	u, err := core.Fetch[User](ctx, s.api, core.Request{Method: http.MethodPost, Path: basePath, Body: nu})
	return u, errors.Wrap(err, "creating user")
}

func (s *Service) Update(ctx context.Context, id int, uu UpdateUser) (User, error) {
	u, err := core.Fetch[User](ctx, s.api, core.Request{Method: http.MethodPut, Path: Path(id), Body: uu})
	return u, errors.Wrap(err, "updating user")
}

func (s *Service) Delete(ctx context.Context, id int) error {
	err := core.Send(ctx, s.api, core.Request{Method: http.MethodDelete, Path: Path(id)})
	return errors.Wrap(err, "deleting user")
}

// Path returns the detail path of user id.
func Path(id int) string {
	return basePath + "/" + strconv.Itoa(id)
}
