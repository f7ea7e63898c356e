package course

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/Rodert/learn-hub/core"
)

const basePath = "/course"

type Service struct {
	api core.Doer
}

func NewService(api core.Doer) *Service {
	return &Service{api: api}
}

// List pages through courses. The course endpoints use `current` & `pageSize`.
func (s *Service) List(ctx context.Context, q core.PageQuery[Filter]) (core.Page[Course], error) {
	v := pageParams(q.Page, q.Limit)
	if q.Filter.Title != "" {
		v.Set("title", q.Filter.Title)
	}
	if q.Filter.Status != nil {
		v.Set("status", strconv.Itoa(*q.Filter.Status))
	}
	env, err := s.api.Do(ctx, core.Request{Method: http.MethodGet, Path: basePath + "/list", Query: v})
	if err != nil {
		return core.Page[Course]{}, errors.Wrap(err, "listing courses")
	}
	return core.DecodePage[Course](env, q)
}

func (s *Service) Get(ctx context.Context, id int) (Course, error) {
	c, err := core.Fetch[Course](ctx, s.api, core.Request{Method: http.MethodGet, Path: path(id)})
	return c, errors.Wrap(err, "getting course")
}

func (s *Service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	c, err := core.Fetch[Course](ctx, s.api, core.Request{Method: http.MethodPost, Path: basePath, Body: nc})
	return c, errors.Wrap(err, "creating course")
}

func (s *Service) Update(ctx context.Context, id int, uc UpdateCourse) (Course, error) {
	c, err := core.Fetch[Course](ctx, s.api, core.Request{Method: http.MethodPut, Path: path(id), Body: uc})
	return c, errors.Wrap(err, "updating course")
}

func (s *Service) Delete(ctx context.Context, id int) error {
	err := core.Send(ctx, s.api, core.Request{Method: http.MethodDelete, Path: path(id)})
	return errors.Wrap(err, "deleting course")
}

// Publish sets the course status to StatusPublished or StatusUnpublished.
func (s *Service) Publish(ctx context.Context, id, status int) error {
	req := PublishRequest{Status: status}
	if err := core.ValidateStruct(req); err != nil {
		return err
	}
	err := core.Send(ctx, s.api, core.Request{Method: http.MethodPost, Path: path(id) + "/publish", Body: req})
	return errors.Wrap(err, "publishing course")
}

func path(id int) string {
	return basePath + "/" + strconv.Itoa(id)
}

func pageParams(page, size int) url.Values {
	v := core.PageParams(page, size)
	return url.Values{"current": {v.Get("page")}, "pageSize": {v.Get("limit")}}
}
