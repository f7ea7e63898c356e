package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/material"
)

type materialApi struct {
	store *Store
}

func registerMaterialAPI(g *echo.Group, store *Store) {
	api := materialApi{store: store}

	mg := g.Group("/materials")
	mg.GET("", api.query)
	mg.POST("", api.create)
	mg.GET("/:id", api.retrieve)
	mg.PUT("/:id", api.update)
	mg.DELETE("/:id", api.destroy)
}

func optString(s string) null.String {
	return null.NewString(s, s != "")
}

func optInt64(i int64) null.Int64 {
	return null.NewInt64(i, i > 0)
}

func (api *materialApi) query(ctx echo.Context) error {
	status := ctx.QueryParam("status")
	recs := api.store.Materials.Query(func(m material.Material) bool { return status == "" || m.Status == status })
	page, limit := pagination(ctx, "page", "limit")
	return okPage(ctx, recs, page, limit, nil)
}

func (api *materialApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	m, err := api.store.Materials.Get(id)
	if err != nil {
		return errors.Wrap(err, "finding material")
	}
	return ok(ctx, http.StatusOK, m)
}

func (api *materialApi) create(ctx echo.Context) error {
	var data material.NewMaterial
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMaterial")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	now := core.NewTimestamp(time.Now())
	m := api.store.Materials.Insert(material.Material{
		Title:       data.Title,
		Description: data.Description,
		ContentType: data.ContentType,
		Content:     data.Content,
		FileURL:     optString(data.FileURL),
		FileSize:    optInt64(data.FileSize),
		CoverURL:    optString(data.CoverURL),
		Status:      material.StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	return ok(ctx, http.StatusCreated, m)
}

func (api *materialApi) update(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data material.UpdateMaterial
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateMaterial")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	m, err := api.store.Materials.Update(id, func(m *material.Material) error {
		m.Title = data.Title
		m.Description = data.Description
		m.ContentType = data.ContentType
		m.Content = data.Content
		m.FileURL = optString(data.FileURL)
		m.FileSize = optInt64(data.FileSize)
		m.CoverURL = optString(data.CoverURL)
		m.Status = data.Status
		m.UpdatedAt = core.NewTimestamp(time.Now())
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "updating material")
	}
	return ok(ctx, http.StatusOK, m)
}

func (api *materialApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err := api.store.Materials.Delete(id); err != nil {
		return errors.Wrap(err, "deleting material")
	}
	return ok(ctx, http.StatusOK, nil)
}
