package echoapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Rodert/learn-hub/core"
	inmemdb "github.com/Rodert/learn-hub/storage/inmem"
)

// pagination reads a 1-based page number & page size from the query params pageKey & limitKey.
func pagination(ctx echo.Context, pageKey, limitKey string) (int, int) {
	page, err := strconv.Atoi(ctx.QueryParam(pageKey))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(ctx.QueryParam(limitKey))
	if err != nil || limit < 1 {
		limit = core.DefaultPageSize
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func paramID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id < 1 {
		return 0, errHttpNotFound
	}
	return id, nil
}

func contains(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}

// ok writes the `{code, message, data}` envelope.
func ok(ctx echo.Context, status int, data interface{}) error {
	return ctx.JSON(status, echo.Map{"code": 0, "message": "success", "data": data})
}

// okPage writes a page of the `{code, message, data: {items, total, page, limit}}` form.
func okPage[T any](ctx echo.Context, recs []T, page, limit int, view func(T) T) error {
	items, total := paginate(recs, page, limit, view)
	return ok(ctx, http.StatusOK, echo.Map{"items": items, "total": total, "page": page, "limit": limit})
}

// okCourse writes the course routes' `{success, data}` envelope.
func okCourse(ctx echo.Context, status int, data interface{}) error {
	body := echo.Map{"success": true}
	if data != nil {
		body["data"] = data
	}
	return ctx.JSON(status, body)
}

// okCoursePage writes the course routes' `{success, data: [...], total, current, pageSize}` page.
func okCoursePage[T any](ctx echo.Context, recs []T, page, limit int) error {
	items, total := paginate[T](recs, page, limit, nil)
	return ctx.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"data":     items,
		"total":    total,
		"current":  page,
		"pageSize": limit,
	})
}

func paginate[T any](recs []T, page, limit int, view func(T) T) ([]T, int) {
	items, total := inmemdb.Paginate(recs, page, limit)
	out := make([]T, len(items))
	for i, item := range items {
		if view != nil {
			item = view(item)
		}
		out[i] = item
	}
	return out, total
}
