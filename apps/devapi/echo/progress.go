package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Rodert/learn-hub/core/progress"
)

type progressApi struct {
	store *Store
}

func registerProgressAPI(g *echo.Group, store *Store) {
	api := progressApi{store: store}
	g.GET("/admin/course/:id/progress", api.byCourse)
}

// byCourse pages through a course's learners with `current` & `pageSize`.
func (api *progressApi) byCourse(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if _, err := api.store.Courses.Get(id); err != nil {
		return errors.Wrap(err, "finding course")
	}

	uname := ctx.QueryParam("username")
	recs := make([]progress.CourseRecord, 0)
	for _, p := range api.store.Progress.Query(func(p progressRecord) bool { return p.CourseID == id }) {
		cr := api.store.courseProgress(p)
		if uname == "" || contains(cr.Username, uname) {
			recs = append(recs, cr)
		}
	}
	page, limit := pagination(ctx, "current", "pageSize")
	items, total := paginate(recs, page, limit, nil)
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "data": items, "total": total})
}
