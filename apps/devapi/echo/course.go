package echoapi

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/course"
)

type courseApi struct {
	store *Store
}

func registerCourseAPI(g *echo.Group, store *Store) {
	api := courseApi{store: store}

	cg := g.Group("/course")
	cg.GET("/list", api.query)
	cg.POST("", api.create)
	cg.GET("/:id", api.retrieve)
	cg.PUT("/:id", api.update)
	cg.DELETE("/:id", api.destroy)
	cg.POST("/:id/publish", api.publish)
}

// query pages with `current` & `pageSize`, ordered by sortOrder then id.
func (api *courseApi) query(ctx echo.Context) error {
	title := ctx.QueryParam("title")
	status, statusErr := strconv.Atoi(ctx.QueryParam("status"))
	recs := api.store.Courses.Query(func(c course.Course) bool {
		return (title == "" || contains(c.Title, title)) && (statusErr != nil || c.Status == status)
	})
	sortCourses(recs)
	page, limit := pagination(ctx, "current", "pageSize")
	return okCoursePage(ctx, recs, page, limit)
}

func sortCourses(recs []course.Course) {
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].SortOrder < recs[j].SortOrder })
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	c, err := api.store.Courses.Get(id)
	if err != nil {
		return errors.Wrap(err, "finding course")
	}
	return okCourse(ctx, http.StatusOK, c)
}

func fillCourse(c *course.Course, data course.NewCourse) {
	c.Title = data.Title
	c.Description = data.Description
	c.CoverImage = data.CoverImage
	c.ContentType = data.ContentType
	c.VideoURL = data.VideoURL
	c.TextContent = data.TextContent
	c.Duration = data.Duration
	c.Status = data.Status
	c.SortOrder = data.SortOrder
}

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	var c course.Course
	fillCourse(&c, data)
	c.CreatedAt = core.NewTimestamp(time.Now())
	c.UpdatedAt = c.CreatedAt
	return okCourse(ctx, http.StatusOK, api.store.Courses.Insert(c))
}

func (api *courseApi) update(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data course.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	c, err := api.store.Courses.Update(id, func(c *course.Course) error {
		fillCourse(c, course.NewCourse(data))
		c.UpdatedAt = core.NewTimestamp(time.Now())
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return okCourse(ctx, http.StatusOK, c)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err := api.store.Courses.Delete(id); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	for _, p := range api.store.Progress.Query(func(p progressRecord) bool { return p.CourseID == id }) {
		_ = api.store.Progress.Delete(p.ID)
	}
	return okCourse(ctx, http.StatusOK, nil)
}

func (api *courseApi) publish(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data course.PublishRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PublishRequest")
	}
	if err := core.ValidateStruct(data); err != nil {
		return err
	}

	c, err := api.store.Courses.Update(id, func(c *course.Course) error {
		c.Status = data.Status
		c.UpdatedAt = core.NewTimestamp(time.Now())
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "publishing course")
	}
	return okCourse(ctx, http.StatusOK, c)
}
