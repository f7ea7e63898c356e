// Package progress reads course completion records. They are read-only.
package progress

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/listing"
)

type (
	// CourseRecord is one learner's progress on a course.
	CourseRecord struct {
		UserID      int            `json:"userId"`
		Username    string         `json:"username"`
		Name        string         `json:"name"`
		Progress    int            `json:"progress"` // percent
		Duration    int            `json:"duration"` // seconds
		IsCompleted bool           `json:"isCompleted"`
		CompletedAt core.Timestamp `json:"completedAt"`
		LastStudyAt core.Timestamp `json:"lastStudyAt"`
	}

	// UserRecord is one user's progress on one course.
	UserRecord struct {
		CourseID    int            `json:"courseId"`
		CourseTitle string         `json:"courseTitle"`
		Progress    int            `json:"progress"`
		Duration    int            `json:"duration"`
		IsCompleted bool           `json:"isCompleted"`
		CompletedAt core.Timestamp `json:"completedAt"`
		LastStudyAt core.Timestamp `json:"lastStudyAt"`
	}

	// CourseFilter narrows the learners of one course.
	CourseFilter struct {
		CourseID int
		Username string
	}
)

type Service struct {
	api core.Doer
}

func NewService(api core.Doer) *Service {
	return &Service{api: api}
}

// ByCourse pages through the learners of q.Filter.CourseID.
func (s *Service) ByCourse(ctx context.Context, q core.PageQuery[CourseFilter]) (core.Page[CourseRecord], error) {
	if q.Filter.CourseID <= 0 {
		return core.Page[CourseRecord]{}, errors.New("course id is required")
	}
	p := core.PageParams(q.Page, q.Limit)
	v := map[string][]string{"current": {p.Get("page")}, "pageSize": {p.Get("limit")}}
	if q.Filter.Username != "" {
		v["username"] = []string{q.Filter.Username}
	}
	path := "/admin/course/" + strconv.Itoa(q.Filter.CourseID) + "/progress"
	env, err := s.api.Do(ctx, core.Request{Method: http.MethodGet, Path: path, Query: v})
	if err != nil {
		return core.Page[CourseRecord]{}, errors.Wrap(err, "listing course progress")
	}
	return core.DecodePage[CourseRecord](env, q)
}

// ByUser returns every course progress of user userID.
func (s *Service) ByUser(ctx context.Context, userID int) ([]UserRecord, error) {
	path := "/admin/users/" + strconv.Itoa(userID) + "/progress"
	env, err := s.api.Do(ctx, core.Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return nil, errors.Wrap(err, "listing user progress")
	}
	return core.DecodeList[UserRecord](env)
}

func completion(done bool, at core.Timestamp) string {
	if !done {
		return "no"
	}
	if at.IsZero() {
		return "yes"
	}
	return at.Format("2006-01-02")
}

var (
	CourseColumns = []listing.Column[CourseRecord]{
		{Title: "USER", Value: func(r CourseRecord) string { return strconv.Itoa(r.UserID) }},
		{Title: "USERNAME", Value: func(r CourseRecord) string { return r.Username }},
		{Title: "NAME", Value: func(r CourseRecord) string { return r.Name }},
		{Title: "PROGRESS", Value: func(r CourseRecord) string { return strconv.Itoa(r.Progress) + "%" }},
		{Title: "STUDIED", Value: func(r CourseRecord) string { return core.FormatDuration(r.Duration) }},
		{Title: "COMPLETED", Value: func(r CourseRecord) string { return completion(r.IsCompleted, r.CompletedAt) }},
		{Title: "LAST STUDY", Value: func(r CourseRecord) string { return r.LastStudyAt.Relative() }},
	}

	UserColumns = []listing.Column[UserRecord]{
		{Title: "COURSE", Value: func(r UserRecord) string { return strconv.Itoa(r.CourseID) }},
		{Title: "TITLE", Value: func(r UserRecord) string { return core.Preview(r.CourseTitle, 40) }},
		{Title: "PROGRESS", Value: func(r UserRecord) string { return strconv.Itoa(r.Progress) + "%" }},
		{Title: "STUDIED", Value: func(r UserRecord) string { return core.FormatDuration(r.Duration) }},
		{Title: "COMPLETED", Value: func(r UserRecord) string { return completion(r.IsCompleted, r.CompletedAt) }},
		{Title: "LAST STUDY", Value: func(r UserRecord) string { return r.LastStudyAt.Relative() }},
	}
)
