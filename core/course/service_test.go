package course_test

import (
	"context"
	"testing"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/course"
	"github.com/Rodert/learn-hub/tests"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	svc := course.NewService(testutil.NewAdminClient(t))

	page, err := svc.List(ctx, core.PageQuery[course.Filter]{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List() unexpected error = %v", err)
	}
	if page.Total != 2 || len(page.Items) != 2 {
		t.Fatalf("List() = %d items of %d, want 2 of 2", len(page.Items), page.Total)
	}
	if page.Items[0].SortOrder > page.Items[1].SortOrder {
		t.Error("courses not ordered by sort order")
	}

	drafts, err := svc.List(ctx, core.PageQuery[course.Filter]{Page: 1, Limit: 10, Filter: course.Filter{Status: core.IntPtr(course.StatusDraft)}})
	if err != nil {
		t.Fatal(err)
	}
	if drafts.Total != 1 || drafts.Items[0].Title != "Code of conduct" {
		t.Errorf("draft courses = %+v", drafts.Items)
	}

	created, err := svc.Create(ctx, course.NewCourse{
		Title:       "Security basics",
		ContentType: course.ContentVideo,
		VideoURL:    "https://cdn.example.com/security.mp4",
		Duration:    90,
	})
	if err != nil {
		t.Fatalf("Create() unexpected error = %v", err)
	}
	if created.ID == 0 || created.DisplayDuration() != "1:30" {
		t.Errorf("Create() = %+v", created)
	}

	uc := course.UpdateCourse{
		Title:       created.Title,
		ContentType: course.ContentMixed,
		VideoURL:    created.VideoURL,
		TextContent: "<p>Read this first</p>",
		Duration:    created.Duration,
		SortOrder:   3,
	}
	updated, err := svc.Update(ctx, created.ID, uc)
	if err != nil {
		t.Fatalf("Update() unexpected error = %v", err)
	}
	if updated.ContentType != course.ContentMixed || updated.SortOrder != 3 {
		t.Errorf("Update() = %+v", updated)
	}

	if err := svc.Publish(ctx, created.ID, course.TogglePublishStatus(updated)); err != nil {
		t.Fatalf("Publish() unexpected error = %v", err)
	}
	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != course.StatusPublished {
		t.Errorf("Status = %d, want published", got.Status)
	}
	if err := svc.Publish(ctx, created.ID, course.StatusDraft); err == nil {
		t.Error("Publish() to draft should fail validation")
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() unexpected error = %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !core.IsStatus(err, 404) {
		t.Errorf("Get() after delete error = %v, want 404", err)
	}
}
