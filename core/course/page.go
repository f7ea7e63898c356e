package course

import (
	"strconv"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/form"
	"github.com/Rodert/learn-hub/core/listing"
)

var (
	contentTypeOptions = []form.Option{
		{Value: strconv.Itoa(ContentVideo), Label: "Video"},
		{Value: strconv.Itoa(ContentText), Label: "Text"},
		{Value: strconv.Itoa(ContentMixed), Label: "Mixed"},
	}
	statusOptions = []form.Option{
		{Value: strconv.Itoa(StatusDraft), Label: "Draft"},
		{Value: strconv.Itoa(StatusPublished), Label: "Published"},
		{Value: strconv.Itoa(StatusUnpublished), Label: "Unpublished"},
	}

	Fields = []form.Field{
		{Name: "title", Label: "Title", Kind: form.KindText},
		{Name: "description", Label: "Description", Kind: form.KindTextarea},
		{Name: "coverImage", Label: "Cover image URL", Kind: form.KindURL},
		{Name: "contentType", Label: "Content type", Kind: form.KindSelect, Options: contentTypeOptions, Default: strconv.Itoa(ContentVideo)},
		{Name: "videoUrl", Label: "Video URL", Kind: form.KindURL, Help: "required for video and mixed courses"},
		{Name: "textContent", Label: "Text content", Kind: form.KindTextarea, Help: "required for text and mixed courses"},
		{Name: "duration", Label: "Duration (seconds)", Kind: form.KindNumber, Default: "0"},
		{Name: "status", Label: "Status", Kind: form.KindSelect, Options: statusOptions, Default: strconv.Itoa(StatusDraft)},
		{Name: "sortOrder", Label: "Sort order", Kind: form.KindNumber, Default: "0"},
	}

	Columns = []listing.Column[Course]{
		{Title: "ID", Value: func(c Course) string { return strconv.Itoa(c.ID) }},
		{Title: "TITLE", Value: func(c Course) string { return core.Preview(c.Title, 40) }},
		{Title: "TYPE", Value: func(c Course) string { return core.Label(ContentTypeLabels, c.ContentType) }},
		{Title: "DURATION", Value: Course.DisplayDuration},
		{Title: "STATUS", Value: func(c Course) string { return core.Label(StatusLabels, c.Status) }},
		{Title: "ORDER", Value: func(c Course) string { return strconv.Itoa(c.SortOrder) }},
		{Title: "UPDATED", Value: func(c Course) string { return c.UpdatedAt.Relative() }},
	}
)

func ID(c Course) int {
	return c.ID
}

// Seed returns the form values of an existing Course.
func Seed(c Course) form.Values {
	return form.Values{
		"title":       c.Title,
		"description": c.Description,
		"coverImage":  c.CoverImage,
		"contentType": strconv.Itoa(c.ContentType),
		"videoUrl":    c.VideoURL,
		"textContent": c.TextContent,
		"duration":    strconv.Itoa(c.Duration),
		"status":      strconv.Itoa(c.Status),
		"sortOrder":   strconv.Itoa(c.SortOrder),
	}
}

// TogglePublishStatus returns the status the publish action moves c to.
func TogglePublishStatus(c Course) int {
	if c.Status == StatusPublished {
		return StatusUnpublished
	}
	return StatusPublished
}

// FormSpec binds the course form to svc.
func FormSpec(svc *Service) form.Spec[Course, NewCourse, UpdateCourse] {
	return form.Spec[Course, NewCourse, UpdateCourse]{
		Entity: "course",
		Fields: Fields,
		Seed:   Seed,
		ID:     ID,
		Create: svc.Create,
		Update: svc.Update,
	}
}
