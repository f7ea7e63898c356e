package course

import (
	"github.com/Rodert/learn-hub/core"
)

// Content types
const (
	ContentVideo = 1
	ContentText  = 2
	ContentMixed = 3
)

// Statuses
const (
	StatusDraft       = 0
	StatusPublished   = 1
	StatusUnpublished = 2
)

var (
	ContentTypeLabels = map[int]string{
		ContentVideo: "Video",
		ContentText:  "Text",
		ContentMixed: "Mixed",
	}
	StatusLabels = map[int]string{
		StatusDraft:       "Draft",
		StatusPublished:   "Published",
		StatusUnpublished: "Unpublished",
	}
)

type Course struct {
	ID          int            `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	CoverImage  string         `json:"coverImage"`
	ContentType int            `json:"contentType"`
	VideoURL    string         `json:"videoUrl"`
	TextContent string         `json:"textContent"`
	Duration    int            `json:"duration"` // seconds
	Status      int            `json:"status"`
	SortOrder   int            `json:"sortOrder"`
	CreatedAt   core.Timestamp `json:"createdAt"`
	UpdatedAt   core.Timestamp `json:"updatedAt"`
}

// DisplayDuration renders the duration as m:ss, "-" for text courses.
func (c Course) DisplayDuration() string {
	if c.ContentType == ContentText {
		return "-"
	}
	return core.FormatDuration(c.Duration)
}

// NeedsVideo reports whether courses of content type ct must carry a video URL.
func NeedsVideo(ct int) bool {
	return ct == ContentVideo || ct == ContentMixed
}

// NeedsText reports whether courses of content type ct must carry text content.
func NeedsText(ct int) bool {
	return ct == ContentText || ct == ContentMixed
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Title       string `json:"title" validate:"required,notblank,max=255"`
	Description string `json:"description"`
	CoverImage  string `json:"coverImage,omitempty" validate:"omitempty,url"`
	ContentType int    `json:"contentType" validate:"required,oneof=1 2 3"`
	VideoURL    string `json:"videoUrl,omitempty" validate:"omitempty,url"`
	TextContent string `json:"textContent,omitempty"`
	Duration    int    `json:"duration" validate:"min=0"`
	Status      int    `json:"status" validate:"oneof=0 1 2"`
	SortOrder   int    `json:"sortOrder" validate:"min=0"`
}

func (nc *NewCourse) Validate() error {
	nc.Title = core.CleanString(nc.Title)
	nc.CoverImage = core.CleanString(nc.CoverImage)
	nc.VideoURL = core.CleanString(nc.VideoURL)
	return core.ValidateStruct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
type UpdateCourse NewCourse

func (uc *UpdateCourse) Validate() error {
	uc.Title = core.CleanString(uc.Title)
	uc.CoverImage = core.CleanString(uc.CoverImage)
	uc.VideoURL = core.CleanString(uc.VideoURL)
	return core.ValidateStruct(uc)
}

// PublishRequest toggles a course between published and unpublished.
type PublishRequest struct {
	Status int `json:"status" validate:"oneof=1 2"`
}

// Filter narrows the course list. A nil Status lists every status.
type Filter struct {
	Title  string
	Status *int
}
