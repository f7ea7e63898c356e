package material

import (
	"github.com/volatiletech/null/v8"

	"github.com/Rodert/learn-hub/core"
)

// Content types
const (
	ContentText  = "text"
	ContentVideo = "video"
	ContentFile  = "file"
	ContentMixed = "mixed"
)

// Statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

var (
	ContentTypeLabels = map[string]string{
		ContentText:  "Text",
		ContentVideo: "Video",
		ContentFile:  "File",
		ContentMixed: "Mixed",
	}
	StatusLabels = map[string]string{
		StatusDraft:     "Draft",
		StatusPublished: "Published",
		StatusArchived:  "Archived",
	}
)

type Material struct {
	ID          int            `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	ContentType string         `json:"content_type"`
	Content     string         `json:"content"`
	FileURL     null.String    `json:"file_url"`
	FileSize    null.Int64     `json:"file_size"`
	CoverURL    null.String    `json:"cover_url"`
	Status      string         `json:"status"`
	CreatedAt   core.Timestamp `json:"created_at"`
	UpdatedAt   core.Timestamp `json:"updated_at"`
}

// NeedsFile reports whether materials of content type ct must carry a file URL.
func NeedsFile(ct string) bool {
	return ct == ContentVideo || ct == ContentFile
}

// NewMaterial contains information needed to create a new Material.
type NewMaterial struct {
	Title       string `json:"title" validate:"required,notblank,max=255"`
	Description string `json:"description" validate:"required,notblank"`
	ContentType string `json:"content_type" validate:"required,oneof=text video file mixed"`
	Content     string `json:"content" validate:"required"`
	FileURL     string `json:"file_url,omitempty" validate:"omitempty,url,max=500"`
	FileSize    int64  `json:"file_size,omitempty" validate:"min=0"`
	CoverURL    string `json:"cover_url,omitempty" validate:"omitempty,url,max=500"`
}

func (nm *NewMaterial) Validate() error {
	nm.Title = core.CleanString(nm.Title)
	nm.FileURL = core.CleanString(nm.FileURL)
	nm.CoverURL = core.CleanString(nm.CoverURL)
	return core.ValidateStruct(nm)
}

// UpdateMaterial defines what information may be provided to modify an existing Material.
type UpdateMaterial struct {
	Title       string `json:"title" validate:"required,notblank,max=255"`
	Description string `json:"description" validate:"required,notblank"`
	ContentType string `json:"content_type" validate:"required,oneof=text video file mixed"`
	Content     string `json:"content" validate:"required"`
	FileURL     string `json:"file_url" validate:"omitempty,url,max=500"`
	FileSize    int64  `json:"file_size,omitempty" validate:"min=0"`
	CoverURL    string `json:"cover_url" validate:"omitempty,url,max=500"`
	Status      string `json:"status" validate:"required,oneof=draft published archived"`
}

func (um *UpdateMaterial) Validate() error {
	um.Title = core.CleanString(um.Title)
	um.FileURL = core.CleanString(um.FileURL)
	um.CoverURL = core.CleanString(um.CoverURL)
	return core.ValidateStruct(um)
}

// Filter narrows the material list.
type Filter struct {
	Status string
}
