package material

import (
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/form"
	"github.com/Rodert/learn-hub/core/listing"
)

var (
	contentTypeOptions = []form.Option{
		{Value: ContentText, Label: "Text"},
		{Value: ContentVideo, Label: "Video"},
		{Value: ContentFile, Label: "File"},
		{Value: ContentMixed, Label: "Mixed"},
	}
	statusOptions = []form.Option{
		{Value: StatusDraft, Label: "Draft"},
		{Value: StatusPublished, Label: "Published"},
		{Value: StatusArchived, Label: "Archived"},
	}

	Fields = []form.Field{
		{Name: "title", Label: "Title", Kind: form.KindText},
		{Name: "description", Label: "Description", Kind: form.KindTextarea},
		{Name: "content_type", Label: "Content type", Kind: form.KindSelect, Options: contentTypeOptions, Default: ContentText},
		{Name: "content", Label: "Content", Kind: form.KindTextarea},
		{Name: "file_url", Label: "File URL", Kind: form.KindURL, Help: "required for video and file materials"},
		{Name: "file_size", Label: "File size (bytes)", Kind: form.KindNumber},
		{Name: "cover_url", Label: "Cover URL", Kind: form.KindURL},
		{Name: "status", Label: "Status", Kind: form.KindSelect, Options: statusOptions, EditOnly: true},
	}

	Columns = []listing.Column[Material]{
		{Title: "ID", Value: func(m Material) string { return strconv.Itoa(m.ID) }},
		{Title: "TITLE", Value: func(m Material) string { return core.Preview(m.Title, 40) }},
		{Title: "TYPE", Value: func(m Material) string { return core.Label(ContentTypeLabels, m.ContentType) }},
		{Title: "SIZE", Value: func(m Material) string {
			if !m.FileSize.Valid || m.FileSize.Int64 <= 0 {
				return "-"
			}
			return humanize.Bytes(uint64(m.FileSize.Int64))
		}},
		{Title: "STATUS", Value: func(m Material) string { return core.Label(StatusLabels, m.Status) }},
		{Title: "UPDATED", Value: func(m Material) string { return m.UpdatedAt.Relative() }},
	}
)

func ID(m Material) int {
	return m.ID
}

// Seed returns the form values of an existing Material.
func Seed(m Material) form.Values {
	vals := form.Values{
		"title":        m.Title,
		"description":  m.Description,
		"content_type": m.ContentType,
		"content":      m.Content,
		"file_url":     m.FileURL.String,
		"cover_url":    m.CoverURL.String,
		"status":       m.Status,
	}
	if m.FileSize.Valid {
		vals["file_size"] = strconv.FormatInt(m.FileSize.Int64, 10)
	}
	return vals
}

// FormSpec binds the material form to svc.
func FormSpec(svc *Service) form.Spec[Material, NewMaterial, UpdateMaterial] {
	return form.Spec[Material, NewMaterial, UpdateMaterial]{
		Entity: "material",
		Fields: Fields,
		Seed:   Seed,
		ID:     ID,
		Create: svc.Create,
		Update: svc.Update,
	}
}
