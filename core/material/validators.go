package material

import (
	"github.com/go-playground/validator/v10"

	"github.com/Rodert/learn-hub/core"
)

func init() {
	core.Validate.RegisterStructValidation(materialStructValidation, NewMaterial{}, UpdateMaterial{})
}

// materialStructValidation requires a file URL for video and file materials.
func materialStructValidation(sl validator.StructLevel) {
	var ct, fileURL string
	switch m := sl.Current().Interface().(type) {
	case NewMaterial:
		ct, fileURL = m.ContentType, m.FileURL
	case UpdateMaterial:
		ct, fileURL = m.ContentType, m.FileURL
	default:
		return
	}
	if NeedsFile(ct) && core.CleanString(fileURL) == "" {
		sl.ReportError(fileURL, "file_url", "FileURL", "required", "")
	}
}
