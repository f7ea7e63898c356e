package course

import (
	"github.com/go-playground/validator/v10"

	"github.com/Rodert/learn-hub/core"
)

var (
	videoURLTag  = "videourl"
	videoURLText = "a video URL is required for video and mixed courses"

	textContentTag  = "textcontent"
	textContentText = "text content is required for text and mixed courses"
)

func init() {
	core.Validate.RegisterStructValidation(courseStructValidation, NewCourse{}, UpdateCourse{})
	core.RegisterCustomTranslation(core.Validate, core.Translator, videoURLTag, videoURLText)
	core.RegisterCustomTranslation(core.Validate, core.Translator, textContentTag, textContentText)
}

// courseStructValidation requires the content matching the content type.
func courseStructValidation(sl validator.StructLevel) {
	var nc NewCourse
	switch c := sl.Current().Interface().(type) {
	case NewCourse:
		nc = c
	case UpdateCourse:
		nc = NewCourse(c)
	default:
		return
	}
	if NeedsVideo(nc.ContentType) && core.CleanString(nc.VideoURL) == "" {
		sl.ReportError(nc.VideoURL, "videoUrl", "VideoURL", videoURLTag, "")
	}
	if NeedsText(nc.ContentType) && core.CleanString(nc.TextContent) == "" {
		sl.ReportError(nc.TextContent, "textContent", "TextContent", textContentTag, "")
	}
}
