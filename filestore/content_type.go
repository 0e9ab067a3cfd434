package filestore

import (
	"mime"
	"path/filepath"
	"strings"
)

// Image content types accepted for food images.
const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypeGIF  = "image/gif"
	ContentTypeWebP = "image/webp"
	ContentTypeSVG  = "image/svg+xml"
	ContentTypeBMP  = "image/bmp"

	ContentTypeOctetStream = "application/octet-stream"
)

// extByContentType keeps extensions stable for the common image types,
// mime.ExtensionsByType ordering differs between platforms.
var extByContentType = map[string]string{ //nolint:gochecknoglobals // lookup table
	ContentTypeJPEG: ".jpg",
	ContentTypePNG:  ".png",
	ContentTypeGIF:  ".gif",
	ContentTypeWebP: ".webp",
	ContentTypeSVG:  ".svg",
	ContentTypeBMP:  ".bmp",
}

// ContentTypeByPath guesses the content type from the file extension.
func ContentTypeByPath(path string) string {
	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if ct == "" {
		return ContentTypeOctetStream
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ContentTypeOctetStream
	}
	return mediaType
}

// ExtensionFor returns a file extension (with the leading dot) for the content type,
// or an empty string when none is known.
func ExtensionFor(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	if ext, ok := extByContentType[mediaType]; ok {
		return ext
	}
	exts, err := mime.ExtensionsByType(mediaType)
	if err != nil || len(exts) == 0 {
		return ""
	}
	return exts[0]
}
