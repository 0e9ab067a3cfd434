// Package upload provides a fiber middleware that stores one multipart file
// through a filestore.FileStore before the route handler runs.
package upload

import (
	"mime"
	"strings"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/foodcatalog/filestore"
	"github.com/samber/lo"
)

const (
	localsKey = "upload.file"

	codeInvalidMultipartForm = "INVALID_MULTIPART_FORM"

	// DefaultMaxSize is used when Options.MaxSize is zero.
	DefaultMaxSize = 5 << 20

	imageTypePrefix = "image/"
)

// Options restricts what Single accepts.
type Options struct {
	// MaxSize is the largest accepted file in bytes.
	MaxSize int64

	// AllowedContentTypes lists accepted media types. Empty means any image/* type.
	AllowedContentTypes []string
}

// File describes a file saved by Single.
type File struct {
	// Filename is the generated storage name.
	Filename     string
	OriginalName string
	ContentType  string
	Size         int64
}

// Single saves the multipart file under field and exposes it via FromLocals.
//
// Requests that are not multipart, or carry no such field, pass through
// untouched. A file that is too large or of a disallowed type is rejected with
// a validation error and nothing is written to the store.
func Single(field string, store filestore.FileStore, opts Options) fiber.Handler {
	if opts.MaxSize <= 0 {
		opts.MaxSize = DefaultMaxSize
	}

	return func(c *fiber.Ctx) error {
		if !strings.HasPrefix(strings.ToLower(string(c.Request().Header.ContentType())), fiber.MIMEMultipartForm) {
			return c.Next()
		}

		form, err := c.MultipartForm()
		if err != nil {
			return errx.Wrap(err, errx.WithType(errx.T_Validation), errx.WithCode(codeInvalidMultipartForm))
		}

		headers := form.File[field]
		if len(headers) == 0 {
			return c.Next()
		}
		fh := headers[0]

		if fh.Size > opts.MaxSize {
			return errx.New("uploaded file is too large",
				errx.WithType(errx.T_Validation),
				errx.WithCode(filestore.CodeFileTooLarge),
				errx.WithFields(errx.M{field: "File is too large"}),
				errx.WithDetails(errx.D{"size": fh.Size, "max_size": opts.MaxSize}),
			)
		}

		contentType := mediaType(fh.Header.Get(fiber.HeaderContentType))
		if contentType == "" || contentType == filestore.ContentTypeOctetStream {
			contentType = filestore.ContentTypeByPath(fh.Filename)
		}
		if !allowed(contentType, opts.AllowedContentTypes) {
			return errx.New("only image files are allowed",
				errx.WithType(errx.T_Validation),
				errx.WithCode(filestore.CodeUnsupportedContentType),
				errx.WithFields(errx.M{field: "Only image files are allowed"}),
				errx.WithDetails(errx.D{"content_type": contentType}),
			)
		}

		src, err := fh.Open()
		if err != nil {
			return errx.Wrap(err)
		}
		defer src.Close()

		name := filestore.UniqueName(fh.Filename, filestore.ExtensionFor(contentType))
		info, err := store.Upload(c.UserContext(), name, src)
		if err != nil {
			return errx.Wrap(err)
		}

		c.Locals(localsKey, &File{
			Filename:     name,
			OriginalName: fh.Filename,
			ContentType:  contentType,
			Size:         info.Size,
		})

		return c.Next()
	}
}

// FromLocals returns the file saved by Single, or nil when the request had none.
func FromLocals(c *fiber.Ctx) *File {
	f, _ := c.Locals(localsKey).(*File)
	return f
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(mt)
}

func allowed(contentType string, list []string) bool {
	if len(list) == 0 {
		return strings.HasPrefix(contentType, imageTypePrefix)
	}
	return lo.Contains(list, contentType)
}
