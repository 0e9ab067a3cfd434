package api

import (
	"context"
	"net/http"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/foodcatalog/filestore"
	"github.com/rise-and-shine/foodcatalog/internal/food"
	"github.com/rise-and-shine/foodcatalog/internal/food/query"
	"github.com/rise-and-shine/foodcatalog/internal/imagestore"
)

const imageCacheControl = "public, max-age=86400"

// imageInfo reports size and modification time of the record's image.
func (h *Handler) imageInfo(ctx context.Context, in *query.GetInput) (*imageInfoResponse, error) {
	rec, err := h.query.GetByID(ctx, in.ID)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	if !rec.HasImage() {
		return nil, food.ErrNoImage(rec.ID)
	}

	filename, ok := h.images.ResolveReference(*rec.ImageURL)
	if !ok {
		return nil, food.ErrNoImage(rec.ID)
	}

	info, err := h.images.Info(ctx, filename)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	return &imageInfoResponse{Success: true, Data: info}, nil
}

// serveImage streams a stored image from whichever backend is configured.
func (h *Handler) serveImage(c *fiber.Ctx) error {
	filename, ok := h.images.ResolveReference(imagestore.PublicPrefix + c.Params("filename"))
	if !ok {
		return fiber.ErrNotFound
	}

	f, err := h.images.Backend().Get(c.UserContext(), filename)
	if err != nil {
		return errx.Wrap(err)
	}

	contentType := f.Info.ContentType
	if contentType == "" {
		contentType = filestore.ContentTypeByPath(filename)
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderCacheControl, imageCacheControl)
	if !f.Info.LastModified.IsZero() {
		c.Set(fiber.HeaderLastModified, f.Info.LastModified.UTC().Format(http.TimeFormat))
	}

	return c.SendStream(f.Content, int(f.Info.Size))
}
