// Package api exposes the food catalog over HTTP.
package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/foodcatalog/http/server/forward"
	"github.com/rise-and-shine/foodcatalog/http/server/upload"
	"github.com/rise-and-shine/foodcatalog/internal/food/lifecycle"
	"github.com/rise-and-shine/foodcatalog/internal/food/query"
	"github.com/rise-and-shine/foodcatalog/internal/imagestore"
	"github.com/rise-and-shine/foodcatalog/logger"
)

const (
	imageField = "image"

	msgCreated = "Food item created successfully"
	msgUpdated = "Food item updated successfully"
	msgDeleted = "Food item deleted successfully"
)

// Handler serves the /api/foods and /api/uploads/foods routes.
type Handler struct {
	manager *lifecycle.Manager
	query   *query.Facade
	images  *imagestore.Store
	upload  upload.Options
	log     logger.Logger
}

// New creates a Handler.
func New(manager *lifecycle.Manager, q *query.Facade, images *imagestore.Store, opts upload.Options) *Handler {
	return &Handler{
		manager: manager,
		query:   q,
		images:  images,
		upload:  opts,
		log:     logger.Named("food.api"),
	}
}

// Register mounts all routes on r.
func (h *Handler) Register(r fiber.Router) {
	saveImage := upload.Single(imageField, h.images.Backend(), h.upload)

	foods := r.Group("/api/foods")
	foods.Post("/", saveImage, h.create)
	foods.Get("/", forward.ToUseCase(h.list))
	foods.Get("/:id", forward.ToUseCase(h.get))
	foods.Put("/:id", saveImage, h.update)
	foods.Delete("/:id", forward.ToUseCase(h.delete))
	foods.Get("/:id/image-info", forward.ToUseCase(h.imageInfo))

	r.Get(imagestore.PublicPrefix+":filename", h.serveImage)
}
