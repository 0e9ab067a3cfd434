package api

import (
	"context"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/foodcatalog/http/server/forward"
	"github.com/rise-and-shine/foodcatalog/http/server/upload"
	"github.com/rise-and-shine/foodcatalog/internal/food"
	"github.com/rise-and-shine/foodcatalog/internal/food/query"
)

func (h *Handler) create(c *fiber.Ctx) error {
	staged := stagedFile(c)

	in, err := forward.Decode[*food.CreateInput](c)
	if err != nil {
		h.dropUnused(c, staged)
		return errx.Wrap(err)
	}

	rec, err := h.manager.Create(c.UserContext(), *in, staged)
	if err != nil {
		return errx.Wrap(err)
	}

	return c.Status(fiber.StatusCreated).JSON(foodResponse{Success: true, Data: rec, Message: msgCreated})
}

func (h *Handler) update(c *fiber.Ctx) error {
	staged := stagedFile(c)

	in, err := forward.Decode[*food.UpdateInput](c)
	if err != nil {
		h.dropUnused(c, staged)
		return errx.Wrap(err)
	}

	rec, err := h.manager.Update(c.UserContext(), *in, staged)
	if err != nil {
		return errx.Wrap(err)
	}

	return c.JSON(foodResponse{Success: true, Data: rec, Message: msgUpdated})
}

func (h *Handler) list(ctx context.Context, in *query.ListInput) (*listResponse, error) {
	res, err := h.query.List(ctx, *in)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	return &listResponse{Success: true, Data: res.Items, Count: res.Count}, nil
}

func (h *Handler) get(ctx context.Context, in *query.GetInput) (*foodResponse, error) {
	rec, err := h.query.GetByID(ctx, in.ID)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	return &foodResponse{Success: true, Data: rec}, nil
}

func (h *Handler) delete(ctx context.Context, in *query.GetInput) (*messageResponse, error) {
	err := h.manager.Delete(ctx, in.ID)
	if err != nil {
		return nil, errx.Wrap(err)
	}
	return &messageResponse{Success: true, Message: msgDeleted}, nil
}

// stagedFile converts the upload saved by the upload middleware, if any.
func stagedFile(c *fiber.Ctx) *food.StagedFile {
	f := upload.FromLocals(c)
	if f == nil {
		return nil
	}
	return &food.StagedFile{Filename: f.Filename}
}

// dropUnused deletes a staged upload whose request never reached the lifecycle manager.
func (h *Handler) dropUnused(c *fiber.Ctx, staged *food.StagedFile) {
	if staged == nil {
		return
	}
	removed := h.images.Delete(c.UserContext(), staged.Filename)
	h.log.WithContext(c.UserContext()).
		With("filename", staged.Filename).
		With("removed", removed).
		Info("discarded upload of a rejected request")
}
