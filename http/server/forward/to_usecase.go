package forward

import (
	"context"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
)

// useCaseMethod is a use case method that takes a request and returns a response.
type useCaseMethod[T_Req any, T_Resp any] func(context.Context, T_Req) (T_Resp, error)

// ToUseCase forwards a request to a use case that returns a response.
// It handles request decoding, validation, and response encoding with status 200.
func ToUseCase[T_Req any, T_Resp any](uc useCaseMethod[T_Req, T_Resp]) fiber.Handler {
	return ToUseCaseWithStatus(fiber.StatusOK, uc)
}

// ToUseCaseWithStatus is ToUseCase with an explicit success status code.
func ToUseCaseWithStatus[T_Req any, T_Resp any](status int, uc useCaseMethod[T_Req, T_Resp]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := Decode[T_Req](c)
		if err != nil {
			return errx.Wrap(err)
		}

		resp, err := uc(c.UserContext(), req)
		if err != nil {
			return errx.Wrap(err)
		}

		return errx.Wrap(c.Status(status).JSON(resp))
	}
}
