package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/foodcatalog/http/server"
)

// NewErrorHandlerMW creates a middleware that converts handler errors into
// standardized JSON responses via server.WriteErrorResponse.
//
// When hideDetails is false, error trace and details are included in the response.
// The error is still returned so outer middlewares (logger, tracing) can see it.
func NewErrorHandlerMW(hideDetails bool) server.Middleware {
	return server.Middleware{
		Priority: 400,
		Handler: func(c *fiber.Ctx) error {
			err := c.Next()
			if err == nil {
				return nil
			}

			// already written by someone else
			if c.Response().StatusCode() >= fiber.StatusBadRequest {
				return err
			}

			return server.WriteErrorResponse(c, err, hideDetails)
		},
	}
}
