package middleware

import (
	"runtime"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/foodcatalog/http/server"
	"github.com/rise-and-shine/foodcatalog/logger"
)

const stackTraceSize = 4096

// NewRecoveryMW creates a middleware that recovers from panics in the request
// handling chain, logs them and writes a 500 response.
func NewRecoveryMW(log logger.Logger, hideDetails bool) server.Middleware {
	log = log.Named("middleware.recovery")

	return server.Middleware{
		Priority: 1000,
		Handler: func(c *fiber.Ctx) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				stackTrace := make([]byte, stackTraceSize)
				stackTrace = stackTrace[:runtime.Stack(stackTrace, false)]

				log.WithContext(c.UserContext()).
					With("stack_trace", string(stackTrace)).
					With("panic_message", r).
					Error("recovered from panic")

				err = server.WriteErrorResponse(c, errx.New("panic recovered", errx.WithDetails(errx.D{
					"panic_message": r,
				})), hideDetails)
			}()

			return c.Next()
		},
	}
}
