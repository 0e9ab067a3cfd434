package middleware

import (
	"runtime"
	"time"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/foodcatalog/http/server"
	"github.com/rise-and-shine/foodcatalog/logger"
)

// NewLoggerMW creates a middleware that logs every request once it is handled.
//
// The level follows the response status: info for 2xx/3xx, warn for 4xx and
// error for 5xx. Panics below this middleware are turned into errors so the
// request is still logged with its metadata.
func NewLoggerMW(log logger.Logger) server.Middleware {
	log = log.Named("middleware.logger")

	return server.Middleware{
		Priority: 500,
		Handler: func(c *fiber.Ctx) error {
			start := time.Now()

			err := handleWithRecovery(c)

			statusCode := c.Response().StatusCode()
			if err != nil && statusCode < fiber.StatusBadRequest {
				statusCode = fiber.StatusInternalServerError
			}

			reqLog := log.WithContext(c.UserContext()).
				With("http_status_code", statusCode).
				With("http_method", c.Method()).
				With("http_path", c.Path()).
				With("http_route", c.Route().Path).
				With("duration", time.Since(start)).
				With("query_params", c.Queries()).
				With("request_size", c.Request().Header.ContentLength()).
				With("response_size", len(c.Response().Body()))

			if err != nil {
				e := errx.AsErrorX(err)
				reqLog = reqLog.With("error", map[string]any{
					"code":    e.Code(),
					"message": e.Error(),
					"type":    e.Type().String(),
					"trace":   e.Trace(),
					"fields":  e.Fields(),
					"details": e.Details(),
				})
			}

			switch {
			case statusCode >= fiber.StatusInternalServerError:
				reqLog.Error(operation(c))
			case statusCode >= fiber.StatusBadRequest:
				reqLog.Warn(operation(c))
			default:
				reqLog.Info(operation(c))
			}

			return err
		},
	}
}

// handleWithRecovery executes the next handler and converts a panic into an error.
func handleWithRecovery(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stackTrace := make([]byte, stackTraceSize)
			stackTrace = stackTrace[:runtime.Stack(stackTrace, false)]

			err = errx.New(
				"panic recovered at logger middleware",
				errx.WithDetails(errx.D{
					"stack_trace":   string(stackTrace),
					"panic_message": r,
				}),
			)
		}
	}()

	return c.Next()
}
