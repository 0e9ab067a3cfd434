// Package middleware provides a collection of Fiber middleware components
// for building HTTP servers with standardized behavior.
//
// The components handle request logging, error handling, tracing, metrics,
// recovery from panics, timeout management and metadata propagation. Each one
// declares a Priority value that determines its execution order:
//
//   - Recovery (1000): Catches panics in the middleware chain
//   - Tracing (900): Creates spans for request tracing
//   - Metrics (850): Records prometheus request metrics
//   - Timeout (800): Applies timeouts to request contexts
//   - MetaInject (700): Injects metadata into the request context
//   - Logger (500): Logs request and response details
//   - ErrorHandler (400): Converts errors to standardized responses
//
// Higher priority values are executed earlier in the request pipeline.
//
//	srv := server.NewHTTPServer(cfg, []server.Middleware{
//		middleware.NewRecoveryMW(log),
//		middleware.NewTracingMW(),
//		middleware.NewMetricsMW(),
//		middleware.NewTimeoutMW(cfg.HandleTimeout),
//		middleware.NewMetaInjectMW(),
//		middleware.NewLoggerMW(log),
//		middleware.NewErrorHandlerMW(cfg.HideErrorDetails),
//	})
package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// operation names the matched route, e.g. "PUT /api/foods/:id".
func operation(c *fiber.Ctx) string {
	return fmt.Sprintf("%s %s", c.Method(), c.Route().Path)
}
