package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/foodcatalog/http/server"
	"github.com/rise-and-shine/foodcatalog/meta"
	"github.com/rise-and-shine/foodcatalog/tracing"
)

// NewMetaInjectMW creates a middleware that injects request metadata into the context.
//
// The trace id set by the tracing middleware is kept; when tracing is not
// installed a fresh one is generated so log lines remain correlated.
func NewMetaInjectMW() server.Middleware {
	return server.Middleware{
		Priority: 700,
		Handler: func(c *fiber.Ctx) error {
			ctx := c.UserContext()

			traceID := meta.Find(ctx, meta.TraceID)
			if traceID == "" {
				traceID = tracing.GetStartingTraceID(ctx)
				c.Set(HeaderTraceID, traceID)
			}

			ctx = meta.InjectMetaToContext(ctx, map[meta.ContextKey]string{
				meta.TraceID:        traceID,
				meta.IPAddress:      c.IP(),
				meta.UserAgent:      c.Get(fiber.HeaderUserAgent),
				meta.RemoteAddr:     c.Context().RemoteAddr().String(),
				meta.Referer:        c.Get(fiber.HeaderReferer),
				meta.ServiceName:    meta.GetServiceName(),
				meta.ServiceVersion: meta.GetServiceVersion(),
				meta.AcceptLanguage: c.Get(fiber.HeaderAcceptLanguage),
			})
			c.SetUserContext(ctx)

			return c.Next()
		},
	}
}
