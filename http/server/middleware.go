package server

import (
	"cmp"
	"slices"

	"github.com/gofiber/fiber/v2"
)

// Middleware is a fiber handler installed on every route. Higher Priority runs
// earlier in the chain; middlewares with equal priority keep registration order.
type Middleware struct {
	Priority int
	Handler  fiber.Handler
}

// chain returns the non-nil handlers of middlewares ordered by descending priority.
// The input slice is not modified.
func chain(middlewares []Middleware) []fiber.Handler {
	ordered := slices.Clone(middlewares)
	slices.SortStableFunc(ordered, func(a, b Middleware) int {
		return cmp.Compare(b.Priority, a.Priority)
	})

	handlers := make([]fiber.Handler, 0, len(ordered))
	for _, mw := range ordered {
		if mw.Handler != nil {
			handlers = append(handlers, mw.Handler)
		}
	}
	return handlers
}

func applyMiddlewares(r fiber.Router, middlewares []Middleware) {
	for _, h := range chain(middlewares) {
		r.Use(h)
	}
}
