package server

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// Probe reports whether a dependency is ready to serve traffic.
type Probe func(ctx context.Context) error

// RegisterHealth mounts /health/live and /health/ready.
// Liveness always answers 200; readiness answers 503 when any probe fails.
func (s *HTTPServer) RegisterHealth(probes map[string]Probe) {
	s.router.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	s.router.Get("/health/ready", func(c *fiber.Ctx) error {
		checks := make(map[string]string, len(probes))
		status := fiber.StatusOK

		for name, probe := range probes {
			if err := probe(c.UserContext()); err != nil {
				checks[name] = err.Error()
				status = fiber.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}

		state := "ok"
		if status != fiber.StatusOK {
			state = "unavailable"
		}
		return c.Status(status).JSON(fiber.Map{"status": state, "checks": checks})
	})
}
