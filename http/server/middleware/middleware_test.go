package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/foodcatalog/http/server"
	"github.com/rise-and-shine/foodcatalog/http/server/middleware"
	"github.com/rise-and-shine/foodcatalog/logger"
	"github.com/rise-and-shine/foodcatalog/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(register func(r fiber.Router)) *fiber.App {
	log := logger.Nop()
	srv := server.NewHTTPServer(server.Config{Host: "localhost", Port: 8000}, []server.Middleware{
		middleware.NewErrorHandlerMW(false),
		middleware.NewLoggerMW(log),
		middleware.NewMetaInjectMW(),
		middleware.NewTimeoutMW(time.Second),
		middleware.NewMetricsMW(),
		middleware.NewTracingMW(),
		middleware.NewRecoveryMW(log, false),
	})
	srv.RegisterRouter(func(r fiber.Router) {
		r.Get(middleware.MetricsPath, middleware.MetricsHandler())
		register(r)
	})
	return srv.App()
}

func get(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	return resp
}

func TestChain_InjectsMetadata(t *testing.T) {
	var (
		traceID     string
		ip          string
		hasDeadline bool
	)
	app := newApp(func(r fiber.Router) {
		r.Get("/ping", func(c *fiber.Ctx) error {
			ctx := c.UserContext()
			traceID = meta.Find(ctx, meta.TraceID)
			ip = meta.Find(ctx, meta.IPAddress)
			_, hasDeadline = ctx.Deadline()
			return c.SendString("pong")
		})
	})

	resp := get(t, app, "/ping")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, traceID)
	assert.Equal(t, traceID, resp.Header.Get(middleware.HeaderTraceID))
	assert.NotEmpty(t, ip)
	assert.True(t, hasDeadline)
}

func TestChain_WritesErrorResponse(t *testing.T) {
	app := newApp(func(r fiber.Router) {
		r.Get("/missing", func(*fiber.Ctx) error {
			return errx.New("food not found", errx.WithType(errx.T_NotFound), errx.WithCode("FOOD_NOT_FOUND"))
		})
	})

	resp := get(t, app, "/missing")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"code":"FOOD_NOT_FOUND"`)
	assert.Contains(t, string(raw), resp.Header.Get(middleware.HeaderTraceID))
}

func TestChain_RecoversFromPanic(t *testing.T) {
	app := newApp(func(r fiber.Router) {
		r.Get("/panic", func(*fiber.Ctx) error { panic("kaboom") })
	})

	resp := get(t, app, "/panic")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestRecoveryMW_Alone(t *testing.T) {
	srv := server.NewHTTPServer(server.Config{Host: "localhost", Port: 8000}, []server.Middleware{
		middleware.NewRecoveryMW(logger.Nop(), true),
	})
	srv.RegisterRouter(func(r fiber.Router) {
		r.Get("/", func(*fiber.Ctx) error { panic("kaboom") })
	})

	resp := get(t, srv.App(), "/")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestMetricsMW_RecordsRoute(t *testing.T) {
	app := newApp(func(r fiber.Router) {
		r.Get("/foods/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	})

	get(t, app, "/foods/1")
	get(t, app, "/foods/2")

	resp := get(t, app, middleware.MetricsPath)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	body := string(raw)
	assert.True(t, strings.Contains(body, `foodcatalog_http_requests_total{method="GET",route="/foods/:id",status="200"}`))
	assert.Contains(t, body, "foodcatalog_http_request_duration_seconds")
}
