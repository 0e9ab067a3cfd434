package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/foodcatalog/http/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Success bool   `json:"success"`
	TraceID string `json:"trace_id"`
	Error   struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Cause   string            `json:"cause"`
		Trace   string            `json:"trace"`
		Fields  map[string]string `json:"fields"`
		Details map[string]any    `json:"details"`
	} `json:"error"`
	Details string `json:"details"`
}

func decode(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body errorBody
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func newServer(hideDetails bool, handler fiber.Handler) *fiber.App {
	srv := server.NewHTTPServer(server.Config{
		Host:             "localhost",
		Port:             8000,
		HideErrorDetails: hideDetails,
		CORSAllowOrigins: "*",
	}, nil)
	srv.RegisterRouter(func(r fiber.Router) {
		r.Get("/", handler)
	})
	return srv.App()
}

func TestErrorResponse_StatusByType(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "validation",
			err:    errx.New("bad", errx.WithType(errx.T_Validation), errx.WithCode("INVALID_PRICE")),
			status: fiber.StatusBadRequest,
			code:   "INVALID_PRICE",
		},
		{
			name:   "not found",
			err:    errx.New("missing", errx.WithType(errx.T_NotFound), errx.WithCode("FOOD_NOT_FOUND")),
			status: fiber.StatusNotFound,
			code:   "FOOD_NOT_FOUND",
		},
		{
			name:   "conflict",
			err:    errx.New("dup", errx.WithType(errx.T_Conflict), errx.WithCode("DUPLICATE")),
			status: fiber.StatusConflict,
			code:   "DUPLICATE",
		},
		{
			name:   "plain error is internal",
			err:    errors.New("boom"),
			status: fiber.StatusInternalServerError,
		},
		{
			name:   "fiber error keeps its status class",
			err:    fiber.NewError(fiber.StatusMethodNotAllowed, "nope"),
			status: fiber.StatusBadRequest,
			code:   "ROUTER_ERROR",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newServer(false, func(*fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			body := decode(t, resp)
			assert.False(t, body.Success)
			if tc.code != "" {
				assert.Equal(t, tc.code, body.Error.Code)
			}
			assert.NotEmpty(t, body.Error.Cause)
		})
	}
}

func TestErrorResponse_HideDetails(t *testing.T) {
	e := errx.New("bad", errx.WithType(errx.T_Validation), errx.WithDetails(errx.D{"k": "v"}))

	shown := decode(t, mustTest(t, newServer(false, func(*fiber.Ctx) error { return e })))
	assert.NotEmpty(t, shown.Error.Trace)
	assert.Equal(t, "v", shown.Error.Details["k"])

	hidden := decode(t, mustTest(t, newServer(true, func(*fiber.Ctx) error { return e })))
	assert.Empty(t, hidden.Error.Trace)
	assert.Nil(t, hidden.Error.Details)
}

func TestErrorResponse_InternalCarriesDetails(t *testing.T) {
	storeErr := errx.New("connection reset by peer", errx.WithType(errx.T_Internal), errx.WithCode("STORE_ERROR"))
	validationErr := errx.New("bad", errx.WithType(errx.T_Validation))

	shown := decode(t, mustTest(t, newServer(false, func(*fiber.Ctx) error { return storeErr })))
	assert.Equal(t, "STORE_ERROR", shown.Error.Code)
	assert.Contains(t, shown.Details, "connection reset by peer")

	hidden := decode(t, mustTest(t, newServer(true, func(*fiber.Ctx) error { return storeErr })))
	assert.Empty(t, hidden.Details)

	client := decode(t, mustTest(t, newServer(false, func(*fiber.Ctx) error { return validationErr })))
	assert.Empty(t, client.Details)
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	app := newServer(false, func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	var ready error
	srv := server.NewHTTPServer(server.Config{Host: "localhost", Port: 8000}, nil)
	srv.RegisterHealth(map[string]server.Probe{
		"postgres": func(context.Context) error { return ready },
	})

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = srv.App().Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	ready = errors.New("connection refused")
	resp, err = srv.App().Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestMiddlewarePriority(t *testing.T) {
	var order []string
	mw := func(name string, priority int) server.Middleware {
		return server.Middleware{Priority: priority, Handler: func(c *fiber.Ctx) error {
			order = append(order, name)
			return c.Next()
		}}
	}

	srv := server.NewHTTPServer(server.Config{Host: "localhost", Port: 8000}, []server.Middleware{
		mw("low", 100),
		{Priority: 999},
		mw("high", 900),
		mw("mid", 500),
	})
	srv.RegisterRouter(func(r fiber.Router) {
		r.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	})

	_, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "mid", "low"}, order)
}

func TestMiddlewarePriority_EqualKeepsRegistrationOrder(t *testing.T) {
	var order []string
	mw := func(name string) server.Middleware {
		return server.Middleware{Priority: 500, Handler: func(c *fiber.Ctx) error {
			order = append(order, name)
			return c.Next()
		}}
	}

	middlewares := []server.Middleware{mw("first"), mw("second"), mw("third")}
	srv := server.NewHTTPServer(server.Config{Host: "localhost", Port: 8000}, middlewares)
	srv.RegisterRouter(func(r fiber.Router) {
		r.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	})

	_, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestAddress(t *testing.T) {
	cfg := server.Config{Host: "0.0.0.0", Port: 8000}
	assert.Equal(t, "0.0.0.0:8000", cfg.Address())
}

func mustTest(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	return resp
}
