package server

import (
	"errors"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/foodcatalog/meta"
)

// codeRouterError marks errors raised by fiber itself, e.g. unknown routes.
const codeRouterError = "ROUTER_ERROR"

//nolint:gochecknoglobals // read-only lookup tables
var (
	statusByType = map[errx.Type]int{
		errx.T_Authentication: fiber.StatusUnauthorized,
		errx.T_Forbidden:      fiber.StatusForbidden,
		errx.T_NotFound:       fiber.StatusNotFound,
		errx.T_Validation:     fiber.StatusBadRequest,
		errx.T_Conflict:       fiber.StatusConflict,
		errx.T_Throttling:     fiber.StatusTooManyRequests,
		errx.T_Internal:       fiber.StatusInternalServerError,
	}

	typeByFiberStatus = map[int]errx.Type{
		fiber.StatusUnauthorized:    errx.T_Authentication,
		fiber.StatusForbidden:       errx.T_Forbidden,
		fiber.StatusNotFound:        errx.T_NotFound,
		fiber.StatusConflict:        errx.T_Conflict,
		fiber.StatusTooManyRequests: errx.T_Throttling,
	}
)

// errorResponse is the body of every failed request.
//
// Details repeats the failure cause for internal errors so API clients get the
// same "details" string the store failure responses always carried.
type errorResponse struct {
	Success bool        `json:"success"`
	TraceID string      `json:"trace_id"`
	Error   errorSchema `json:"error"`
	Details string      `json:"details,omitempty"`
}

type errorSchema struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Cause   string            `json:"cause"`
	Trace   string            `json:"trace,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	Details map[string]any    `json:"details,omitempty"`
}

// WriteErrorResponse writes err as an errorResponse with the status derived from its errx type.
// The returned error is err converted to errx.ErrorX.
func WriteErrorResponse(c *fiber.Ctx, err error, hideDetails bool) error {
	e := toErrorX(err)
	status := statusOf(e.Type())

	resp := errorResponse{
		TraceID: meta.Find(c.UserContext(), meta.TraceID),
		Error: errorSchema{
			Code:    e.Code(),
			Message: meta.Tr(e.Code(), c.Get(fiber.HeaderAcceptLanguage)),
			Cause:   e.Error(),
			Fields:  e.Fields(),
		},
	}
	if !hideDetails {
		resp.Error.Trace = e.Trace()
		resp.Error.Details = e.Details()
		if status >= fiber.StatusInternalServerError {
			resp.Details = e.Error()
		}
	}

	_ = c.Status(status).JSON(resp)
	return e
}

// customErrorHandler is the fiber ErrorHandler. Responses that already carry an
// error status were written by the error middleware and are left alone.
func customErrorHandler(hideDetails bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if c.Response().StatusCode() >= fiber.StatusBadRequest {
			return nil
		}
		_ = WriteErrorResponse(c, err, hideDetails)
		return nil
	}
}

func statusOf(t errx.Type) int {
	if status, ok := statusByType[t]; ok {
		return status
	}
	return fiber.StatusInternalServerError
}

// toErrorX converts err to errx.ErrorX, typing fiber errors by their HTTP status.
func toErrorX(err error) errx.ErrorX {
	var fiberErr *fiber.Error
	if !errors.As(err, &fiberErr) {
		return errx.AsErrorX(err)
	}

	t, ok := typeByFiberStatus[fiberErr.Code]
	switch {
	case ok:
	case fiberErr.Code >= fiber.StatusBadRequest && fiberErr.Code < fiber.StatusInternalServerError:
		t = errx.T_Validation
	default:
		t = errx.T_Internal
	}

	return errx.AsErrorX(errx.New(
		fiberErr.Message,
		errx.WithCode(codeRouterError),
		errx.WithType(t),
		errx.WithDetails(errx.D{"fiber_code": fiberErr.Code}),
	))
}
