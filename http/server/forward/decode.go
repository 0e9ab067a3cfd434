package forward

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/foodcatalog/val"
)

// Decode builds a new T from the request and validates it.
// T must be a pointer to a struct.
func Decode[T any](c *fiber.Ctx) (T, error) {
	req, err := newRequest[T]()
	if err != nil {
		return req, errx.Wrap(err)
	}

	err = decodeBody(c, req)
	if err != nil {
		return req, errx.Wrap(err)
	}

	err = decodeQuery(c, req)
	if err != nil {
		return req, errx.Wrap(err)
	}

	err = decodePath(c, req)
	if err != nil {
		return req, errx.Wrap(err)
	}

	err = val.ValidateSchema(req)
	if err != nil {
		return req, errx.Wrap(err)
	}

	return req, nil
}

// newRequest creates a new request of type T.
func newRequest[T any]() (T, error) {
	var req T

	reqType := reflect.TypeOf((*T)(nil)).Elem()
	if reqType.Kind() != reflect.Pointer || reqType.Elem().Kind() != reflect.Struct {
		return req, errx.New("T must be a pointer to a use case input struct")
	}

	reqVal := reflect.New(reqType.Elem()).Interface().(T) //nolint:errcheck // safe type assertion
	return reqVal, nil
}

// decodeBody decodes JSON, urlencoded and multipart bodies into req.
func decodeBody[T any](c *fiber.Ctx, req T) error {
	if len(c.Body()) == 0 {
		return nil
	}

	contentType := strings.ToLower(string(c.Request().Header.ContentType()))

	switch {
	case strings.HasPrefix(contentType, fiber.MIMEApplicationJSON):
		err := c.App().Config().JSONDecoder(c.Body(), req)
		if err != nil {
			return errx.Wrap(err, errx.WithType(errx.T_Validation), errx.WithCode(codeInvalidJSONBody))
		}
		return nil

	case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
		form, err := c.MultipartForm()
		if err != nil {
			return errx.Wrap(err, errx.WithType(errx.T_Validation), errx.WithCode(codeInvalidFormBody))
		}
		return decodeFormValues(form.Value, req)

	case strings.HasPrefix(contentType, fiber.MIMEApplicationForm):
		values := make(map[string][]string)
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			values[string(k)] = append(values[string(k)], string(v))
		})
		return decodeFormValues(values, req)
	}

	return errx.New(
		"content type must be application/json, multipart/form-data or application/x-www-form-urlencoded",
		errx.WithType(errx.T_Validation),
		errx.WithCode(codeInvalidContentType),
		errx.WithDetails(errx.D{"content_type": contentType}),
	)
}

// decodeFormValues re-encodes form values as a JSON object of strings so the
// input's json tags and unmarshalers apply. The first value of a repeated key wins.
func decodeFormValues[T any](values map[string][]string, req T) error {
	obj := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			obj[k] = v[0]
		}
	}

	raw, err := json.Marshal(obj)
	if err != nil {
		return errx.Wrap(err)
	}

	err = json.Unmarshal(raw, req)
	if err != nil {
		return errx.Wrap(err, errx.WithType(errx.T_Validation), errx.WithCode(codeInvalidFormBody))
	}
	return nil
}

// decodeQuery decodes the query params into req.
func decodeQuery[T any](c *fiber.Ctx, req T) error {
	if len(c.Queries()) == 0 {
		return nil
	}

	if err := c.QueryParser(req); err != nil {
		return errx.Wrap(err, errx.WithType(errx.T_Validation), errx.WithCode(codeInvalidQueryParams))
	}

	return nil
}

// decodePath decodes the route params into req.
func decodePath[T any](c *fiber.Ctx, req T) error {
	if len(c.Route().Params) == 0 {
		return nil
	}

	if err := c.ParamsParser(req); err != nil {
		return errx.Wrap(err, errx.WithType(errx.T_Validation), errx.WithCode(codeInvalidPathParams))
	}

	return nil
}
