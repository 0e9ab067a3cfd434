// Package forward adapts fiber requests to plain use case methods.
//
// A use case method takes a context and a pointer to an input struct. The
// input is filled from path params (`params` tags), query string (`query`
// tags) and the body (`json` tags), then validated with val.ValidateSchema.
// JSON, urlencoded and multipart bodies are all accepted; form values are
// decoded as if they were JSON strings.
package forward

const (
	codeInvalidContentType = "INVALID_CONTENT_TYPE"
	codeInvalidJSONBody    = "INVALID_JSON_BODY"
	codeInvalidFormBody    = "INVALID_FORM_BODY"
	codeInvalidQueryParams = "INVALID_QUERY_PARAMS"
	codeInvalidPathParams  = "INVALID_PATH_PARAMS"
)
