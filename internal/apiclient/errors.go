package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// TransportError is returned for any non-2xx response. The body is kept
// verbatim; callers must not assume it holds a structured error payload.
type TransportError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Body)
}

// ParseError is returned when a 2xx response does not carry the JSON body
// the call expected.
type ParseError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	Err        error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s %s response (status %d): %v", e.Method, e.Path, e.StatusCode, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// errEmptyBody is wrapped by ParseError when a JSON body was expected
var errEmptyBody = errors.New("empty response body")

// errNullBody is wrapped by ParseError when a JSON value was expected but
// the body is a bare null
var errNullBody = errors.New("null response body")

// StatusCode extracts the HTTP status of a TransportError anywhere in err's chain
func StatusCode(err error) (int, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		return te.StatusCode, true
	}
	return 0, false
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	code, ok := StatusCode(err)
	return ok && code == http.StatusNotFound
}

// IsParseError reports whether err is a ParseError
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
