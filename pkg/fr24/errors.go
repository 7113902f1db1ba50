package fr24

import "fmt"

// HTTPError is returned when the remote service answers with a status code
// that the call did not whitelist.
type HTTPError struct {
	StatusCode int
	URL        string
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// ServiceOverloadedError signals HTTP 520 from the upstream edge. It is kept
// distinct from HTTPError because it indicates anti-automation defense rather
// than a data problem; callers should back off instead of retrying blindly.
type ServiceOverloadedError struct {
	StatusCode int
	Body       []byte
}

func (e *ServiceOverloadedError) Error() string {
	return "the remote service reported an unexpected error; perhaps you are making too many calls"
}

// LoginError is returned when credentials are rejected or an authenticated
// operation is attempted while logged out.
type LoginError struct {
	Message string
}

func (e *LoginError) Error() string {
	return e.Message
}

// NotFoundError is returned when a lookup resolves to nothing. The upstream
// may signal absence with a 200 and an empty body, or with a whitelisted 400
// for unknown codes, so this is separate from HTTPError.
type NotFoundError struct {
	Resource string
	Code     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("could not find %s %q", e.Resource, e.Code)
}

// ValidationError is returned when a caller-supplied argument fails a local
// precondition before any request is made, or when the upstream rejects a
// parameter value.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
