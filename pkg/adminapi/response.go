package adminapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"unicode/utf8"
)

// Response is an immutable snapshot of a successful administrative call:
// status, headers and the fully read body.
type Response struct {
	statusCode int
	status     string
	header     http.Header
	body       []byte
}

// newResponse snapshots hr with its already drained body.
func newResponse(hr *http.Response, body []byte) *Response {
	return &Response{
		statusCode: hr.StatusCode,
		status:     hr.Status,
		header:     hr.Header.Clone(),
		body:       body,
	}
}

// StatusCode returns the HTTP status code.
func (r *Response) StatusCode() int {
	return r.statusCode
}

// Status returns the full status line, e.g. "200 OK".
func (r *Response) Status() string {
	return r.status
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.statusCode >= 200 && r.statusCode < 300
}

// Header returns the response headers. Callers must not modify the map.
func (r *Response) Header() http.Header {
	return r.header
}

// Bytes returns the raw body. Callers must treat the slice as read-only.
func (r *Response) Bytes() []byte {
	return r.body
}

// Text returns the body as a string, rejecting bodies that are not valid
// UTF-8.
func (r *Response) Text() (string, error) {
	if !utf8.Valid(r.body) {
		return "", errors.New("response body is not valid UTF-8")
	}
	return string(r.body), nil
}

// JSON decodes the body into target.
func (r *Response) JSON(target any) error {
	return json.Unmarshal(r.body, target)
}
