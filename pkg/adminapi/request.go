package adminapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// allowedMethods is the closed set of HTTP methods the admin API accepts.
var allowedMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodDelete:  true,
	http.MethodHead:    true,
	http.MethodOptions: true,
	http.MethodTrace:   true,
}

// Request is one logical administrative call under construction: method,
// relative path, ordered multi-valued headers and query parameters, and the
// raw body. The body and its derived headers (Content-SHA256,
// Content-Length) stay consistent through every mutation.
//
// Mutators return the same *Request for chaining and record the first
// argument error instead of failing midway; Err, Sign and Send surface it.
// A Request is reusable and independently signable per send, but must not
// be shared across goroutines.
type Request struct {
	client   *Client
	method   string
	path     string
	headers  fields
	query    fields
	contents []byte
	err      error
}

// NewRequest starts a request for the given method and path relative to the
// service URL. An empty method defaults to GET; methods outside the
// administrative API's set are recorded as an argument error.
func (c *Client) NewRequest(method, path string) *Request {
	r := &Request{client: c, path: path}
	if method == "" {
		method = http.MethodGet
	}
	r.method = strings.ToUpper(method)
	if !allowedMethods[r.method] {
		r.fail(invalidArgf("unsupported method %q", method))
	}
	r.refreshContentHeaders()
	return r
}

// fail records the first builder error; later errors are dropped.
func (r *Request) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// Err returns the first error recorded by a builder call, or nil.
func (r *Request) Err() error {
	return r.err
}

// Method returns the configured HTTP method.
func (r *Request) Method() string {
	return r.method
}

// Path returns the relative path the request was created with.
func (r *Request) Path() string {
	return r.path
}

// AddHeader appends a value under the given header name, preserving the
// order of names and of values within a name.
func (r *Request) AddHeader(name, value string) *Request {
	if name == "" {
		r.fail(invalidArgf("header name is empty"))
		return r
	}
	r.headers.add(name, value)
	return r
}

// SetHeader replaces all values of the header with the single given value.
func (r *Request) SetHeader(name, value string) *Request {
	if name == "" {
		r.fail(invalidArgf("header name is empty"))
		return r
	}
	r.headers.set(name, value)
	return r
}

// DeleteHeader removes the header and all its values. Deleting an absent
// header is a no-op.
func (r *Request) DeleteHeader(name string) *Request {
	r.headers.del(name)
	return r
}

// RemoveHeaderValue removes one value from the header; when the last value
// goes, the header disappears entirely.
func (r *Request) RemoveHeaderValue(name, value string) *Request {
	r.headers.removeValue(name, value)
	return r
}

// Header returns the first value of the named header.
func (r *Request) Header(name string) (string, bool) {
	return r.headers.get(name)
}

// HeaderValues returns a copy of all values of the named header, in
// insertion order.
func (r *Request) HeaderValues(name string) []string {
	return r.headers.values(name)
}

// AddQuery appends a value under the given query parameter name.
func (r *Request) AddQuery(name, value string) *Request {
	if name == "" {
		r.fail(invalidArgf("query parameter name is empty"))
		return r
	}
	r.query.add(name, value)
	return r
}

// AddQueryFlag appends a bare query parameter, rendered as the name alone
// without an equals sign.
func (r *Request) AddQueryFlag(name string) *Request {
	if name == "" {
		r.fail(invalidArgf("query parameter name is empty"))
		return r
	}
	r.query.addBare(name)
	return r
}

// SetQuery replaces all values of the query parameter with the single
// given value.
func (r *Request) SetQuery(name, value string) *Request {
	if name == "" {
		r.fail(invalidArgf("query parameter name is empty"))
		return r
	}
	r.query.set(name, value)
	return r
}

// DeleteQuery removes the query parameter and all its values.
func (r *Request) DeleteQuery(name string) *Request {
	r.query.del(name)
	return r
}

// QueryValues returns a copy of all values of the named query parameter.
func (r *Request) QueryValues(name string) []string {
	return r.query.values(name)
}

// SetContents replaces the request body and recomputes the derived
// Content-SHA256 and Content-Length headers. The bytes are copied, so the
// digest cannot drift from the body.
func (r *Request) SetContents(body []byte) *Request {
	r.contents = append([]byte(nil), body...)
	r.refreshContentHeaders()
	return r
}

// SetContentsString replaces the request body with the UTF-8 bytes of s.
func (r *Request) SetContentsString(s string) *Request {
	return r.SetContents([]byte(s))
}

// SetContentsReader drains rd into the request body. A read failure is
// recorded on the request and surfaced by Err, Sign or Send.
func (r *Request) SetContentsReader(rd io.Reader) *Request {
	if rd == nil {
		r.fail(invalidArgf("contents reader is nil"))
		return r
	}
	body, err := io.ReadAll(rd)
	if err != nil {
		r.fail(invalidArgf("read contents: %v", err))
		return r
	}
	return r.SetContents(body)
}

// SetJSONContents encodes v as JSON, installs it as the body and sets
// Content-Type to application/json. A nil v clears the body and leaves
// Content-Type alone.
func (r *Request) SetJSONContents(v any) *Request {
	if v == nil {
		return r.SetContents(nil)
	}
	body, err := json.Marshal(v)
	if err != nil {
		r.fail(invalidArgf("encode json contents: %v", err))
		return r
	}
	r.headers.set(HeaderContentType, contentTypeJSON)
	return r.SetContents(body)
}

// Contents returns a copy of the current body bytes.
func (r *Request) Contents() []byte {
	return append([]byte(nil), r.contents...)
}

// refreshContentHeaders rewrites the body-derived headers from the current
// contents.
func (r *Request) refreshContentHeaders() {
	r.headers.set(HeaderContentSHA256, hexDigest(r.contents))
	r.headers.set(HeaderContentLength, strconv.Itoa(len(r.contents)))
}

// QueryString renders the query parameters in insertion order, name=value
// pairs and bare flags joined with "&". Values are emitted verbatim;
// callers supply pre-encoded values when escaping is needed.
func (r *Request) QueryString() string {
	var b strings.Builder
	for _, e := range r.query.entries {
		for _, v := range e.values {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(e.name)
			if !v.bare {
				b.WriteByte('=')
				b.WriteString(v.value)
			}
		}
	}
	return b.String()
}

// RelativeURL assembles the path and query string, joining with "?" or "&"
// depending on whether the path already carries a query.
func (r *Request) RelativeURL() string {
	qs := r.QueryString()
	if qs == "" {
		return r.path
	}
	sep := "?"
	if strings.Contains(r.path, "?") {
		sep = "&"
	}
	return r.path + sep + qs
}
