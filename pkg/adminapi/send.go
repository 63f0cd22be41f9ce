package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Send signs the request and executes it against the service URL.
//
// A 2xx response is returned whole, body already read. A non-2xx response
// is decoded into an *APIError and returned as the error; the Response is
// nil in that case. Transport and decoding failures are wrapped with %w so
// errors.Is and errors.As reach the original error.
//
// Cancellation and deadlines come from ctx; the client adds no retries and
// no limits of its own beyond the HTTP client's timeout.
func (r *Request) Send(ctx context.Context) (*Response, error) {
	if err := r.Sign(); err != nil {
		return nil, err
	}
	httpReq, err := r.buildHTTPRequest(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestAssembly, err)
	}

	callID := ulid.Make().String()
	log := r.client.logger.With("call_id", callID)
	log.Debug("sending admin request", "method", r.method, "path", r.path)

	start := time.Now()
	resp, err := r.client.httpClient.Do(httpReq)
	if err != nil {
		r.client.metrics.ObserveRequest(r.method, 0, time.Since(start))
		log.Debug("admin request failed", "error", err)
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	if err != nil {
		r.client.metrics.ObserveRequest(r.method, 0, elapsed)
		return nil, fmt.Errorf("read response body: %w", err)
	}
	r.client.metrics.ObserveRequest(r.method, resp.StatusCode, elapsed)
	log.Debug("admin request completed", "status", resp.StatusCode, "elapsed", elapsed)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return newResponse(resp, body), nil
	}
	return nil, decodeAPIError(resp.StatusCode, body)
}

// buildHTTPRequest translates the signed request into a wire request.
func (r *Request) buildHTTPRequest(ctx context.Context) (*http.Request, error) {
	rel := strings.TrimPrefix(r.RelativeURL(), "/")
	httpReq, err := http.NewRequestWithContext(ctx, r.method, r.client.serviceURL+rel, bytes.NewReader(r.contents))
	if err != nil {
		return nil, err
	}

	for _, e := range r.headers.entries {
		// Content-Length travels at the message level; the transport
		// derives it from the body reader.
		if e.name == HeaderContentLength {
			continue
		}
		vals := make([]string, len(e.values))
		for i, v := range e.values {
			vals[i] = v.value
		}
		// Assign directly to keep the exact casing the signature covers;
		// Header.Set would rewrite UserId to Userid.
		httpReq.Header[e.name] = vals
	}
	if !r.headers.has("User-Agent") {
		httpReq.Header.Set("User-Agent", r.client.userAgent)
	}
	return httpReq, nil
}

// errorBody is the error payload shape of the administrative API.
type errorBody struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

// decodeAPIError turns a non-success response into an *APIError. Bodies
// that do not decode, or decode without an error code, yield a
// ParsingError carrying the failure as its cause.
func decodeAPIError(status int, body []byte) error {
	var payload errorBody
	if err := json.Unmarshal(body, &payload); err != nil {
		return newParsingError(status, err)
	}
	if payload.ErrorCode == "" {
		return newParsingError(status, errors.New("error body carries no errorCode"))
	}
	return &APIError{Code: payload.ErrorCode, Message: payload.Message, StatusCode: status}
}

// Call builds, signs and sends a request in one step. A nil body sends an
// empty payload.
func (c *Client) Call(ctx context.Context, method, path string, body []byte) (*Response, error) {
	req := c.NewRequest(method, path)
	if body != nil {
		req.SetContents(body)
	}
	return req.Send(ctx)
}

// CallJSON sends in as a JSON body and decodes the response body into out.
// Either side may be nil to skip encoding or decoding.
func (c *Client) CallJSON(ctx context.Context, method, path string, in, out any) error {
	req := c.NewRequest(method, path)
	if in != nil {
		req.SetJSONContents(in)
	}
	resp, err := req.Send(ctx)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.JSON(out)
}
