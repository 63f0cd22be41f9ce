package adminapi

import (
	"errors"
	"fmt"
)

// Client-side failures detected before a request reaches the wire.
var (
	// ErrInvalidArgument indicates a malformed or missing caller input,
	// such as an unparseable service URL or an empty header name.
	ErrInvalidArgument = errors.New("adminapi: invalid argument")

	// ErrRequestAssembly indicates the signed request could not be turned
	// into a transport request.
	ErrRequestAssembly = errors.New("adminapi: request assembly failed")

	// ErrInvalidKey indicates the admin key material is not exactly 32 bytes.
	ErrInvalidKey = errors.New("adminapi: admin key must be 32 bytes")
)

// ParsingErrorCode is the synthetic error code used when the service
// returns a non-success status whose body cannot be interpreted.
const ParsingErrorCode = "ParsingError"

// parsingErrorMessage is the fixed message carried by synthesized
// ParsingError values; the original failure is kept as the cause.
const parsingErrorMessage = "the server returned an error that could not be parsed"

// APIError represents an error reported by the ZeroKit administrative API.
//
// Server-reported errors carry the code and message from the response body
// and the HTTP status of the response. A ParsingError is synthesized by the
// client when an error response cannot be decoded; its Cause holds the
// decoding failure.
type APIError struct {
	Code       string // Error code (e.g., "UserNotExists")
	Message    string // Human-readable message
	StatusCode int    // HTTP status of the response, 0 if unknown
	Cause      error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("[%s] %s (http %d)", e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
// Two APIErrors match when their codes match.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewAPIError creates a new APIError with the given code and message.
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// WithStatus returns a copy of the error carrying the given HTTP status.
func (e *APIError) WithStatus(status int) *APIError {
	return &APIError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: status,
		Cause:      e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *APIError) WithCause(cause error) *APIError {
	return &APIError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Cause:      cause,
	}
}

// AsAPIError extracts an APIError from err's chain.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsAPIError checks if an error is an APIError with the given code.
// If code is empty, it only checks if the error is an APIError.
func IsAPIError(err error, code string) bool {
	var ae *APIError
	if errors.As(err, &ae) {
		if code == "" {
			return true
		}
		return ae.Code == code
	}
	return false
}

// ErrorCode extracts the error code from an error if it's an APIError.
func ErrorCode(err error) string {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// newParsingError synthesizes the APIError used for undecodable error bodies.
func newParsingError(status int, cause error) *APIError {
	return &APIError{
		Code:       ParsingErrorCode,
		Message:    parsingErrorMessage,
		StatusCode: status,
		Cause:      cause,
	}
}

// invalidArgf builds an ErrInvalidArgument with a formatted detail message.
func invalidArgf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
