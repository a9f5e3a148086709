package tools

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/NERVsystems/kmapmcp/pkg/kakao"
)

// Common error guidance messages
const (
	GuidanceValidation   = "Please correct the parameters and try again."
	GuidanceGeneral      = "Please try again later or modify your request parameters."
	GuidanceNetworkError = "Check that the local map service is running and reachable, then try again."
	GuidanceTimeout      = "The request timed out. Try again, or narrow the search radius."
)

// ErrMalformedPayload is wrapped by DecodeError when a body is not JSON.
var ErrMalformedPayload = errors.New("response was not valid JSON")

// ValidationKind classifies a ValidationError.
type ValidationKind int

const (
	MissingField ValidationKind = iota
	InvalidType
	ConstraintViolation
)

// ValidationError reports tool input that failed validation. It is raised
// before any network I/O.
type ValidationError struct {
	Tool   string
	Field  string
	Kind   ValidationKind
	Detail string
}

func (e *ValidationError) reason() string {
	switch e.Kind {
	case MissingField:
		return fmt.Sprintf("missing required field %q", e.Field)
	case InvalidType:
		return fmt.Sprintf("field %q has an invalid value: %s", e.Field, e.Detail)
	default:
		return fmt.Sprintf("field %q violates a constraint: %s", e.Field, e.Detail)
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input for %s: %s", e.Tool, e.reason())
}

// TransportError reports a failed exchange with the upstream service:
// connection failure, timeout, or a non-2xx status.
type TransportError struct {
	Endpoint   string
	StatusCode int    // zero when no response was received
	Status     string // e.g. "500 Internal Server Error"
	Err        error
	Guidance   string
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s for endpoint %s", e.Status, e.Endpoint)
	}
	return fmt.Sprintf("GET %s: %v", e.Endpoint, e.Err)
}

// Unwrap returns the underlying transport failure.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// newStatusError builds a TransportError for a non-2xx response, with
// guidance inferred from the status code.
func newStatusError(endpoint string, resp *kakao.Response) *TransportError {
	var guidance string
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		guidance = "Rate limit exceeded. Please try again in a few moments."
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		guidance = GuidanceTimeout
	case http.StatusBadRequest:
		guidance = "The request was invalid. Check your parameters and try again."
	case http.StatusUnauthorized, http.StatusForbidden:
		guidance = "The map service rejected its API credentials. Check its KAKAO_API_KEY."
	case http.StatusInternalServerError, http.StatusBadGateway:
		guidance = "The server encountered an error. This is likely temporary, please try again later."
	case http.StatusServiceUnavailable:
		guidance = "The service is temporarily unavailable. Please try again later."
	default:
		guidance = GuidanceGeneral
	}

	status := resp.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return &TransportError{
		Endpoint:   endpoint,
		StatusCode: resp.StatusCode,
		Status:     status,
		Err:        fmt.Errorf("upstream returned status %d", resp.StatusCode),
		Guidance:   guidance,
	}
}

// newTransportError wraps a failure that produced no response.
func newTransportError(endpoint string, err error) *TransportError {
	guidance := GuidanceNetworkError
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		guidance = GuidanceTimeout
	}
	return &TransportError{
		Endpoint: endpoint,
		Err:      err,
		Guidance: guidance,
	}
}

// DecodeError reports a response body that is neither JSON nor a
// data:-framed JSON payload. Raw holds the body as received.
type DecodeError struct {
	Raw string
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

// Unwrap returns the parse failure.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Describe renders err as the single string an agent receives.
func Describe(err error) string {
	var (
		verr *ValidationError
		terr *TransportError
		derr *DecodeError
	)
	switch {
	case errors.As(err, &verr):
		return fmt.Sprintf("Invalid input for %s: %s. %s", verr.Tool, verr.reason(), GuidanceValidation)
	case errors.As(err, &terr):
		return fmt.Sprintf("Error calling the API: %s. %s", terr.Error(), terr.Guidance)
	case errors.As(err, &derr):
		return "Error parsing server response. The response was not valid JSON: " + derr.Raw
	default:
		return "Error: " + err.Error()
	}
}
