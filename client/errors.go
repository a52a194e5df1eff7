package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mattbenson/storefront/gen/sdk"
)

// ErrNotFound is returned when the service reports no entity with the
// requested id.
var ErrNotFound = errors.New("not found")

// ValidationError is returned when the service rejects a write payload.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.Code, e.Message)
}

// TransportError is returned for any non-2xx response outside the
// taxonomy above, and for failures reaching or reading the backend at
// all (dial errors, response decoding). StatusCode is zero when no
// HTTP response was received; Err carries the underlying failure.
type TransportError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport failure: %v", e.Err)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

// mapError translates the generated client's errors into the façade's
// stable taxonomy. Context cancellation passes through so callers can
// keep matching on context.Canceled; every other failure surfaces as
// taxonomy types only, never as a raw transport error.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *sdk.APIError
	if !errors.As(err, &apiErr) {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return &TransportError{Err: err}
	}
	switch apiErr.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		var body sdk.Error
		if jsonErr := json.Unmarshal(apiErr.Body, &body); jsonErr != nil || body.Code == "" {
			return &ValidationError{Code: "VALIDATION_ERROR", Message: string(apiErr.Body)}
		}
		return &ValidationError{Code: body.Code, Message: body.Error}
	default:
		return &TransportError{StatusCode: apiErr.StatusCode, Body: apiErr.Body}
	}
}
