package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Error taxonomy for the integration flow. Callers wrap these sentinels with
// %w and route them to HTTP status codes via StatusFor.
var (
	// ErrInvalidInput covers client/input errors: missing code/state,
	// malformed state, state mismatch, missing access token.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound covers expired or absent cached state/credentials.
	ErrNotFound = errors.New("not found")

	// ErrInternal covers unexpected failures inside the module.
	ErrInternal = errors.New("internal error")
)

// UpstreamError carries a non-200 vendor response: its status code and the
// best message that could be extracted from the body.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("hubspot returned status %d: %s", e.StatusCode, e.Message)
}

// StatusFor maps an error to the HTTP status class it should surface as.
// Upstream errors keep the vendor's status code.
func StatusFor(err error) int {
	var upstream *UpstreamError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &upstream):
		return upstream.StatusCode
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
