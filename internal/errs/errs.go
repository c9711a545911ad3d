package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel markers classifying every failure the service can surface.
// Handlers map them to HTTP status codes at the boundary; components wrap
// them with %w so errors.Is keeps working through the chain.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrUpstream   = errors.New("upstream service error")
	ErrMediaTool  = errors.New("media tool error")
)

// Wrap tags err with the given marker and a contextual message.
// A nil err produces a marker-tagged error carrying just the message.
func Wrap(marker error, message string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, message, err)
	}
	return fmt.Errorf("%w: %s", marker, message)
}

// HTTPStatus maps a classified error to the response status code.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
