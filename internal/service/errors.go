package service

import "errors"

var (
	// ErrInvalidArgument is returned when a request is missing a field or carries a malformed value.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUpstreamUnavailable is returned when the toll station store fails. It is not retried.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrNotFound is returned when the requested toll station does not exist.
	ErrNotFound = errors.New("not found")
)

func isInvalid(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
