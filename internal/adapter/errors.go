package adapter

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrPayloadTooLarge     = errors.New("request payload too large")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")
)

// RetryAfterError is a failure the server asked to repeat after a delay.
type RetryAfterError struct {
	// Err is the status error, e.g. [ErrTooManyRequests].
	Err error
	// After is the delay requested by the Retry-After header.
	After time.Duration
}

func (e *RetryAfterError) Error() string {
	return fmt.Sprintf("%v (retry after %s)", e.Err, e.After)
}

func (e *RetryAfterError) Unwrap() error {
	return e.Err
}

// RetryAfter returns the delay carried by err, if any.
func RetryAfter(err error) (time.Duration, bool) {
	var retryErr *RetryAfterError
	if errors.As(err, &retryErr) {
		return retryErr.After, true
	}
	return 0, false
}
