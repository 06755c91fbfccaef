package adapter

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	var err error
	switch resp.StatusCode() {
	case http.StatusBadRequest:
		err = fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		err = fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusForbidden:
		err = fmt.Errorf("%w: %s", ErrForbidden, body)
	case http.StatusNotFound:
		err = fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusRequestEntityTooLarge:
		err = fmt.Errorf("%w: %s", ErrPayloadTooLarge, body)
	case http.StatusTooManyRequests:
		err = fmt.Errorf("%w: %s", ErrTooManyRequests, body)
	case http.StatusInternalServerError:
		err = fmt.Errorf("%w: %s", ErrInternalServerError, body)
	case http.StatusBadGateway:
		err = fmt.Errorf("%w: %s", ErrBadGateway, body)
	case http.StatusServiceUnavailable:
		err = fmt.Errorf("%w: %s", ErrServiceUnavailable, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		err = fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}

	if after, ok := parseRetryAfter(resp.Header().Get("Retry-After"), time.Now()); ok {
		return &RetryAfterError{Err: err, After: after}
	}
	return err
}

// parseRetryAfter reads a Retry-After header given either as delay seconds
// or as an HTTP date.
func parseRetryAfter(value string, now time.Time) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0, false
		}
		return time.Duration(seconds) * time.Second, true
	}

	at, err := http.ParseTime(value)
	if err != nil {
		return 0, false
	}
	if d := at.Sub(now); d > 0 {
		return d, true
	}
	return 0, true
}
