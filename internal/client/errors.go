package client

import (
	"errors"
	"fmt"
)

// ErrEmptyPayload is returned when an upstream responds 200 with a body that
// decodes to nothing usable. It is treated like any other upstream failure.
var ErrEmptyPayload = errors.New("upstream returned an empty or malformed payload")

// UpstreamError carries the HTTP status of a failed upstream call so the
// service layer can distinguish rate limiting from other failures.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s request failed with status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// IsRateLimited reports whether err is an upstream 429.
func IsRateLimited(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.StatusCode == 429
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue) && ue.StatusCode == 404
}
