package account

import (
	"errors"
	"fmt"
)

// APIError is a rejection by the service: any response outside the 2xx
// range, carrying the service's structured error payload. Transport-level
// failures (connection, TLS) are returned as ordinary wrapped errors and
// never as *APIError.
type APIError struct {
	StatusCode int
	Code       int32
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("service rejected request (HTTP %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("service rejected request (HTTP %d)", e.StatusCode)
}

// IsRejection reports whether err is a rejection from the service, as
// opposed to a transport failure.
func IsRejection(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
