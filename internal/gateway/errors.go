package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized marks authentication failures (missing, expired or
// rejected bearer token) so callers can tell them apart from other
// gateway errors with errors.Is.
var ErrUnauthorized = errors.New("authentication required")

// APIError is a non-2xx reply from the commerce API, carrying the
// server-provided detail message when one was present.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("commerce api error: status %d", e.Status)
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}
