package backend

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	errorMessageNetworkFailure     = "backend: network failure"
	errorMessageSessionExpired     = "backend: session expired"
	errorMessageGenericFailure     = "Request failed"
	errorMessageMissingBaseURL     = "backend: missing base URL"
	errorMessageMissingCoordinator = "backend: missing loading coordinator"
	errorMessageMissingCredentials = "backend: missing credential store"
)

var (
	// ErrNetwork indicates the request never produced an HTTP response
	// (timeout, connection refused, DNS failure).
	ErrNetwork = errors.New(errorMessageNetworkFailure)
	// ErrSessionExpired indicates the backend rejected the stored credential.
	ErrSessionExpired = errors.New(errorMessageSessionExpired)
	// ErrMissingBaseURL indicates the client was constructed without a base URL.
	ErrMissingBaseURL = errors.New(errorMessageMissingBaseURL)
	// ErrMissingCoordinator indicates the client was constructed without a loading coordinator.
	ErrMissingCoordinator = errors.New(errorMessageMissingCoordinator)
	// ErrMissingCredentials indicates the client was constructed without a credential store.
	ErrMissingCredentials = errors.New(errorMessageMissingCredentials)
)

// FieldError is one validation failure reported by the backend.
type FieldError struct {
	Type     string `json:"type"`
	Msg      string `json:"msg"`
	Path     string `json:"path"`
	Location string `json:"location"`
}

// APIError is a backend response the caller must handle: a non-2xx status or
// a 2xx envelope with success=false. Message carries the server-supplied text
// when present, else a generic fallback.
type APIError struct {
	StatusCode  int
	Message     string
	FieldErrors []FieldError
}

func (apiError *APIError) Error() string {
	return fmt.Sprintf("backend: status %d: %s", apiError.StatusCode, apiError.Message)
}

// MessageFromError extracts the server-supplied message from an API error, or
// returns the fallback for every other error class.
func MessageFromError(err error, fallback string) string {
	var apiError *APIError
	if errors.As(err, &apiError) && apiError.Message != "" {
		return apiError.Message
	}
	return fallback
}

// IsSessionExpired reports whether the error is the global 401 teardown.
func IsSessionExpired(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}

// IsNotFound reports whether the error is a backend 404 response.
func IsNotFound(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusNotFound
}

// IsForbidden reports whether the error is a backend 403 response.
func IsForbidden(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusForbidden
}
