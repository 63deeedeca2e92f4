package api

import (
	"fmt"
	"net/http"
)

// ValidationError indicates a missing or malformed request value.
type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("api: %s is required", e.Field)
}

// OptionError surfaces invalid client options.
type OptionError struct {
	Reason string
}

func (e OptionError) Error() string {
	return fmt.Sprintf("api: invalid option: %s", e.Reason)
}

// NetworkError wraps transport failures (DNS, refused connection, timeout).
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError reports a non-2xx response.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
}

func (e HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Unauthorized reports whether the server rejected the credentials.
func (e HTTPError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// DecodeError wraps a response body that could not be parsed.
type DecodeError struct {
	URL string
	Err error
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("decode response from %s: %v", e.URL, e.Err)
}

func (e DecodeError) Unwrap() error {
	return e.Err
}
