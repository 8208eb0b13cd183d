// Package apierror classifies failures from the StratusPay API into a small
// taxonomy with an explicit retryability flag. A ClassifiedError is created
// at the gateway boundary the moment a response is judged a failure and is
// never mutated afterward.
package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Kind identifies the failure class.
type Kind string

const (
	// KindAuthentication covers 401 and 403 responses. Never retryable.
	KindAuthentication Kind = "authentication"
	// KindRateLimit covers 429 responses. Retryable; carries Retry-After seconds.
	KindRateLimit Kind = "rate_limit"
	// KindAPIError covers any other non-2xx response.
	KindAPIError Kind = "api_error"
	// KindUnknown covers non-HTTP failures: network errors, body decode failures.
	KindUnknown Kind = "unknown"
)

// defaultRetryAfterSeconds is used when a 429 arrives without a Retry-After header.
const defaultRetryAfterSeconds = 60

// Sentinel errors for use with errors.Is().
var (
	// ErrAuthentication matches any authentication-kind error.
	ErrAuthentication = errors.New("authentication failed")
	// ErrRateLimited matches any rate-limit-kind error.
	ErrRateLimited = errors.New("rate limited")
)

// ClassifiedError is the uniform failure representation handed to the
// response formatter. Consumed once; not mutated after construction.
type ClassifiedError struct {
	// Kind is the failure class.
	Kind Kind
	// Message is the best-effort human-readable description.
	Message string
	// Retryable reports whether the caller may usefully retry.
	// The adapter itself never retries.
	Retryable bool
	// StatusCode is the upstream HTTP status, when the failure was an HTTP response.
	StatusCode int
	// RetryAfterSeconds is set for rate-limit errors.
	RetryAfterSeconds int
}

// Error returns the error message.
func (e *ClassifiedError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is supports errors.Is matching against the sentinel errors.
func (e *ClassifiedError) Is(target error) bool {
	switch target {
	case ErrAuthentication:
		return e.Kind == KindAuthentication
	case ErrRateLimited:
		return e.Kind == KindRateLimit
	}
	return false
}

// Authentication builds an authentication-kind error for a 401/403 response.
func Authentication(statusCode int) *ClassifiedError {
	return &ClassifiedError{
		Kind:       KindAuthentication,
		Message:    "authentication failed: check the access token and its scopes",
		Retryable:  false,
		StatusCode: statusCode,
	}
}

// RateLimit builds a rate-limit error from a 429 response. retryAfter is the
// raw Retry-After header value in seconds; when absent or unparsable the
// default of 60 seconds applies.
func RateLimit(retryAfter string) *ClassifiedError {
	seconds := defaultRetryAfterSeconds
	if retryAfter != "" {
		if n, err := strconv.Atoi(retryAfter); err == nil && n > 0 {
			seconds = n
		}
	}
	return &ClassifiedError{
		Kind:              KindRateLimit,
		Message:           fmt.Sprintf("rate limit exceeded, retry after %d seconds", seconds),
		Retryable:         true,
		StatusCode:        429,
		RetryAfterSeconds: seconds,
	}
}

// FromResponse classifies a non-2xx upstream response body into an API error.
// The message is extracted from the body in priority order: a "message"
// field, an "error" field, then the first element of an "errors" array's
// "message" field. If the body is not JSON or carries none of these, a
// generic "API error: <status>" message is used.
func FromResponse(statusCode int, body []byte) *ClassifiedError {
	return &ClassifiedError{
		Kind:       KindAPIError,
		Message:    extractMessage(statusCode, body),
		Retryable:  false,
		StatusCode: statusCode,
	}
}

// Unknown wraps a non-HTTP failure (transport error, decode failure).
func Unknown(err error) *ClassifiedError {
	return &ClassifiedError{
		Kind:      KindUnknown,
		Message:   err.Error(),
		Retryable: false,
	}
}

// extractMessage pulls a human-readable message out of an upstream error body.
func extractMessage(statusCode int, body []byte) string {
	fallback := fmt.Sprintf("API error: %d", statusCode)
	if len(body) == 0 {
		return fallback
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Errors  []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return fallback
	}

	switch {
	case payload.Message != "":
		return payload.Message
	case payload.Error != "":
		return payload.Error
	case len(payload.Errors) > 0 && payload.Errors[0].Message != "":
		return payload.Errors[0].Message
	}
	return fallback
}
