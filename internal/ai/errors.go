package ai

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned before any outbound call when the backend has
// no credentials.
var ErrNotConfigured = errors.New("text-generation backend is not configured")

// MalformedResponseError reports a backend reply that could not be decoded
// into the expected shape. Raw keeps the offending text for diagnostics.
type MalformedResponseError struct {
	Stage string
	Raw   string
	Err   error
}

func (e *MalformedResponseError) Error() string {
	if e.Stage == "" {
		return fmt.Sprintf("malformed upstream response: %v", e.Err)
	}
	return fmt.Sprintf("malformed upstream response at %s: %v", e.Stage, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// UpstreamError reports a transport failure or a non-2xx answer.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
	}
	if e.Body == "" {
		return fmt.Sprintf("%s request failed with status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s request failed with status %d: %s", e.Provider, e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
