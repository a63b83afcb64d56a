package elevenlabs

import "fmt"

// APIError is a non-success response from the upstream. Body carries the
// upstream's own error text, capped at maxErrorBody bytes.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("elevenlabs: upstream returned %s", e.Message())
}

// Message returns the upstream status line plus error text, suitable for
// relaying to the caller.
func (e *APIError) Message() string {
	if e.Body == "" {
		return e.Status
	}
	return fmt.Sprintf("%s: %s", e.Status, e.Body)
}
