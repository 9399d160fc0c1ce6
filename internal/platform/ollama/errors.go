package ollama

import (
	"errors"
	"fmt"
)

// Typed failures for inference calls. Callers classify with errors.Is /
// errors.As; no retry happens at this layer.
var (
	// ErrUnreachable is returned when the service cannot be reached at
	// the connection level.
	ErrUnreachable = errors.New("inference service unreachable")

	// ErrTimeout is returned when a call exceeds its timeout budget.
	ErrTimeout = errors.New("inference call timed out")

	// ErrMalformedResponse is returned when the response body does not
	// match the expected envelope.
	ErrMalformedResponse = errors.New("malformed inference response")
)

// StatusError is returned for a non-2xx response from the service.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("inference service returned status %d", e.Code)
}
