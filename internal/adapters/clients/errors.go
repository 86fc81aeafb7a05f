package clients

import "errors"

// Client errors represent failures in the HTTP client layer.
// These are infrastructure failures; the ACL translates them to domain errors.
var (
	// ErrCircuitOpen is returned when the circuit breaker is open and
	// requests to the backend are being blocked.
	ErrCircuitOpen = errors.New("circuit breaker open")
)
