// Package clients provides the instrumented HTTP client used to reach the
// quote and meme APIs.
package clients

import "errors"

// Infrastructure failures. The acl package translates them to domain errors.
var (
	// ErrCircuitOpen means the breaker rejected the call without contacting the upstream.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last attempt's error once every attempt failed.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
