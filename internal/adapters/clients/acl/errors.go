package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/quotewall/internal/adapters/clients"
	"github.com/jsamuelsen/quotewall/internal/domain"
)

// maxErrorBody bounds how much of an error body is read for a message.
const maxErrorBody = 4 << 10

// upstreamError covers the error bodies seen from JSON APIs: either
// {"message": "..."} or {"error": "..."} or {"error": {"message": "..."}}.
type upstreamError struct {
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
}

func (e *upstreamError) text() string {
	if e.Message != "" {
		return e.Message
	}

	var s string
	if json.Unmarshal(e.Error, &s) == nil {
		return s
	}

	var nested struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(e.Error, &nested) == nil {
		return nested.Message
	}

	return ""
}

// parseErrorMessage returns the message from an error body, or "".
func parseErrorMessage(body io.Reader) string {
	if body == nil {
		return ""
	}

	var e upstreamError
	if err := json.NewDecoder(io.LimitReader(body, maxErrorBody)).Decode(&e); err != nil {
		return ""
	}

	return e.text()
}

// MapHTTPError translates a failed call into a domain error. Exactly one of
// resp and clientErr is expected to be set; a 2xx resp maps to nil.
//
// Neither upstream takes caller input, so a 4xx means the upstream or its
// configuration is wrong. It maps to domain.ErrUnavailable with the status
// only; the upstream's message is not passed on.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation string) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName, operation)
	}

	if resp == nil {
		return domain.NewUnavailableError(serviceName, "no response received")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return domain.NewUnavailableError(serviceName, "rate limit exceeded")
	case resp.StatusCode >= http.StatusInternalServerError:
		message := parseErrorMessage(resp.Body)
		if message == "" {
			message = fmt.Sprintf("%s failed with status %d", operation, resp.StatusCode)
		}

		return domain.NewUnavailableError(serviceName, message)
	case resp.StatusCode >= http.StatusBadRequest:
		return domain.NewUnavailableError(serviceName, fmt.Sprintf("%s rejected with status %d", operation, resp.StatusCode))
	default:
		return domain.NewUnavailableError(serviceName, fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}
}

func mapClientError(err error, serviceName, operation string) error {
	var reason string

	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		reason = "circuit breaker open during " + operation
	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		reason = "max retries exceeded during " + operation
	default:
		reason = operation + " failed"
	}

	return domain.NewUnavailableErrorWithCause(serviceName, reason, err)
}
