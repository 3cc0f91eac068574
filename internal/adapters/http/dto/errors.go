// Package dto holds the JSON shapes of the HTTP API and the mapping from
// domain errors to them.
package dto

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotewall/internal/domain"
	"github.com/jsamuelsen/quotewall/internal/platform/logging"
)

// ErrorResponse is the envelope of every error response.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail describes one error.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Error codes.
const (
	ErrorCodeNotFound    = "NOT_FOUND"
	ErrorCodeValidation  = "VALIDATION_ERROR"
	ErrorCodeBadRequest  = "BAD_REQUEST"
	ErrorCodeUnavailable = "SERVICE_UNAVAILABLE"
	ErrorCodeTimeout     = "TIMEOUT"
	ErrorCodeInternal    = "INTERNAL_ERROR"
)

// NewErrorResponse creates an envelope without details.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// NewErrorResponseWithDetails creates an envelope with per-field details.
func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorDetail{Code: code, Message: message, Details: details}}
}

// WithTraceID sets the trace ID and returns e.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode maps an error code to its HTTP status.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeValidation, ErrorCodeBadRequest:
		return http.StatusBadRequest
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	case ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// MapDomainError returns the status and envelope for err. Errors that are
// not domain errors become a generic 500 so internals do not leak.
func MapDomainError(err error) (int, *ErrorResponse) {
	var code, message string

	switch {
	case domain.IsNotFound(err):
		code, message = ErrorCodeNotFound, err.Error()
	case domain.IsValidation(err):
		code, message = ErrorCodeValidation, err.Error()
	case domain.IsUnavailable(err):
		code, message = ErrorCodeUnavailable, err.Error()
	case errors.Is(err, ErrBinding):
		code, message = ErrorCodeBadRequest, "malformed request"
	default:
		code, message = ErrorCodeInternal, "an internal error occurred"
	}

	resp := NewErrorResponse(code, message)

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) && validationErr.Field != "" {
		resp.Error.Details = map[string]string{validationErr.Field: validationErr.Message}
	} else if fields := ValidationErrors(err); len(fields) > 0 {
		resp.Error.Code = ErrorCodeValidation
		resp.Error.Message = "request validation failed"
		resp.Error.Details = fields
	}

	return HTTPStatusFromCode(resp.Error.Code), resp
}

// GetTraceID returns the trace ID of the request span. Without a span it
// falls back to a "trace_id" value set on c, then to "".
func GetTraceID(c *gin.Context) string {
	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	return c.GetString("trace_id")
}

// HandleError writes the envelope for err and aborts the chain.
func HandleError(c *gin.Context, err error) {
	status, resp := MapDomainError(err)
	resp.WithTraceID(GetTraceID(c))

	ctx := c.Request.Context()
	logger := logging.FromContext(ctx)

	switch {
	case status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable:
		logger.ErrorContext(ctx, "internal error", slog.Any("error", err))
	case status == http.StatusServiceUnavailable:
		logger.WarnContext(ctx, "upstream unavailable", slog.Any("error", err))
	}

	c.AbortWithStatusJSON(status, resp)
}
