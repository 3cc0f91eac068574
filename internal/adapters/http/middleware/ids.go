// Package middleware provides the Gin middleware chain of the quote wall server.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/quotewall/internal/platform/logging"
)

const (
	// HeaderRequestID identifies one inbound request.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID spans every request of one page view.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyRequestID is the gin.Context key for the request ID.
	ContextKeyRequestID = "request_id"

	// ContextKeyCorrelationID is the gin.Context key for the correlation ID.
	ContextKeyCorrelationID = "correlation_id"
)

type idKind struct {
	header    string
	ginKey    string
	withValue func(context.Context, string) context.Context
	withLog   func(context.Context, string) context.Context
}

// RequestID reuses an inbound X-Request-ID or generates a UUID, echoes it
// on the response and stores it for loggers and outbound calls.
func RequestID() gin.HandlerFunc {
	return idMiddleware(idKind{
		header:    HeaderRequestID,
		ginKey:    ContextKeyRequestID,
		withValue: ContextWithRequestID,
		withLog:   logging.WithRequestID,
	})
}

// CorrelationID is RequestID for X-Correlation-ID.
func CorrelationID() gin.HandlerFunc {
	return idMiddleware(idKind{
		header:    HeaderCorrelationID,
		ginKey:    ContextKeyCorrelationID,
		withValue: ContextWithCorrelationID,
		withLog:   logging.WithCorrelationID,
	})
}

func idMiddleware(kind idKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(kind.header)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(kind.ginKey, id)
		c.Header(kind.header, id)

		ctx := kind.withValue(c.Request.Context(), id)
		c.Request = c.Request.WithContext(kind.withLog(ctx, id))

		c.Next()
	}
}

// GetRequestID returns the request ID, or "" before RequestID ran.
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the correlation ID, or "" before CorrelationID ran.
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}
