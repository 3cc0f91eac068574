package telemetry

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/jsamuelsen/quotewall/telemetry"

// TraceIDHeader exposes the server span's trace ID to callers.
const TraceIDHeader = "X-Trace-ID"

type serverMetrics struct {
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
	activeRequests  metric.Int64UpDownCounter
}

func newServerMetrics() (*serverMetrics, error) {
	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	requestTotal, err := meter.Int64Counter(
		"http.server.request.total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	activeRequests, err := meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	return &serverMetrics{
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		activeRequests:  activeRequests,
	}, nil
}

// Middleware returns the otelgin server span handler followed by a handler
// that records request metrics and sets the X-Trace-ID response header.
func Middleware(serviceName string, opts ...otelgin.Option) gin.HandlersChain {
	m, err := newServerMetrics()
	if err != nil {
		otel.Handle(err)
	}

	return gin.HandlersChain{otelgin.Middleware(serviceName, opts...), m.handle}
}

func (m *serverMetrics) handle(c *gin.Context) {
	ctx := c.Request.Context()

	// Header must be written before the handler flushes the response.
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		c.Header(TraceIDHeader, sc.TraceID().String())
	}

	if m == nil {
		c.Next()
		return
	}

	start := time.Now()
	route := attribute.String("http.route", c.FullPath())
	method := attribute.String("http.method", c.Request.Method)

	m.activeRequests.Add(ctx, 1, metric.WithAttributes(method, route))
	defer m.activeRequests.Add(ctx, -1, metric.WithAttributes(method, route))

	c.Next()

	attrs := metric.WithAttributes(method, route, attribute.Int("http.status_code", c.Writer.Status()))
	m.requestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
	m.requestTotal.Add(ctx, 1, attrs)
}
