package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotewall/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotewall/internal/platform/config"
	"github.com/jsamuelsen/quotewall/internal/platform/logging"
)

const (
	instrumentationName = "github.com/jsamuelsen/quotewall/internal/adapters/clients"

	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "quotewall"
)

// Config configures a Client for one upstream API.
type Config struct {
	// BaseURL is prefixed to every request path.
	BaseURL string

	// ServiceName labels logs, spans and metrics.
	ServiceName string

	// UserAgent is sent on every request.
	UserAgent string

	// Timeout bounds a single attempt. Retries and backoff come on top.
	Timeout time.Duration

	Retry     config.RetryConfig
	Circuit   config.CircuitBreakerConfig
	Transport config.TransportConfig

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Client is an HTTP client with retries, a circuit breaker, tracing and
// request/correlation ID propagation.
type Client struct {
	http        *http.Client
	baseURL     string
	serviceName string
	userAgent   string
	retry       config.RetryConfig
	logger      *slog.Logger
	cb          *CircuitBreaker

	tracer          trace.Tracer
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
}

// New validates cfg and builds a Client.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	retry := cfg.Retry
	if retry.MaxAttempts < 1 {
		retry.MaxAttempts = 1
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "clients.Client"), slog.String("downstream", cfg.ServiceName))

	cb := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailures:   max(cfg.Circuit.MaxFailures, 1),
		Timeout:       cfg.Circuit.Timeout,
		HalfOpenLimit: max(cfg.Circuit.HalfOpenLimit, 1),
	})
	cb.OnStateChange(func(from, to State) {
		logger.Warn("circuit breaker state changed", slog.String("from", from.String()), slog.String("to", to.String()))
	})

	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.client.request.duration",
		metric.WithDescription("Duration of HTTP client requests"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	requestTotal, err := meter.Int64Counter(
		"http.client.request.total",
		metric.WithDescription("Total number of HTTP client requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	return &Client{
		http:            &http.Client{Timeout: timeout, Transport: newTransport(cfg.Transport)},
		baseURL:         strings.TrimSuffix(cfg.BaseURL, "/"),
		serviceName:     cfg.ServiceName,
		userAgent:       userAgent,
		retry:           retry,
		logger:          logger,
		cb:              cb,
		tracer:          otel.Tracer(instrumentationName),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}, nil
}

func newTransport(cfg config.TransportConfig) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone() //nolint:forcetypeassert // stdlib default

	if cfg.MaxIdleConns > 0 {
		t.MaxIdleConns = cfg.MaxIdleConns
	}
	if cfg.MaxIdleConnsPerHost > 0 {
		t.MaxIdleConnsPerHost = cfg.MaxIdleConnsPerHost
	}
	if cfg.IdleConnTimeout > 0 {
		t.IdleConnTimeout = cfg.IdleConnTimeout
	}

	return t
}

// Name returns the configured service name.
func (c *Client) Name() string {
	return c.serviceName
}

// CircuitState returns the breaker's current state.
func (c *Client) CircuitState() State {
	return c.cb.State()
}

// Get issues a GET for path relative to the base URL.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	return c.Do(ctx, req)
}

// Do sends req through the breaker with retries. Responses with status
// below 500 are returned as-is; the caller closes the body. Requests with a
// body are retried only when req.GetBody is set.
//
// A call that ends because ctx was cancelled or expired is not counted
// against the breaker.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	logger := logging.FromContext(ctx).With(
		slog.String("downstream", c.serviceName),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	if !c.cb.Allow() {
		c.recordMetrics(ctx, req.Method, 0, time.Since(start), "circuit_open")
		logger.WarnContext(ctx, "request blocked by circuit breaker")

		return nil, ErrCircuitOpen
	}

	c.injectHeaders(ctx, req)

	ctx, span := c.tracer.Start(ctx, "HTTP "+req.Method+" "+c.serviceName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.serviceName),
		),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.executeWithRetry(ctx, req, logger)
	duration := time.Since(start)

	if err != nil && ctx.Err() != nil {
		c.cb.Release()
		span.RecordError(err)
		span.SetStatus(codes.Error, "cancelled by caller")
		c.recordMetrics(ctx, req.Method, 0, duration, "cancelled")
		logger.DebugContext(ctx, "request abandoned by caller", slog.Duration("duration", duration), slog.Any("error", err))

		return nil, err
	}

	if err != nil {
		c.cb.RecordFailure()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.recordMetrics(ctx, req.Method, 0, duration, "error")
		logger.ErrorContext(ctx, "request failed", slog.Duration("duration", duration), slog.Any("error", err))

		return nil, err
	}

	c.cb.RecordSuccess()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	c.recordMetrics(ctx, req.Method, resp.StatusCode, duration, fmt.Sprintf("%dxx", resp.StatusCode/100))
	logger.DebugContext(ctx, "request completed", slog.Int("status", resp.StatusCode), slog.Duration("duration", duration))

	return resp, nil
}

func (c *Client) executeWithRetry(ctx context.Context, req *http.Request, logger *slog.Logger) (*http.Response, error) {
	var lastErr error

	for attempt := range c.retry.MaxAttempts {
		if attempt > 0 {
			if err := c.waitForRetry(ctx, req, attempt, logger); err != nil {
				return nil, err
			}
		}

		resp, err := c.http.Do(req.WithContext(ctx))
		retry, err := c.classify(ctx, resp, err, attempt, logger)
		if err == nil {
			return resp, nil
		}

		lastErr = err
		if !retry {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrMaxRetriesExceeded, lastErr)
}

// classify turns an attempt into (retry, err). A nil err means resp is final.
func (c *Client) classify(ctx context.Context, resp *http.Response, err error, attempt int, logger *slog.Logger) (bool, error) {
	if err != nil {
		retryable := ctx.Err() == nil && isRetryableError(err)
		logger.Log(ctx, logging.LevelTrace, "attempt failed",
			slog.Int("attempt", attempt+1), slog.Bool("retryable", retryable), slog.Any("error", err))

		return retryable, err
	}

	if resp.StatusCode < http.StatusInternalServerError {
		return false, nil
	}

	logger.Log(ctx, logging.LevelTrace, "attempt got server error",
		slog.Int("attempt", attempt+1), slog.Int("status", resp.StatusCode))

	if closeErr := resp.Body.Close(); closeErr != nil {
		logger.DebugContext(ctx, "failed to close response body", slog.Any("error", closeErr))
	}

	return true, fmt.Errorf("server error: %d", resp.StatusCode)
}

func (c *Client) waitForRetry(ctx context.Context, req *http.Request, attempt int, logger *slog.Logger) error {
	backoff := c.calculateBackoff(attempt)
	logger.DebugContext(ctx, "retrying request", slog.Int("attempt", attempt+1), slog.Duration("backoff", backoff))

	timer := time.NewTimer(backoff)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	if req.Body != nil && req.Body != http.NoBody && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return fmt.Errorf("rewinding request body: %w", err)
		}
		req.Body = body
	}

	return nil
}

func (c *Client) injectHeaders(ctx context.Context, req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)

	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(middleware.HeaderRequestID, requestID)
	}

	if correlationID := middleware.CorrelationIDFromContext(ctx); correlationID != "" {
		req.Header.Set(middleware.HeaderCorrelationID, correlationID)
	}
}

func (c *Client) buildURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}

// calculateBackoff returns InitialInterval*Multiplier^(attempt-1), capped at
// MaxInterval, with symmetric jitter of JitterFactor.
func (c *Client) calculateBackoff(attempt int) time.Duration {
	exp := max(attempt-1, 0)
	backoff := float64(c.retry.InitialInterval) * math.Pow(c.retry.Multiplier, float64(exp))
	backoff = math.Min(backoff, float64(c.retry.MaxInterval))

	jitter := (rand.Float64()*2 - 1) * c.retry.JitterFactor //nolint:gosec // jitter only

	return time.Duration(backoff * (1 + jitter))
}

func (c *Client) recordMetrics(ctx context.Context, method string, statusCode int, duration time.Duration, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", c.serviceName),
		attribute.String("result", result),
	}

	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	c.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	c.requestTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// isRetryableError reports whether a transport error is worth another attempt.
func isRetryableError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}
