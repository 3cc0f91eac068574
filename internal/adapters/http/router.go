package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotewall/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotewall/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotewall/internal/platform/telemetry"
)

// DefaultRequestTimeout bounds page, fragment and API requests when
// RouterConfig.Timeout is unset.
const DefaultRequestTimeout = 15 * time.Second

// RouterConfig contains the handlers and settings for SetupRouter.
type RouterConfig struct {
	// ServiceName names the server spans.
	ServiceName string

	HealthHandler *handlers.HealthHandler
	PageHandler   *handlers.PageHandler
	QuoteHandler  *handlers.QuoteHandler
	MemeHandler   *handlers.MemeHandler

	// Timeout is the deadline of every non-probe request.
	Timeout time.Duration
}

// SetupRouter registers middleware and routes on engine. Middleware runs in
// this order:
//  1. Recovery
//  2. Request ID
//  3. Correlation ID
//  4. OpenTelemetry
//  5. Logging (skips /-/ probes)
//  6. Timeout (page, fragments and /api/v1 only)
//
// Nil handlers are skipped.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.ServiceName)...)
	engine.Use(middleware.Logging())

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	if cfg.PageHandler != nil {
		cfg.PageHandler.RegisterRoutes(engine.Group("", middleware.Timeout(timeout)))
	}

	apiV1 := engine.Group("/api/v1", middleware.Timeout(timeout))
	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterRoutes(apiV1)
	}
	if cfg.MemeHandler != nil {
		cfg.MemeHandler.RegisterRoutes(apiV1)
	}
}
