//go:build integration

package integration

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotewall/internal/adapters/clients/acl"
	httpadapter "github.com/jsamuelsen/quotewall/internal/adapters/http"
	"github.com/jsamuelsen/quotewall/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotewall/internal/app"
	"github.com/jsamuelsen/quotewall/internal/platform/config"
	"github.com/jsamuelsen/quotewall/internal/platform/metrics"
	"github.com/jsamuelsen/quotewall/internal/ports"
)

// upstreamFake serves both public APIs with scripted answers.
type upstreamFake struct {
	mu          sync.Mutex
	quote       string
	quoteStatus int
	memes       []string
	memeStatus  int
	memeBody    string
	memeGate    chan struct{}

	quoteCalls atomic.Int32
	memeCalls  atomic.Int32
	lastHeader http.Header

	server *httptest.Server
}

func newUpstreamFake() *upstreamFake {
	f := &upstreamFake{quote: "quote", quoteStatus: http.StatusOK, memeStatus: http.StatusOK}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", f.serveQuote)
	mux.HandleFunc("GET /random/meme", f.serveMemes)
	f.server = httptest.NewServer(mux)

	return f
}

func (f *upstreamFake) serveQuote(w http.ResponseWriter, r *http.Request) {
	f.quoteCalls.Add(1)

	f.mu.Lock()
	status, text := f.quoteStatus, f.quote
	f.lastHeader = r.Header.Clone()
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"quote": text})
}

func (f *upstreamFake) serveMemes(w http.ResponseWriter, r *http.Request) {
	f.memeCalls.Add(1)

	f.mu.Lock()
	status, urls, raw, gate := f.memeStatus, f.memes, f.memeBody, f.memeGate
	f.lastHeader = r.Header.Clone()
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if raw != "" {
		_, _ = io.WriteString(w, raw)
		return
	}

	records := make([]map[string]string, len(urls))
	for i, u := range urls {
		records[i] = map[string]string{"url": u}
	}
	_ = json.NewEncoder(w).Encode(records)
}

func (f *upstreamFake) setQuote(text string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.quote, f.quoteStatus = text, status
}

func (f *upstreamFake) setMemes(status int, urls ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.memes, f.memeStatus, f.memeBody = urls, status, ""
}

func (f *upstreamFake) setMemeBody(body string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.memeBody, f.memeStatus = body, http.StatusOK
}

// holdMemes makes the meme endpoint wait until the returned func is called
// or the request goes away.
func (f *upstreamFake) holdMemes() (release func()) {
	gate := make(chan struct{})

	f.mu.Lock()
	f.memeGate = gate
	f.mu.Unlock()

	return sync.OnceFunc(func() {
		f.mu.Lock()
		f.memeGate = nil
		f.mu.Unlock()
		close(gate)
	})
}

func (f *upstreamFake) header() http.Header {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.lastHeader
}

// stack is the whole service, in process, in front of an upstreamFake.
type stack struct {
	upstream  *upstreamFake
	upstreams *acl.Upstreams
	server    *httptest.Server
	metrics   *metrics.Manager

	// handled counts requests the router has finished with.
	handled atomic.Int32
}

func newStack(tweaks ...func(*config.Config)) (*stack, error) {
	gin.SetMode(gin.TestMode)

	fake := newUpstreamFake()

	cfg, err := config.LoadFrom("../../configs", "test")
	if err != nil {
		fake.server.Close()
		return nil, err
	}

	cfg.Services.Quote.BaseURL = fake.server.URL
	cfg.Services.Meme.BaseURL = fake.server.URL
	cfg.Client.Retry.MaxAttempts = 1
	cfg.Client.CircuitBreaker.MaxFailures = 100
	cfg.Client.Timeout = 2 * time.Second

	for _, tweak := range tweaks {
		tweak(cfg)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	upstreams, err := acl.NewUpstreams(cfg, logger)
	if err != nil {
		fake.server.Close()
		return nil, err
	}

	m, _ := metrics.NewTestManagerAndRegistry()
	quotes := app.NewQuoteService(app.QuoteServiceConfig{QuoteClient: upstreams.Quotes, Metrics: m, Logger: logger})
	memes := app.NewMemeService(app.MemeServiceConfig{MemeClient: upstreams.Memes, Metrics: m, Logger: logger})

	registry := ports.NewHealthRegistry()
	_ = registry.Register(upstreams.Quotes)
	_ = registry.Register(upstreams.Memes)

	s := &stack{upstream: fake, upstreams: upstreams, metrics: m}

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		defer s.handled.Add(1)
		c.Next()
	})
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		ServiceName:   cfg.App.Name,
		HealthHandler: handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "none", "now"), m.Gatherer()),
		PageHandler: handlers.NewPageHandler(handlers.PageHandlerConfig{
			Quotes: quotes, Memes: memes, Title: cfg.Web.Title, HTMXSrc: cfg.Web.HTMXSrc,
			HTMXIntegrity: cfg.Web.ScriptIntegrity(),
		}),
		QuoteHandler: handlers.NewQuoteHandler(quotes),
		MemeHandler:  handlers.NewMemeHandler(memes),
		Timeout:      cfg.Server.RequestTimeout,
	})

	s.server = httptest.NewServer(engine)

	return s, nil
}

func (s *stack) close() {
	s.server.Close()
	s.upstream.server.Close()
}
