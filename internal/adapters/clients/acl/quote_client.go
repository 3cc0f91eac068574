package acl

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quotewall/internal/adapters/clients"
	"github.com/jsamuelsen/quotewall/internal/domain"
	"github.com/jsamuelsen/quotewall/internal/platform/logging"
)

// quotePath is the quote endpoint's random-quote resource.
const quotePath = "/"

// QuoteClientConfig configures a QuoteClient.
type QuoteClientConfig struct {
	// Client must have its BaseURL set to the quote endpoint.
	Client *clients.Client

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// QuoteClient implements ports.QuoteClient over the quote endpoint.
type QuoteClient struct {
	BaseAdapter
	logger *slog.Logger
}

// NewQuoteClient panics when cfg.Client is nil.
func NewQuoteClient(cfg QuoteClientConfig) *QuoteClient {
	if cfg.Client == nil {
		panic("QuoteClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteClient{
		BaseAdapter: NewBaseAdapter(cfg.Client, cfg.Client.Name()),
		logger:      logger,
	}
}

type quoteResponse struct {
	Quote string `json:"quote"`
}

// GetRandomQuote fetches one quote.
func (c *QuoteClient) GetRandomQuote(ctx context.Context) (*domain.Quote, error) {
	c.logger.Log(ctx, logging.LevelTrace, "fetching random quote", slog.String("path", quotePath))

	ext, err := Fetch[quoteResponse](ctx, &c.BaseAdapter, quotePath, "get random quote")
	if err != nil {
		return nil, err
	}

	return translateQuote(ext), nil
}

func translateQuote(ext *quoteResponse) *domain.Quote {
	return &domain.Quote{Text: ext.Quote}
}

// Name implements ports.HealthChecker.
func (c *QuoteClient) Name() string {
	return c.ServiceName()
}

// Check implements ports.HealthChecker by requesting a quote.
func (c *QuoteClient) Check(ctx context.Context) error {
	return c.checkStatus(ctx, quotePath)
}
