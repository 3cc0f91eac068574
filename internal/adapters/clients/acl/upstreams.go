package acl

import (
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/quotewall/internal/adapters/clients"
	"github.com/jsamuelsen/quotewall/internal/platform/config"
)

// Upstreams holds one adapter per upstream API.
type Upstreams struct {
	Quotes *QuoteClient
	Memes  *MemeClient
}

// NewUpstreams builds both adapters from the shared client settings and
// the per-service endpoints in cfg.
func NewUpstreams(cfg *config.Config, logger *slog.Logger) (*Upstreams, error) {
	quoteHTTP, err := newClient(cfg, cfg.Services.Quote, logger)
	if err != nil {
		return nil, err
	}

	memeHTTP, err := newClient(cfg, cfg.Services.Meme, logger)
	if err != nil {
		return nil, err
	}

	return &Upstreams{
		Quotes: NewQuoteClient(QuoteClientConfig{Client: quoteHTTP, Logger: logger}),
		Memes:  NewMemeClient(MemeClientConfig{Client: memeHTTP, Logger: logger}),
	}, nil
}

func newClient(cfg *config.Config, endpoint config.ServiceEndpointConfig, logger *slog.Logger) (*clients.Client, error) {
	c, err := clients.New(&clients.Config{
		BaseURL:     endpoint.BaseURL,
		ServiceName: endpoint.Name,
		UserAgent:   cfg.Client.UserAgent,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %s client: %w", endpoint.Name, err)
	}

	return c, nil
}
