package acl

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quotewall/internal/adapters/clients"
	"github.com/jsamuelsen/quotewall/internal/domain"
	"github.com/jsamuelsen/quotewall/internal/platform/logging"
)

const memePath = "/random/meme"

// MemeClientConfig configures a MemeClient.
type MemeClientConfig struct {
	// Client must have its BaseURL set to the meme endpoint.
	Client *clients.Client

	Logger *slog.Logger
}

// MemeClient implements ports.MemeClient over the meme endpoint.
type MemeClient struct {
	BaseAdapter
	logger *slog.Logger
}

// NewMemeClient panics when cfg.Client is nil.
func NewMemeClient(cfg MemeClientConfig) *MemeClient {
	if cfg.Client == nil {
		panic("MemeClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &MemeClient{
		BaseAdapter: NewBaseAdapter(cfg.Client, cfg.Client.Name()),
		logger:      logger,
	}
}

type memeRecord struct {
	URL string `json:"url"`
}

// GetMemes fetches the meme list in the order the endpoint returned it.
func (c *MemeClient) GetMemes(ctx context.Context) (domain.MemeFeed, error) {
	records, err := Fetch[[]memeRecord](ctx, &c.BaseAdapter, memePath, "get memes")
	if err != nil {
		return nil, err
	}

	memes, err := TranslateSlice(*records, translateMeme)
	if err != nil {
		return nil, err
	}

	c.logger.Log(ctx, logging.LevelTrace, "memes fetched", slog.Int("count", len(memes)))

	return domain.MemeFeed(memes), nil
}

func translateMeme(ext *memeRecord) (domain.Meme, error) {
	return domain.Meme{URL: ext.URL}, nil
}

// Name implements ports.HealthChecker.
func (c *MemeClient) Name() string {
	return c.ServiceName()
}

// Check implements ports.HealthChecker by requesting the meme list.
func (c *MemeClient) Check(ctx context.Context) error {
	return c.checkStatus(ctx, memePath)
}
