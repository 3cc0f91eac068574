package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quotewall/internal/domain"
	"github.com/jsamuelsen/quotewall/internal/platform/metrics"
	"github.com/jsamuelsen/quotewall/internal/ports"
)

// MemeService picks the meme to show from a ports.MemeClient feed.
type MemeService struct {
	memeClient ports.MemeClient
	metrics    *metrics.Manager
	logger     *slog.Logger
}

// MemeServiceConfig contains the meme service dependencies.
type MemeServiceConfig struct {
	MemeClient ports.MemeClient
	Metrics    *metrics.Manager
	Logger     *slog.Logger
}

// NewMemeService panics when cfg.MemeClient is nil.
func NewMemeService(cfg MemeServiceConfig) *MemeService {
	if cfg.MemeClient == nil {
		panic("MemeService: MemeClient is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &MemeService{
		memeClient: cfg.MemeClient,
		metrics:    cfg.Metrics,
		logger:     logger,
	}
}

// GetLatestMeme fetches the feed and returns its last record. An empty feed
// is a *domain.NotFoundError for entity "meme".
func (s *MemeService) GetLatestMeme(ctx context.Context) (*domain.Meme, error) {
	feed, err := s.memeClient.GetMemes(ctx)
	if err != nil && ctx.Err() != nil {
		s.logger.DebugContext(ctx, "meme request abandoned", slog.Any("error", err))
		return nil, err
	}

	if err != nil {
		s.metrics.MemeResult(metrics.ResultFailed)
		recordUpstreamFailure(s.metrics, err)
		s.logger.ErrorContext(ctx, "failed to fetch memes", slog.Any("error", err))

		return nil, err
	}

	latest, ok := feed.Latest()
	if !ok {
		s.metrics.MemeResult(metrics.ResultEmpty)
		s.logger.InfoContext(ctx, "meme feed was empty")

		return nil, domain.NewNotFoundError("meme", "")
	}

	s.metrics.MemeResult(metrics.ResultRendered)
	s.logger.DebugContext(ctx, "picked latest meme", slog.Int("feed_size", len(feed)))

	return &latest, nil
}
