// Package app contains the use cases behind the wall: fetching quotes and
// picking the meme to show.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/quotewall/internal/domain"
	"github.com/jsamuelsen/quotewall/internal/platform/metrics"
	"github.com/jsamuelsen/quotewall/internal/ports"
)

const (
	// MaxQuoteBatch is the largest n accepted by GetQuotes.
	MaxQuoteBatch = 10

	// QuoteBatchConcurrency bounds concurrent upstream calls in GetQuotes.
	QuoteBatchConcurrency = 4
)

// QuoteService serves quotes from a ports.QuoteClient.
type QuoteService struct {
	quoteClient ports.QuoteClient
	metrics     *metrics.Manager
	logger      *slog.Logger
}

// QuoteServiceConfig contains the quote service dependencies.
type QuoteServiceConfig struct {
	QuoteClient ports.QuoteClient

	// Metrics is optional.
	Metrics *metrics.Manager

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// NewQuoteService panics when cfg.QuoteClient is nil.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.QuoteClient == nil {
		panic("QuoteService: QuoteClient is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteService{
		quoteClient: cfg.QuoteClient,
		metrics:     cfg.Metrics,
		logger:      logger,
	}
}

// GetRandomQuote fetches one quote.
func (s *QuoteService) GetRandomQuote(ctx context.Context) (*domain.Quote, error) {
	s.logger.DebugContext(ctx, "fetching random quote")

	quote, err := s.quoteClient.GetRandomQuote(ctx)
	if err != nil {
		s.fail(ctx, "failed to fetch random quote", err)
		return nil, err
	}

	s.metrics.QuoteFetched(1)

	return quote, nil
}

// GetQuotes fetches n independent quotes concurrently. Results keep request
// order and the first failure cancels the rest.
func (s *QuoteService) GetQuotes(ctx context.Context, n int) ([]domain.Quote, error) {
	if n < 1 || n > MaxQuoteBatch {
		return nil, domain.NewValidationErrorWithValue("count",
			fmt.Sprintf("must be between 1 and %d", MaxQuoteBatch), n)
	}

	s.logger.DebugContext(ctx, "fetching quotes", slog.Int("count", n))

	fetchers := make([]func(context.Context) (*domain.Quote, error), n)
	for i := range fetchers {
		fetchers[i] = s.quoteClient.GetRandomQuote
	}

	results, err := ParallelLimit(ctx, QuoteBatchConcurrency, fetchers...)
	if err != nil {
		s.fail(ctx, "failed to fetch quotes", err)
		return nil, err
	}

	quotes := make([]domain.Quote, len(results))
	for i, q := range results {
		quotes[i] = *q
	}

	s.metrics.QuoteFetched(len(quotes))

	return quotes, nil
}

// fail records err unless ctx was cancelled, in which case the caller left
// and the upstream is not to blame.
func (s *QuoteService) fail(ctx context.Context, msg string, err error) {
	if ctx.Err() != nil {
		s.logger.DebugContext(ctx, msg, slog.Any("error", err))
		return
	}

	recordUpstreamFailure(s.metrics, err)
	s.logger.ErrorContext(ctx, msg, slog.Any("error", err))
}

// recordUpstreamFailure counts err against the upstream it names, if any.
func recordUpstreamFailure(m *metrics.Manager, err error) {
	var unavailable *domain.UnavailableError
	if errors.As(err, &unavailable) {
		m.UpstreamFailure(unavailable.Service)
	}
}
