// Package ports defines interfaces for external dependencies.
// The application layer depends on these contracts; adapters implement
// them against the real quote and meme APIs.
//
// Port rules:
//   - Context first, so callers control cancellation and deadlines
//   - Return domain types, never upstream DTOs
//   - Report failures as domain errors (ErrUnavailable, ErrNotFound, ...)
package ports

import (
	"context"

	"github.com/jsamuelsen/quotewall/internal/domain"
)

// QuoteClient fetches quotes from the quote endpoint.
type QuoteClient interface {
	// GetRandomQuote returns one random quote.
	// Returns domain.ErrUnavailable if the endpoint cannot serve it.
	GetRandomQuote(ctx context.Context) (*domain.Quote, error)
}

// MemeClient fetches meme records from the meme endpoint.
type MemeClient interface {
	// GetMemes returns the list of memes of a single fetch, in upstream order.
	// Returns domain.ErrUnavailable if the endpoint cannot serve it.
	GetMemes(ctx context.Context) (domain.MemeFeed, error)
}
