package dto

import "github.com/jsamuelsen/quotewall/internal/domain"

// QuoteResponse is the body of GET /api/v1/quotes/random.
type QuoteResponse struct {
	Quote string `json:"quote"`
}

// QuotesQuery is the query string of GET /api/v1/quotes.
type QuotesQuery struct {
	Count int `form:"count" validate:"omitempty,min=1,max=10"`
}

// CountOrDefault returns Count, or 1 when it was not given.
func (q QuotesQuery) CountOrDefault() int {
	if q.Count == 0 {
		return 1
	}

	return q.Count
}

// QuotesResponse is the body of GET /api/v1/quotes.
type QuotesResponse struct {
	Quotes []string `json:"quotes"`
}

// MemeResponse is the body of GET /api/v1/memes/latest.
type MemeResponse struct {
	URL string `json:"url"`
}

// NewQuoteResponse converts a domain quote.
func NewQuoteResponse(q *domain.Quote) QuoteResponse {
	return QuoteResponse{Quote: q.Text}
}

// NewQuotesResponse converts a batch of domain quotes.
func NewQuotesResponse(quotes []domain.Quote) QuotesResponse {
	texts := make([]string, len(quotes))
	for i, q := range quotes {
		texts[i] = q.Text
	}

	return QuotesResponse{Quotes: texts}
}
