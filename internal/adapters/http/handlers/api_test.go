package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotewall/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotewall/internal/domain"
)

func TestQuoteHandler_GetRandomQuote(t *testing.T) {
	f := newFixture(t)
	f.quoteClient.EXPECT().GetRandomQuote(mock.Anything).Return(&domain.Quote{Text: "I feel like I'm too busy writing history to read it."}, nil)

	w := f.get("/api/v1/quotes/random")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"quote":"I feel like I'm too busy writing history to read it."}`, w.Body.String())
}

func TestQuoteHandler_GetQuotes(t *testing.T) {
	tests := []struct {
		name   string
		target string
		calls  int
	}{
		{name: "default count", target: "/api/v1/quotes", calls: 1},
		{name: "explicit count", target: "/api/v1/quotes?count=3", calls: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.quoteClient.EXPECT().GetRandomQuote(mock.Anything).Return(&domain.Quote{Text: "q"}, nil).Times(tt.calls)

			w := f.get(tt.target)

			require.Equal(t, http.StatusOK, w.Code)

			var resp dto.QuotesResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Len(t, resp.Quotes, tt.calls)
		})
	}
}

func TestQuoteHandler_GetQuotes_BadCount(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		expectedCode string
	}{
		{name: "too many", target: "/api/v1/quotes?count=11", expectedCode: dto.ErrorCodeValidation},
		{name: "negative", target: "/api/v1/quotes?count=-2", expectedCode: dto.ErrorCodeValidation},
		{name: "not a number", target: "/api/v1/quotes?count=lots", expectedCode: dto.ErrorCodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newFixture(t).get(tt.target)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.expectedCode, decodeError(t, w).Error.Code)
		})
	}
}

func TestMemeHandler_GetLatestMeme(t *testing.T) {
	f := newFixture(t)
	f.memeClient.EXPECT().GetMemes(mock.Anything).Return(domain.MemeFeed{{URL: "https://img/1.jpg"}, {URL: "https://img/2.jpg"}}, nil)

	w := f.get("/api/v1/memes/latest")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"url":"https://img/2.jpg"}`, w.Body.String())
}

func TestMemeHandler_GetLatestMeme_Errors(t *testing.T) {
	tests := []struct {
		name           string
		feed           domain.MemeFeed
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{name: "empty feed", feed: domain.MemeFeed{}, expectedStatus: http.StatusNotFound, expectedCode: dto.ErrorCodeNotFound},
		{name: "upstream down", err: domain.NewUnavailableError("meme-service", "down"), expectedStatus: http.StatusServiceUnavailable, expectedCode: dto.ErrorCodeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.memeClient.EXPECT().GetMemes(mock.Anything).Return(tt.feed, tt.err)

			w := f.get("/api/v1/memes/latest")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCode, decodeError(t, w).Error.Code)
		})
	}
}
