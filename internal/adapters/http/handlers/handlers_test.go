package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotewall/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotewall/internal/app"
	"github.com/jsamuelsen/quotewall/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	quoteClient *mocks.MockQuoteClient
	memeClient  *mocks.MockMemeClient
	router      *gin.Engine
}

// newFixture wires the page, quote and meme handlers over mocked upstreams.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := &fixture{
		quoteClient: mocks.NewMockQuoteClient(t),
		memeClient:  mocks.NewMockMemeClient(t),
		router:      gin.New(),
	}

	quotes := app.NewQuoteService(app.QuoteServiceConfig{QuoteClient: f.quoteClient, Logger: logger})
	memes := app.NewMemeService(app.MemeServiceConfig{MemeClient: f.memeClient, Logger: logger})

	NewPageHandler(PageHandlerConfig{Quotes: quotes, Memes: memes, Title: "Quote Wall", HTMXSrc: "/htmx.js"}).
		RegisterRoutes(f.router)

	api := f.router.Group("/api/v1")
	NewQuoteHandler(quotes).RegisterRoutes(api)
	NewMemeHandler(memes).RegisterRoutes(api)

	return f
}

func (f *fixture) get(target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	return resp
}
