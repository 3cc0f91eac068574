package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotewall/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotewall/internal/adapters/http/views"
	"github.com/jsamuelsen/quotewall/internal/app"
	"github.com/jsamuelsen/quotewall/internal/domain"
)

// PageHandler serves the wall page and the fragments htmx swaps into it.
// Failed fragments answer with the JSON error envelope; htmx does not swap
// error responses, so the page is left as it was.
type PageHandler struct {
	quotes *app.QuoteService
	memes  *app.MemeService
	title  string
	htmx   views.Script
}

// PageHandlerConfig contains the page handler dependencies.
type PageHandlerConfig struct {
	Quotes  *app.QuoteService
	Memes   *app.MemeService
	Title   string
	HTMXSrc string

	// HTMXIntegrity is the subresource integrity hash of HTMXSrc, if any.
	HTMXIntegrity string
}

// NewPageHandler creates a page handler.
func NewPageHandler(cfg PageHandlerConfig) *PageHandler {
	return &PageHandler{
		quotes: cfg.Quotes,
		memes:  cfg.Memes,
		title:  cfg.Title,
		htmx:   views.Script{Src: cfg.HTMXSrc, Integrity: cfg.HTMXIntegrity},
	}
}

// Index serves GET /.
func (h *PageHandler) Index(c *gin.Context) {
	c.Render(http.StatusOK, views.Render(c.Request.Context(), views.Page(h.title, h.htmx)))
}

// QuoteFragment serves GET /fragments/quote: one quote paragraph, appended to
// #quotes by the page.
func (h *PageHandler) QuoteFragment(c *gin.Context) {
	ctx := c.Request.Context()

	quote, err := h.quotes.GetRandomQuote(ctx)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Render(http.StatusOK, views.Render(ctx, views.QuoteFragment(quote.Text)))
}

// MemeFragment serves GET /fragments/meme: the heading and image that
// replace #trump-pic. An empty feed answers 204 so nothing is swapped.
func (h *PageHandler) MemeFragment(c *gin.Context) {
	ctx := c.Request.Context()

	meme, err := h.memes.GetLatestMeme(ctx)
	switch {
	case domain.IsNotFound(err):
		c.Status(http.StatusNoContent)
		return
	case err != nil:
		dto.HandleError(c, err)
		return
	}

	c.Render(http.StatusOK, views.Render(ctx, views.MemeFragment(meme.URL)))
}

// RegisterRoutes registers the page and its fragments on rg.
func (h *PageHandler) RegisterRoutes(rg gin.IRoutes) {
	rg.GET("/", h.Index)
	rg.GET(views.QuoteFragmentPath, h.QuoteFragment)
	rg.GET(views.MemeFragmentPath, h.MemeFragment)
}
