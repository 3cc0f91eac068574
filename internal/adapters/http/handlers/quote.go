package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotewall/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotewall/internal/app"
)

// QuoteHandler serves the quote JSON API.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// GetRandomQuote handles GET /api/v1/quotes/random
//
// @Summary Get a random quote
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.QuoteResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/quotes/random [get]
func (h *QuoteHandler) GetRandomQuote(c *gin.Context) {
	quote, err := h.service.GetRandomQuote(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// GetQuotes handles GET /api/v1/quotes?count=N
//
// @Summary Get several random quotes
// @Tags quotes
// @Produce json
// @Param count query int false "Number of quotes (1-10)" default(1)
// @Success 200 {object} dto.QuotesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/quotes [get]
func (h *QuoteHandler) GetQuotes(c *gin.Context) {
	var query dto.QuotesQuery
	if err := dto.BindQueryAndValidate(c, &query); err != nil {
		dto.HandleError(c, err)
		return
	}

	quotes, err := h.service.GetQuotes(c.Request.Context(), query.CountOrDefault())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuotesResponse(quotes))
}

// RegisterRoutes registers the quote routes on rg.
func (h *QuoteHandler) RegisterRoutes(rg gin.IRoutes) {
	rg.GET("/quotes/random", h.GetRandomQuote)
	rg.GET("/quotes", h.GetQuotes)
}
