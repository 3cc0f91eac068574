package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotewall/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotewall/internal/app"
)

// MemeHandler serves the meme JSON API.
type MemeHandler struct {
	service *app.MemeService
}

// NewMemeHandler creates a new meme handler.
func NewMemeHandler(service *app.MemeService) *MemeHandler {
	return &MemeHandler{service: service}
}

// GetLatestMeme handles GET /api/v1/memes/latest
//
// @Summary Get the last meme of the feed
// @Tags memes
// @Produce json
// @Success 200 {object} dto.MemeResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/memes/latest [get]
func (h *MemeHandler) GetLatestMeme(c *gin.Context) {
	meme, err := h.service.GetLatestMeme(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MemeResponse{URL: meme.URL})
}

// RegisterRoutes registers the meme routes on rg.
func (h *MemeHandler) RegisterRoutes(rg gin.IRoutes) {
	rg.GET("/memes/latest", h.GetLatestMeme)
}
