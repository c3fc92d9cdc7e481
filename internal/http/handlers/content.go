package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/content"
	"backend/internal/pricing"
)

// ContentHandler serves the marketing catalog, enriching trips with
// resolved pricing so the frontend never touches raw pricing schemas.
type ContentHandler struct {
	Client *content.Client
}

func NewContentHandler(client *content.Client) *ContentHandler {
	return &ContentHandler{Client: client}
}

func (h *ContentHandler) Destinations(c *gin.Context) {
	raw, err := h.Client.Destinations(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *ContentHandler) FAQs(c *gin.Context) {
	raw, err := h.Client.FAQs(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func (h *ContentHandler) Trip(c *gin.Context) {
	trip, err := h.Client.Trip(c.Request.Context(), c.Param("slug"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	resolved := pricing.Resolve(trip)
	c.JSON(http.StatusOK, gin.H{
		"trip":    trip,
		"pricing": priceResponse{Resolved: resolved, Display: displayPrice(resolved)},
	})
}
