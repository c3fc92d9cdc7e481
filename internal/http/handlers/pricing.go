package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/pricing"
	"backend/internal/utils"
)

// TripSource fetches trip records for pricing; *content.Client satisfies it.
type TripSource interface {
	Trip(ctx context.Context, slug string) (models.Trip, error)
}

// PricingHandler resolves display prices and traveller quotes.
type PricingHandler struct {
	Trips TripSource
}

func NewPricingHandler(trips TripSource) *PricingHandler {
	return &PricingHandler{Trips: trips}
}

type priceRequest struct {
	Slug string       `json:"slug"`
	Trip *models.Trip `json:"trip"`
}

type priceResponse struct {
	pricing.Resolved
	Display string `json:"display"`
}

// displayPrice is what the storefront renders next to a trip card.
func displayPrice(r pricing.Resolved) string {
	if !r.Available {
		return "Price on request"
	}
	return "From " + utils.FormatINR(r.StartingPrice) + " per person"
}

func (h *PricingHandler) resolveTrip(c *gin.Context, req priceRequest) (models.Trip, bool) {
	if req.Trip != nil {
		return *req.Trip, true
	}
	if utils.TrimOrEmpty(req.Slug) == "" {
		RespondDomainError(c, domain.ValidationError{Field: "slug", Msg: "provide a trip slug or an inline trip record"})
		return models.Trip{}, false
	}
	trip, err := h.Trips.Trip(c.Request.Context(), req.Slug)
	if err != nil {
		RespondDomainError(c, err)
		return models.Trip{}, false
	}
	return trip, true
}

// Price resolves a trip's canonical starting price.
func (h *PricingHandler) Price(c *gin.Context) {
	var req priceRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	trip, ok := h.resolveTrip(c, req)
	if !ok {
		return
	}

	resolved := pricing.Resolve(trip)
	c.JSON(http.StatusOK, priceResponse{Resolved: resolved, Display: displayPrice(resolved)})
}

type quoteRequest struct {
	priceRequest
	TierTitle string `json:"tier_title"`
	Adults    int    `json:"adults"`
	Children  int    `json:"children"`
}

type quoteResponse struct {
	pricing.PriceQuote
	DisplayTotal string `json:"display_total,omitempty"`
}

// Quote prices a traveller selection against one sharing tier.
func (h *PricingHandler) Quote(c *gin.Context) {
	var req quoteRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	trip, ok := h.resolveTrip(c, req.priceRequest)
	if !ok {
		return
	}

	quote := pricing.Quote(pricing.Resolve(trip), req.TierTitle, req.Adults, req.Children)
	resp := quoteResponse{PriceQuote: quote}
	if quote.Priceable {
		resp.DisplayTotal = utils.FormatINR(quote.TotalPrice)
	}
	c.JSON(http.StatusOK, resp)
}
