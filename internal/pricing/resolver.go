package pricing

import (
	"backend/internal/domain/models"
)

// Resolved is the canonical pricing view of a trip, normalized from either
// pricing schema. When Available is false callers must render a request-quote
// affordance, never a zero price.
type Resolved struct {
	PricingModel   models.PricingModel `json:"pricing_model"`
	Available      bool                `json:"available"`
	StartingPrice  float64             `json:"starting_price,omitempty"`
	PricesByTier   map[string]float64  `json:"prices_by_tier,omitempty"`
	AvailableDates []string            `json:"available_dates,omitempty"`
}

// PriceQuote is derived per traveller selection and never cached across trips.
type PriceQuote struct {
	PricePerPerson float64 `json:"price_per_person"`
	TotalPrice     float64 `json:"total_price"`
	// Priceable is false when the requested tier is unknown; a zero
	// per-person price then means "cannot price yet", not a free offer.
	Priceable bool `json:"priceable"`
}

// Resolve normalizes a trip record into a canonical starting price.
//
// fixed_departure trips use the first departure as canonical: its cheapest
// package is the starting price and its packages become the tier map. All
// departure dates are exposed for the date picker. customized trips carry a
// single price, or none at all ("price on request").
func Resolve(trip models.Trip) Resolved {
	switch trip.PricingModel {
	case models.PricingFixedDeparture:
		return resolveFixedDeparture(trip)
	case models.PricingCustomized:
		return resolveCustomized(trip)
	default:
		return Resolved{PricingModel: trip.PricingModel}
	}
}

func resolveFixedDeparture(trip models.Trip) Resolved {
	out := Resolved{PricingModel: models.PricingFixedDeparture}
	if len(trip.Departures) == 0 {
		return out
	}

	for _, dep := range trip.Departures {
		if dep.FromDate != "" {
			out.AvailableDates = append(out.AvailableDates, dep.FromDate)
		}
	}

	first := trip.Departures[0]
	tiers := map[string]float64{}
	min := 0.0
	for _, pkg := range first.Packages {
		if pkg.Title == "" || pkg.FinalPrice <= 0 {
			continue
		}
		tiers[pkg.Title] = pkg.FinalPrice
		if min == 0 || pkg.FinalPrice < min {
			min = pkg.FinalPrice
		}
	}
	if min <= 0 {
		return out
	}

	out.Available = true
	out.StartingPrice = min
	out.PricesByTier = tiers
	return out
}

func resolveCustomized(trip models.Trip) Resolved {
	out := Resolved{PricingModel: models.PricingCustomized}
	if trip.Customized == nil || trip.Customized.FinalPrice == nil {
		// price on request
		return out
	}
	price := *trip.Customized.FinalPrice
	if price <= 0 {
		return out
	}
	out.Available = true
	out.StartingPrice = price
	return out
}

// Quote prices a traveller selection against a resolved trip. Infants are
// never priced; total is always per-person times adults plus children.
func Quote(r Resolved, tierTitle string, adults, children int) PriceQuote {
	perPerson, ok := r.PricesByTier[tierTitle]
	if !ok || perPerson <= 0 {
		return PriceQuote{TotalPrice: 0, Priceable: false}
	}
	if adults < 0 {
		adults = 0
	}
	if children < 0 {
		children = 0
	}
	return PriceQuote{
		PricePerPerson: perPerson,
		TotalPrice:     perPerson * float64(adults+children),
		Priceable:      true,
	}
}
