package models

// PricingModel discriminates the two incompatible trip pricing schemas coming
// from the content API.
type PricingModel string

const (
	PricingFixedDeparture PricingModel = "fixed_departure"
	PricingCustomized     PricingModel = "customized"
)

// PackageTier is a per-person price bracket tied to room occupancy
// (double/triple/quad sharing).
type PackageTier struct {
	Title      string  `json:"title"`
	FinalPrice float64 `json:"final_price"`
}

// Departure is a fixed, dated instance of a trip with its own tier prices.
type Departure struct {
	FromDate string        `json:"from_date"`
	Packages []PackageTier `json:"packages"`
}

// CustomizedPricing is the single-price schema. A nil FinalPrice means
// "price on request".
type CustomizedPricing struct {
	FinalPrice *float64 `json:"final_price"`
}

// Trip is the content-API record the pricing layer consumes verbatim. Exactly
// one of Departures / Customized is populated, discriminated by PricingModel.
type Trip struct {
	Slug         string             `json:"slug"`
	Title        string             `json:"title"`
	Destination  string             `json:"destination"`
	PricingModel PricingModel       `json:"pricing_model"`
	Departures   []Departure        `json:"departures,omitempty"`
	Customized   *CustomizedPricing `json:"customized,omitempty"`
}
