package leadcapture

import (
	"strconv"
	"strings"

	"backend/internal/domain"
)

const (
	maxChildren = 5
	minChildAge = 2
	maxChildAge = 11
)

// LeadForm holds everything a visitor types into a capture surface.
// One form per open surface; nothing here is shared across surfaces.
type LeadForm struct {
	Destination   string
	TripSlug      string
	SourceSurface string

	// TravelDate is YYYY-MM-DD, empty means "dates are flexible".
	TravelDate    string
	DepartureDate string
	SharingOption string
	HotelCategory string

	Adults    int
	ChildAges []int

	FullName      string
	ContactNumber string
	Email         string
	Comments      string
}

// NewLeadForm seeds a form with its originating surface and trip context.
func NewLeadForm(surface, destination, tripSlug string) *LeadForm {
	return &LeadForm{
		SourceSurface: surface,
		Destination:   destination,
		TripSlug:      tripSlug,
		Adults:        1,
	}
}

// AddChild appends one child entry. A sixth entry is rejected and the
// list stays untouched.
func (f *LeadForm) AddChild() error {
	if len(f.ChildAges) >= maxChildren {
		return domain.ValidationError{Field: "children", Msg: "maximum of 5 children per enquiry"}
	}
	f.ChildAges = append(f.ChildAges, minChildAge)
	return nil
}

// RemoveChild drops the entry at idx; out-of-range indexes are ignored.
func (f *LeadForm) RemoveChild(idx int) {
	if idx < 0 || idx >= len(f.ChildAges) {
		return
	}
	f.ChildAges = append(f.ChildAges[:idx], f.ChildAges[idx+1:]...)
}

// SetChildAge clamps the age into [2, 11]. Non-numeric input keeps the
// prior value.
func (f *LeadForm) SetChildAge(idx int, raw string) {
	if idx < 0 || idx >= len(f.ChildAges) {
		return
	}
	age, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return
	}
	if age < minChildAge {
		age = minChildAge
	}
	if age > maxChildAge {
		age = maxChildAge
	}
	f.ChildAges[idx] = age
}

// Reset restores defaults while keeping the surface/trip seed, so a
// surface that stays open after success starts clean.
func (f *LeadForm) Reset() {
	*f = LeadForm{
		SourceSurface: f.SourceSurface,
		Destination:   f.Destination,
		TripSlug:      f.TripSlug,
		Adults:        1,
	}
}
