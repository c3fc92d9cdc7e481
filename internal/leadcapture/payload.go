package leadcapture

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"backend/internal/crm"
	"backend/internal/pricing"
	"backend/internal/utils"
)

// buildCall freezes the outgoing payload while the form lock is held, so
// later edits cannot race the network call.
func (w *Workflow) buildCall(ctx context.Context) (func() error, error) {
	switch w.intent {
	case IntentBooking:
		if w.resolved == nil {
			return nil, errors.New("this trip cannot be booked online")
		}
		quote := pricing.Quote(*w.resolved, w.form.SharingOption, w.form.Adults, len(w.form.ChildAges))
		if !quote.Priceable {
			return nil, errors.New("selected sharing option has no price yet")
		}
		p := w.bookingPayload(quote)
		return func() error { return w.submitter.SubmitBookingRequest(ctx, p) }, nil
	default:
		p := w.enquiryPayload()
		return func() error { return w.submitter.SubmitEnquiry(ctx, p) }, nil
	}
}

func (w *Workflow) enquiryPayload() crm.EnquiryPayload {
	f := w.form
	return crm.EnquiryPayload{
		Destination:        utils.TrimOrEmpty(f.Destination),
		DepartureCity:      f.SourceSurface,
		TravelDate:         utils.TrimOrEmpty(f.TravelDate),
		Adults:             f.Adults,
		Children:           len(f.ChildAges),
		Infants:            0,
		HotelCategory:      utils.TrimOrEmpty(f.HotelCategory),
		FullName:           utils.NormalizeSpace(f.FullName),
		ContactNumber:      utils.TrimOrEmpty(f.ContactNumber),
		Email:              utils.TrimOrEmpty(f.Email),
		AdditionalComments: buildComments(f),
	}
}

func (w *Workflow) bookingPayload(quote pricing.PriceQuote) crm.BookingRequestPayload {
	f := w.form
	return crm.BookingRequestPayload{
		DepartureDate:       utils.TrimOrEmpty(f.DepartureDate),
		SharingOption:       f.SharingOption,
		PricePerPerson:      quote.PricePerPerson,
		Adults:              f.Adults,
		Children:            len(f.ChildAges),
		EstimatedTotalPrice: quote.TotalPrice,
		FullName:            utils.NormalizeSpace(f.FullName),
		Email:               utils.TrimOrEmpty(f.Email),
		PhoneNumber:         utils.DigitsOnly(f.ContactNumber),
	}
}

// buildComments packs context the agents would otherwise lose: which
// surface produced the lead, children's ages, and any free-text note.
func buildComments(f *LeadForm) string {
	var parts []string
	if f.SourceSurface != "" {
		parts = append(parts, fmt.Sprintf("Lead captured via %s.", f.SourceSurface))
	}
	if len(f.ChildAges) > 0 {
		ages := make([]string, len(f.ChildAges))
		for i, a := range f.ChildAges {
			ages[i] = strconv.Itoa(a)
		}
		parts = append(parts, "Children ages: "+strings.Join(ages, ", ")+".")
	}
	if note := utils.NormalizeSpace(f.Comments); note != "" {
		parts = append(parts, note)
	}
	return strings.Join(parts, " ")
}
