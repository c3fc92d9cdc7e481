package modal

import (
	"time"

	"backend/internal/challenge"
	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/engagement"
	"backend/internal/leadcapture"
	"backend/internal/pricing"
	"backend/internal/sched"
)

// Surface describes one way a capture form can open: which intent it
// serves, what trip context seeds it, and which challenge flavor guards it.
type Surface struct {
	Name             string
	Intent           leadcapture.Intent
	ChallengeVariant challenge.Variant
	Destination      string
	TripSlug         string
	Resolved         *pricing.Resolved
}

// Opened is a live capture surface: its workflow plus the challenge the
// visitor must answer on submit.
type Opened struct {
	Surface   Surface
	Workflow  *leadcapture.Workflow
	Challenge challenge.Issued
}

// Coordinator builds capture surfaces for scheduler firings and explicit
// quote/booking clicks.
type Coordinator struct {
	submitter  leadcapture.Submitter
	store      *challenge.Store
	clock      sched.Clock
	closeDelay time.Duration
}

func NewCoordinator(submitter leadcapture.Submitter, store *challenge.Store, clock sched.Clock, closeDelay time.Duration) *Coordinator {
	if closeDelay <= 0 {
		closeDelay = 3 * time.Second
	}
	return &Coordinator{
		submitter:  submitter,
		store:      store,
		clock:      clock,
		closeDelay: closeDelay,
	}
}

// ForTrigger seeds the generic enquiry surface a scheduler firing opens.
// No trip is pre-selected; the trigger names the originating surface.
func (c *Coordinator) ForTrigger(t engagement.Trigger) Surface {
	name := "popup"
	switch t {
	case engagement.TriggerEntry:
		name = "welcome popup"
	case engagement.TriggerIdle:
		name = "browsing popup"
	case engagement.TriggerExit:
		name = "exit intent popup"
	}
	return Surface{
		Name:             name,
		Intent:           leadcapture.IntentEnquiry,
		ChallengeVariant: challenge.Additive,
	}
}

// ForEnquiry seeds the plain website enquiry surface.
func (c *Coordinator) ForEnquiry(destination string) Surface {
	return Surface{
		Name:             "website enquiry form",
		Intent:           leadcapture.IntentEnquiry,
		ChallengeVariant: challenge.Additive,
		Destination:      destination,
	}
}

// ForTrip seeds a customize-my-trip enquiry with the trip's context.
func (c *Coordinator) ForTrip(trip models.Trip) Surface {
	return Surface{
		Name:             "trip enquiry form",
		Intent:           leadcapture.IntentEnquiry,
		ChallengeVariant: challenge.Additive,
		Destination:      trip.Destination,
		TripSlug:         trip.Slug,
	}
}

// ForBooking seeds the firm booking surface. Only fixed departures can
// be booked; everything else must go through an enquiry.
func (c *Coordinator) ForBooking(trip models.Trip) (Surface, error) {
	if trip.PricingModel != models.PricingFixedDeparture {
		return Surface{}, domain.ValidationError{Field: "trip", Msg: "only fixed departure trips accept booking requests"}
	}
	resolved := pricing.Resolve(trip)
	if !resolved.Available {
		return Surface{}, domain.ValidationError{Field: "trip", Msg: "this departure has no published price yet"}
	}
	return Surface{
		Name:             "trip booking form",
		Intent:           leadcapture.IntentBooking,
		ChallengeVariant: challenge.Multiplicative,
		Destination:      trip.Destination,
		TripSlug:         trip.Slug,
		Resolved:         &resolved,
	}, nil
}

// Workflow builds the capture workflow for a surface. Answers are
// verified against the one-shot challenge store.
func (c *Coordinator) Workflow(s Surface) *leadcapture.Workflow {
	form := leadcapture.NewLeadForm(s.Name, s.Destination, s.TripSlug)

	opts := []leadcapture.Option{leadcapture.WithClock(c.clock)}
	if s.Resolved != nil {
		opts = append(opts, leadcapture.WithPricing(s.Resolved))
	}

	var w *leadcapture.Workflow
	opts = append(opts, leadcapture.WithAutoClose(c.closeDelay, func() { w.Close() }))
	w = leadcapture.New(s.Intent, form, c.submitter, c.store.Redeem, opts...)
	return w
}

// Open builds the workflow for a surface and issues its challenge.
func (c *Coordinator) Open(s Surface) *Opened {
	return &Opened{
		Surface:   s,
		Workflow:  c.Workflow(s),
		Challenge: c.store.Issue(s.ChallengeVariant),
	}
}
