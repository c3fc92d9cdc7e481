package leadcapture

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/crm"
	"backend/internal/domain"
	"backend/internal/pricing"
	"backend/internal/sched"
)

type fakeSubmitter struct {
	mu        sync.Mutex
	enquiries []crm.EnquiryPayload
	bookings  []crm.BookingRequestPayload
	err       error
	block     chan struct{}
}

func (s *fakeSubmitter) SubmitEnquiry(_ context.Context, p crm.EnquiryPayload) error {
	s.mu.Lock()
	s.enquiries = append(s.enquiries, p)
	s.mu.Unlock()
	if s.block != nil {
		<-s.block
	}
	return s.err
}

func (s *fakeSubmitter) SubmitBookingRequest(_ context.Context, p crm.BookingRequestPayload) error {
	s.mu.Lock()
	s.bookings = append(s.bookings, p)
	s.mu.Unlock()
	return s.err
}

func (s *fakeSubmitter) enquiryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.enquiries)
}

func alwaysVerify(string, string) bool { return true }
func neverVerify(string, string) bool  { return false }

func validForm() *LeadForm {
	f := NewLeadForm("hero quote form", "Goa", "")
	f.FullName = "Asha Verma"
	f.Email = "asha@example.com"
	f.ContactNumber = "9876543210"
	f.Adults = 2
	return f
}

func TestSubmitEnquirySuccess(t *testing.T) {
	sub := &fakeSubmitter{}
	f := validForm()
	require.NoError(t, f.AddChild())
	f.SetChildAge(0, "7")

	w := New(IntentEnquiry, f, sub, alwaysVerify)
	require.NoError(t, w.Submit(context.Background(), "c1", "7"))

	assert.Equal(t, StatusSucceeded, w.Status())
	require.Len(t, sub.enquiries, 1)

	p := sub.enquiries[0]
	assert.Equal(t, "Goa", p.Destination)
	assert.Equal(t, "hero quote form", p.DepartureCity)
	assert.Equal(t, 2, p.Adults)
	assert.Equal(t, 1, p.Children)
	assert.Equal(t, 0, p.Infants)
	assert.Contains(t, p.AdditionalComments, "hero quote form")
	assert.Contains(t, p.AdditionalComments, "Children ages: 7")

	// form resets to defaults after success
	assert.Empty(t, f.FullName)
	assert.Empty(t, f.ChildAges)
}

func TestSubmitValidationNeverTouchesNetwork(t *testing.T) {
	sub := &fakeSubmitter{}
	f := validForm()
	f.Email = "broken"

	w := New(IntentEnquiry, f, sub, alwaysVerify)
	err := w.Submit(context.Background(), "c1", "7")

	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, 0, sub.enquiryCount())
	assert.Equal(t, StatusEditing, w.Status())
	assert.Contains(t, w.FieldErrors(), "email")
}

func TestSubmitWrongChallengeNeverTouchesNetwork(t *testing.T) {
	sub := &fakeSubmitter{}
	w := New(IntentEnquiry, validForm(), sub, neverVerify)

	err := w.Submit(context.Background(), "c1", "99")

	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, 0, sub.enquiryCount())
	assert.Contains(t, w.FieldErrors(), "challenge")
}

func TestSubmitMutualExclusion(t *testing.T) {
	sub := &fakeSubmitter{block: make(chan struct{})}
	w := New(IntentEnquiry, validForm(), sub, alwaysVerify)

	first := make(chan error, 1)
	go func() { first <- w.Submit(context.Background(), "c1", "7") }()

	// wait until the first attempt is inside the CRM call
	require.Eventually(t, func() bool { return sub.enquiryCount() == 1 }, time.Second, time.Millisecond)

	err := w.Submit(context.Background(), "c2", "7")
	require.Error(t, err)
	assert.True(t, domain.IsConflict(err))

	close(sub.block)
	require.NoError(t, <-first)
	assert.Equal(t, 1, sub.enquiryCount(), "exactly one network call per outstanding attempt")
}

func TestSubmitFailureIsGenericAndRetryable(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("upstream said: 502 with gory details")}
	w := New(IntentEnquiry, validForm(), sub, alwaysVerify)

	err := w.Submit(context.Background(), "c1", "7")
	require.Error(t, err)
	assert.Equal(t, StatusFailed, w.Status())
	assert.NotContains(t, err.Error(), "gory details")

	sub.err = nil
	w.Edit()
	require.NoError(t, w.Submit(context.Background(), "c2", "7"))
	assert.Equal(t, StatusSucceeded, w.Status())
	assert.Equal(t, 2, sub.enquiryCount())
}

func TestBookingIntentUsesResolvedQuote(t *testing.T) {
	resolved := pricing.Resolved{
		PricingModel:   "fixed_departure",
		Available:      true,
		PricesByTier:   map[string]float64{"Double Sharing": 15000},
		AvailableDates: []string{"2026-10-12"},
	}

	sub := &fakeSubmitter{}
	f := validForm()
	f.DepartureDate = "2026-10-12"
	f.SharingOption = "Double Sharing"
	require.NoError(t, f.AddChild())

	w := New(IntentBooking, f, sub, alwaysVerify, WithPricing(&resolved))
	require.NoError(t, w.Submit(context.Background(), "c1", "7"))

	require.Len(t, sub.bookings, 1)
	p := sub.bookings[0]
	assert.Equal(t, "Double Sharing", p.SharingOption)
	assert.InDelta(t, 15000, p.PricePerPerson, 0.001)
	assert.InDelta(t, 45000, p.EstimatedTotalPrice, 0.001)
	assert.Equal(t, "9876543210", p.PhoneNumber)
}

func TestBookingUnknownTierStaysLocal(t *testing.T) {
	resolved := pricing.Resolved{
		PricingModel: "fixed_departure",
		Available:    true,
		PricesByTier: map[string]float64{"Double Sharing": 15000},
	}

	sub := &fakeSubmitter{}
	f := validForm()
	f.DepartureDate = "2026-10-12"
	f.SharingOption = "Penthouse"

	w := New(IntentBooking, f, sub, alwaysVerify, WithPricing(&resolved))
	err := w.Submit(context.Background(), "c1", "7")

	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Empty(t, sub.bookings)
}

func TestCloseCancelsAutoCloseTimer(t *testing.T) {
	clock := sched.NewFake()
	closed := 0
	sub := &fakeSubmitter{}

	w := New(IntentEnquiry, validForm(), sub, alwaysVerify,
		WithClock(clock),
		WithAutoClose(3*time.Second, func() { closed++ }))

	require.NoError(t, w.Submit(context.Background(), "c1", "7"))
	assert.Equal(t, 1, clock.Pending())

	w.Close()
	clock.Advance(10 * time.Second)
	assert.Equal(t, 0, closed, "cancelled timer must not fire")
}

func TestAutoCloseFiresAfterDelay(t *testing.T) {
	clock := sched.NewFake()
	closed := 0
	sub := &fakeSubmitter{}

	w := New(IntentEnquiry, validForm(), sub, alwaysVerify,
		WithClock(clock),
		WithAutoClose(3*time.Second, func() { closed++ }))

	require.NoError(t, w.Submit(context.Background(), "c1", "7"))
	clock.Advance(3 * time.Second)
	assert.Equal(t, 1, closed)
}
