package leadcapture

import (
	"context"
	"sync"
	"time"

	"backend/internal/crm"
	"backend/internal/domain"
	"backend/internal/pricing"
	"backend/internal/sched"
)

// Intent selects which CRM endpoint a submission goes to.
type Intent string

const (
	IntentEnquiry Intent = "enquiry"
	IntentBooking Intent = "booking_request"
)

// Status tracks the workflow state machine.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusEditing    Status = "editing"
	StatusValidating Status = "validating"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// Submitter is the CRM surface the workflow needs; *crm.Client satisfies it.
type Submitter interface {
	SubmitEnquiry(ctx context.Context, p crm.EnquiryPayload) error
	SubmitBookingRequest(ctx context.Context, p crm.BookingRequestPayload) error
}

// VerifyFunc checks a human-check answer. Implementations are one-shot:
// a failed check burns the challenge and the caller must issue a new one.
type VerifyFunc func(challengeID, answer string) bool

// Workflow drives one capture surface from editing through submission.
// Each surface owns its own instance; only the ticker cursor and the
// engagement flags are shared process-wide.
type Workflow struct {
	mu          sync.Mutex
	status      Status
	intent      Intent
	form        *LeadForm
	fieldErrors map[string]string

	submitter Submitter
	verify    VerifyFunc
	resolved  *pricing.Resolved

	clock      sched.Clock
	handles    sched.HandleSet
	closeDelay time.Duration
	onClose    func()
}

type Option func(*Workflow)

// WithClock swaps the wall clock, used by tests.
func WithClock(c sched.Clock) Option {
	return func(w *Workflow) { w.clock = c }
}

// WithAutoClose tears the surface down a fixed delay after success, once
// the visitor has seen the confirmation.
func WithAutoClose(delay time.Duration, onClose func()) Option {
	return func(w *Workflow) {
		w.closeDelay = delay
		w.onClose = onClose
	}
}

// WithPricing attaches resolved trip pricing; required for booking intent.
func WithPricing(r *pricing.Resolved) Option {
	return func(w *Workflow) { w.resolved = r }
}

func New(intent Intent, form *LeadForm, submitter Submitter, verify VerifyFunc, opts ...Option) *Workflow {
	w := &Workflow{
		status:    StatusEditing,
		intent:    intent,
		form:      form,
		submitter: submitter,
		verify:    verify,
		clock:     sched.Real(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workflow) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

func (w *Workflow) Intent() Intent { return w.intent }

func (w *Workflow) Form() *LeadForm { return w.form }

// FieldErrors returns the annotations from the last validation pass.
func (w *Workflow) FieldErrors() map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[string]string, len(w.fieldErrors))
	for k, v := range w.fieldErrors {
		out[k] = v
	}
	return out
}

// Submit runs one attempt: full validation first, then exactly one CRM
// call. While an attempt is outstanding, further calls are rejected with
// a conflict rather than queued.
func (w *Workflow) Submit(ctx context.Context, challengeID, answer string) error {
	w.mu.Lock()
	if w.status == StatusSubmitting {
		w.mu.Unlock()
		return domain.ConflictError{Resource: "submission", Msg: "a submission is already in progress"}
	}

	w.status = StatusValidating
	errs := validate(w.form, w.intent)
	if !w.verify(challengeID, answer) {
		errs["challenge"] = "verification answer is incorrect"
	}

	var call func() error
	if len(errs) == 0 {
		var buildErr error
		call, buildErr = w.buildCall(ctx)
		if buildErr != nil {
			errs["sharing_option"] = buildErr.Error()
		}
	}

	if len(errs) > 0 {
		w.fieldErrors = errs
		w.status = StatusEditing
		w.mu.Unlock()
		return domain.ValidationError{Msg: "please correct the highlighted fields"}
	}

	w.fieldErrors = nil
	w.status = StatusSubmitting
	w.mu.Unlock()

	err := call()

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.status = StatusFailed
		return domain.InternalError{Msg: "we could not send your request, please try again", Err: err}
	}

	w.status = StatusSucceeded
	w.form.Reset()
	if w.closeDelay > 0 && w.onClose != nil {
		w.handles.Track(w.clock.AfterFunc(w.closeDelay, w.onClose))
	}
	return nil
}

// Edit moves a failed workflow back to editing for a fresh attempt.
func (w *Workflow) Edit() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.status == StatusFailed || w.status == StatusIdle || w.status == StatusSucceeded {
		w.status = StatusEditing
	}
}

// Close tears the surface down and cancels any pending auto-close timer.
func (w *Workflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handles.StopAll()
	w.form.Reset()
	w.fieldErrors = nil
	w.status = StatusIdle
}
