package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"backend/internal/domain"
	"backend/internal/http/middleware"
	"backend/internal/leadcapture"
	"backend/internal/modal"
	"backend/internal/utils"
)

// LeadsHandler runs capture workflows for lead submissions.
type LeadsHandler struct {
	Coordinator *modal.Coordinator
	Trips       TripSource
}

func NewLeadsHandler(coordinator *modal.Coordinator, trips TripSource) *LeadsHandler {
	return &LeadsHandler{Coordinator: coordinator, Trips: trips}
}

type leadContact struct {
	FullName      string `json:"full_name"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
}

type leadChallenge struct {
	ChallengeID     string `json:"challenge_id"`
	ChallengeAnswer string `json:"challenge_answer"`
}

type enquiryRequest struct {
	leadContact
	leadChallenge
	Source        string `json:"source"`
	Destination   string `json:"destination"`
	TripSlug      string `json:"trip_slug"`
	TravelDate    string `json:"travel_date"`
	HotelCategory string `json:"hotel_category"`
	Adults        int    `json:"adults"`
	ChildAges     []int  `json:"child_ages"`
	Comments      string `json:"comments"`
}

type bookingRequest struct {
	leadContact
	leadChallenge
	TripSlug      string `json:"trip_slug"`
	DepartureDate string `json:"departure_date"`
	SharingOption string `json:"sharing_option"`
	Adults        int    `json:"adults"`
	ChildAges     []int  `json:"child_ages"`
}

// fillForm pushes traveller details through the form's own entry rules
// so the children cap and age clamp apply to API input too.
func fillForm(f *leadcapture.LeadForm, contact leadContact, adults int, childAges []int) error {
	f.FullName = contact.FullName
	f.ContactNumber = contact.ContactNumber
	f.Email = contact.Email
	f.Adults = adults
	for _, age := range childAges {
		if err := f.AddChild(); err != nil {
			return err
		}
		f.SetChildAge(len(f.ChildAges)-1, strconv.Itoa(age))
	}
	return nil
}

// Enquiry submits a soft lead to the CRM enquiry endpoint.
func (h *LeadsHandler) Enquiry(c *gin.Context) {
	var req enquiryRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	surface := h.Coordinator.ForEnquiry(req.Destination)
	if slug := utils.TrimOrEmpty(req.TripSlug); slug != "" {
		trip, err := h.Trips.Trip(c.Request.Context(), slug)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		surface = h.Coordinator.ForTrip(trip)
		if utils.TrimOrEmpty(req.Destination) != "" {
			surface.Destination = req.Destination
		}
	}
	if name := utils.TrimOrEmpty(req.Source); name != "" {
		surface.Name = name
	}

	w := h.Coordinator.Workflow(surface)
	f := w.Form()
	f.TravelDate = req.TravelDate
	f.HotelCategory = req.HotelCategory
	f.Comments = req.Comments
	if err := fillForm(f, req.leadContact, req.Adults, req.ChildAges); err != nil {
		RespondDomainError(c, err)
		return
	}

	h.submit(c, w, req.leadChallenge)
}

// BookingRequest submits a firm lead for a fixed departure.
func (h *LeadsHandler) BookingRequest(c *gin.Context) {
	var req bookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if utils.TrimOrEmpty(req.TripSlug) == "" {
		RespondDomainError(c, domain.ValidationError{Field: "trip_slug", Msg: "trip_slug is required"})
		return
	}

	trip, err := h.Trips.Trip(c.Request.Context(), req.TripSlug)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	surface, err := h.Coordinator.ForBooking(trip)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	w := h.Coordinator.Workflow(surface)
	f := w.Form()
	f.DepartureDate = req.DepartureDate
	f.SharingOption = req.SharingOption
	if err := fillForm(f, req.leadContact, req.Adults, req.ChildAges); err != nil {
		RespondDomainError(c, err)
		return
	}

	h.submit(c, w, req.leadChallenge)
}

func (h *LeadsHandler) submit(c *gin.Context, w *leadcapture.Workflow, ch leadChallenge) {
	err := w.Submit(c.Request.Context(), ch.ChallengeID, ch.ChallengeAnswer)
	if err != nil {
		var details any
		if fieldErrs := w.FieldErrors(); len(fieldErrs) > 0 {
			details = fieldErrs
		}
		RespondDomainErrorDetails(c, err, details)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "leads", string(w.Intent()), "lead submitted")
	c.JSON(http.StatusCreated, gin.H{"status": string(w.Status())})
}
