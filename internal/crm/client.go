package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	pathEnquiry        = "/api/leads/enquiry"
	pathBookingRequest = "/api/leads/booking-request"
)

// EnquiryPayload is the lead body the CRM expects for general enquiries.
type EnquiryPayload struct {
	Destination        string `json:"destination"`
	DepartureCity      string `json:"departure_city"`
	TravelDate         string `json:"travel_date"`
	Adults             int    `json:"adults"`
	Children           int    `json:"children"`
	Infants            int    `json:"infants"`
	HotelCategory      string `json:"hotel_category"`
	FullName           string `json:"full_name"`
	ContactNumber      string `json:"contact_number"`
	Email              string `json:"email"`
	AdditionalComments string `json:"additional_comments"`
	DomainName         string `json:"domain_name"`
}

// BookingRequestPayload is the lead body for a dated departure booking.
type BookingRequestPayload struct {
	DepartureDate       string  `json:"departure_date"`
	SharingOption       string  `json:"sharing_option"`
	PricePerPerson      float64 `json:"price_per_person"`
	Adults              int     `json:"adults"`
	Children            int     `json:"children"`
	EstimatedTotalPrice float64 `json:"estimated_total_price"`
	FullName            string  `json:"full_name"`
	Email               string  `json:"email"`
	PhoneNumber         string  `json:"phone_number"`
	DomainName          string  `json:"domain_name"`
}

// Client talks to the agency CRM over its lead intake endpoints.
type Client struct {
	baseURL    string
	apiKey     string
	domainName string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, domainName string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		domainName: domainName,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// DomainName reports the site identity stamped on every lead.
func (c *Client) DomainName() string { return c.domainName }

func (c *Client) SubmitEnquiry(ctx context.Context, p EnquiryPayload) error {
	p.DomainName = c.domainName
	return c.post(ctx, pathEnquiry, p)
}

func (c *Client) SubmitBookingRequest(ctx context.Context, p BookingRequestPayload) error {
	p.DomainName = c.domainName
	return c.post(ctx, pathBookingRequest, p)
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode lead: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submit lead: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// never surface the CRM response body to callers
		return fmt.Errorf("crm rejected lead: status %d", resp.StatusCode)
	}
	return nil
}
