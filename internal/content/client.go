package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

// Client reads the marketing catalog from the external content API.
// Everything except trips is passed through verbatim; trips are decoded
// so pricing can be resolved server-side.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Trip fetches and decodes one trip record by slug.
func (c *Client) Trip(ctx context.Context, slug string) (models.Trip, error) {
	var trip models.Trip
	raw, err := c.get(ctx, "/api/trips/"+slug)
	if err != nil {
		return trip, err
	}
	if err := json.Unmarshal(raw, &trip); err != nil {
		return trip, fmt.Errorf("decode trip %q: %w", slug, err)
	}
	return trip, nil
}

// Destinations returns the destination catalog as raw JSON.
func (c *Client) Destinations(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/api/destinations")
}

// FAQs returns the FAQ list as raw JSON.
func (c *Client) FAQs(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/api/faqs")
}

func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.InternalError{Msg: "content service unavailable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return nil, domain.NotFoundError{Resource: "content"}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, domain.InternalError{Msg: fmt.Sprintf("content service returned %d", resp.StatusCode)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.InternalError{Msg: "read content response", Err: err}
	}
	return raw, nil
}
