// Package annotations fetches and orders the annotation records that the
// spreadsheet-backed service keeps for already delivered transcriptions.
package annotations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotConfigured reports a fetch attempt without an endpoint URL.
var ErrNotConfigured = errors.New("annotations: no endpoint configured")

// ErrBadPayload reports a success response that is not a record list.
var ErrBadPayload = errors.New("annotations: response is not a record list")

// Record is one annotation row. The service speaks Spanish on the wire.
type Record struct {
	Contact string `json:"contacto"`
	Date    string `json:"fecha"`
	Summary string `json:"resumen"`
	URL     string `json:"url"`
}

// Client fetches annotation records from a configured endpoint.
type Client struct {
	url        string
	httpClient *http.Client
}

// New creates a Client for the given endpoint URL. An empty URL is
// allowed; FetchAll then fails with ErrNotConfigured.
func New(url string) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchAll retrieves every annotation record in one GET. The service
// reports its own failures as a JSON object with an "error" field and a
// success status, so the body shape decides the outcome, not the status
// line alone.
func (c *Client) FetchAll(ctx context.Context) ([]Record, error) {
	if c.url == "" {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching annotations: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(body, &records); err == nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("annotations service: status %d", resp.StatusCode)
		}
		return records, nil
	}

	var failure struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &failure); err == nil && failure.Error != "" {
		return nil, fmt.Errorf("annotations service: %s", failure.Error)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("annotations service: status %d", resp.StatusCode)
	}
	return nil, ErrBadPayload
}
