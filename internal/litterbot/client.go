// Package litterbot is the client for the Litter-Robot cloud API: it
// authenticates, lists robots, and fetches raw activity history. All
// network I/O for the pipeline lives here; the stats engine never sees
// this package, only the parsed events.
package litterbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://bff.iothings.site/api"

// Robot is one litter box registered on the account.
type Robot struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Serial string `json:"serial"`
}

// Activity is one raw activity-history row as the API reports it. The
// Action string is a semi-structured code ("CD", "CCC", "Pet Weight
// Recorded: 11.2 lbs", ...) that Parse turns into typed events.
type Activity struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
}

// Client talks to the Litter-Robot cloud API. Create one with New and
// call Login before any other method.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges account credentials for a bearer token. The token is
// held on the client for subsequent calls.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body, _ := json.Marshal(map[string]string{
		"email":    username,
		"password": password,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login: unexpected status %s", resp.Status)
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("login: decoding response: %w", err)
	}
	if out.Token == "" {
		return fmt.Errorf("login: empty token in response")
	}
	c.token = out.Token
	return nil
}

// Robots lists the robots on the account.
func (c *Client) Robots(ctx context.Context) ([]Robot, error) {
	var robots []Robot
	if err := c.get(ctx, "/robots", &robots); err != nil {
		return nil, err
	}
	return robots, nil
}

// ActivityHistory fetches up to limit recent activity rows for a robot,
// newest first (the API's native order).
func (c *Client) ActivityHistory(ctx context.Context, robotID string, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = 1000
	}
	var activities []Activity
	path := fmt.Sprintf("/robots/%s/activity?limit=%d", robotID, limit)
	if err := c.get(ctx, path, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	if c.token == "" {
		return fmt.Errorf("litterbot: not logged in")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %s", path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("GET %s: decoding response: %w", path, err)
	}
	return nil
}
