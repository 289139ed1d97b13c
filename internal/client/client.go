// Package client is an HTTP client for the priceflow API, used by the CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/stayware/priceflow/internal/engine"
	"github.com/stayware/priceflow/internal/pricing"
	"github.com/stayware/priceflow/internal/rules"
)

type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Quote requests a price evaluation.
func (c *Client) Quote(ctx context.Context, req pricing.QuoteRequest) (*engine.PricingResult, error) {
	var resp struct {
		Quote *engine.PricingResult `json:"quote"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/price/quote", req, &resp); err != nil {
		return nil, err
	}
	return resp.Quote, nil
}

// ListRules retrieves rules, optionally filtered by organization.
func (c *Client) ListRules(ctx context.Context, organizationID string) ([]rules.Definition, error) {
	path := "/v1/rules"
	if organizationID != "" {
		path += "?org=" + url.QueryEscape(organizationID)
	}
	var resp struct {
		Rules []rules.Definition `json:"rules"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Rules, nil
}

// GetRule retrieves a single rule by id.
func (c *Client) GetRule(ctx context.Context, id string) (*rules.Definition, error) {
	var def rules.Definition
	if err := c.do(ctx, http.MethodGet, "/v1/rules/"+url.PathEscape(id), nil, &def); err != nil {
		return nil, err
	}
	return &def, nil
}

// UpsertRule creates or replaces a rule and returns its id.
func (c *Client) UpsertRule(ctx context.Context, def rules.Definition) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/rules", def, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

// DeleteRule removes a rule by id.
func (c *Client) DeleteRule(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/rules/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
