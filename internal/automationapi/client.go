package automationapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"event-studio/models"
)

// Client provisions post-publish tooling (ticket scanners, order
// dashboards) through the automation service.
type Client struct {
	BaseURL string
	APIKey  string
	MockAPI bool
	client  *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration, mockAPI bool) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		MockAPI: mockAPI,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) SetupAutomation(ctx context.Context, req *models.AutomationRequest) (*models.AutomationResult, error) {
	if c.MockAPI {
		return &models.AutomationResult{EventID: req.EventID, Type: req.Type, Success: true}, nil
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("automationapi: marshal request: %w", err)
	}

	reqURL, err := url.JoinPath(c.BaseURL, "/v1/automations")
	if err != nil {
		return nil, fmt.Errorf("automationapi: build url: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("automationapi: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-API-Key", c.APIKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("automationapi: setup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("automationapi: setup returned %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var result models.AutomationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("automationapi: decode response: %w", err)
	}
	return &result, nil
}
