package mediaapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"event-studio/models"
)

// Client talks to the media optimization service that transcodes,
// compresses and content-scans uploaded assets. MockAPI short-circuits
// network calls for local development.
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

type imageBatchRequest struct {
	Sources []string `json:"sources"`
}

type videoRequest struct {
	Source string `json:"source"`
}

func (c *Client) ProcessImages(ctx context.Context, sources []string) (*models.ImageBatchResult, error) {
	if c.MockAPI {
		return c.mockProcessImages(sources)
	}

	var result models.ImageBatchResult
	if err := c.post(ctx, "/v1/images/optimize", imageBatchRequest{Sources: sources}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ProcessVideo(ctx context.Context, source string) (*models.VideoResult, error) {
	if c.MockAPI {
		return c.mockProcessVideo(source)
	}

	var result models.VideoResult
	if err := c.post(ctx, "/v1/videos/optimize", videoRequest{Source: source}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) post(ctx context.Context, endpoint string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("mediaapi: marshal request: %w", err)
	}

	reqURL, err := url.JoinPath(c.BaseURL, endpoint)
	if err != nil {
		return fmt.Errorf("mediaapi: build url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mediaapi: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("mediaapi: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mediaapi: %s returned %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("mediaapi: decode response: %w", err)
	}
	return nil
}

func (c *Client) mockProcessImages(sources []string) (*models.ImageBatchResult, error) {
	result := &models.ImageBatchResult{
		OptimizedURLs: make([]string, 0, len(sources)),
		AltTexts:      make(map[string]string, len(sources)),
	}
	for _, src := range sources {
		optimized := mockOptimizedURL(src, "webp")
		result.OptimizedURLs = append(result.OptimizedURLs, optimized)
		result.AltTexts[optimized] = "Photo for event listing"
	}
	return result, nil
}

func (c *Client) mockProcessVideo(source string) (*models.VideoResult, error) {
	return &models.VideoResult{
		OptimizedURL: mockOptimizedURL(source, "mp4"),
		ThumbnailURL: mockOptimizedURL(source, "jpg"),
	}, nil
}

func mockOptimizedURL(source, ext string) string {
	base := strings.TrimSuffix(path.Base(source), path.Ext(source))
	if base == "" || base == "." {
		base = "asset"
	}
	return fmt.Sprintf("https://cdn.local/optimized/%s.%s", base, ext)
}
