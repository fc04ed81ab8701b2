package mediaapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"event-studio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessImages_MockMode(t *testing.T) {
	client := NewClient("", "", time.Second, true)

	result, err := client.ProcessImages(context.Background(), []string{"uploads/stage.jpg", "uploads/crowd.png"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://cdn.local/optimized/stage.webp",
		"https://cdn.local/optimized/crowd.webp",
	}, result.OptimizedURLs)
	assert.Len(t, result.AltTexts, 2)
}

func TestProcessVideo_MockMode(t *testing.T) {
	client := NewClient("", "", time.Second, true)

	result, err := client.ProcessVideo(context.Background(), "uploads/promo.mov")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.local/optimized/promo.mp4", result.OptimizedURL)
	assert.Equal(t, "https://cdn.local/optimized/promo.jpg", result.ThumbnailURL)
}

func TestProcessImages_SendsAPIKey(t *testing.T) {
	var gotKey string
	var gotBody imageBatchRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(models.ImageBatchResult{
			OptimizedURLs: []string{"https://cdn.example.com/a.webp"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret", time.Second, false)

	result, err := client.ProcessImages(context.Background(), []string{"a.jpg"})
	require.NoError(t, err)

	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, []string{"a.jpg"}, gotBody.Sources)
	assert.Equal(t, []string{"https://cdn.example.com/a.webp"}, result.OptimizedURLs)
}

func TestProcessImages_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "pipeline overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret", time.Second, false)

	_, err := client.ProcessImages(context.Background(), []string{"a.jpg"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestProcessVideo_RealCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/videos/optimize", r.URL.Path)
		json.NewEncoder(w).Encode(models.VideoResult{
			OptimizedURL: "https://cdn.example.com/promo.mp4",
			ThumbnailURL: "https://cdn.example.com/promo.jpg",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret", time.Second, false)

	result, err := client.ProcessVideo(context.Background(), "promo.mov")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/promo.mp4", result.OptimizedURL)
}
