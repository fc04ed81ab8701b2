package services

import (
	"context"
	"errors"
	"testing"

	"event-studio/internal/status"
	"event-studio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMediaFixture(t *testing.T, processor MediaProcessor) (*MediaService, *authoringFixture) {
	t.Helper()

	f := newAuthoringFixture(t)
	media := NewMediaService(processor, f.authoring, nil, nil)
	return media, f
}

func TestMedia_EmptyBatchRejected(t *testing.T) {
	media, f := newMediaFixture(t, &fakeMediaProcessor{})

	result, err := media.ProcessImages(context.Background(), nil)

	assert.ErrorIs(t, err, status.ErrEmptyImageBatch)
	assert.Nil(t, result)

	state := media.State()
	assert.Equal(t, models.MediaError, state.Phase)
	assert.Equal(t, "No images selected", state.Message)
	assert.Empty(t, f.authoring.Snapshot().Images)
}

func TestMedia_ImagesAppendToDraft(t *testing.T) {
	processor := &fakeMediaProcessor{
		imagesResult: &models.ImageBatchResult{
			OptimizedURLs: []string{"https://cdn.local/optimized/b.webp", "https://cdn.local/optimized/c.webp"},
			Warnings:      []models.ContentWarning{{Category: "quality", Message: "Low resolution"}},
			AltTexts:      map[string]string{"https://cdn.local/optimized/b.webp": "Stage at dusk"},
		},
	}
	media, f := newMediaFixture(t, processor)

	// Results from a previous batch must survive the next one.
	f.authoring.AppendImages([]string{"https://cdn.local/optimized/a.webp"}, nil, nil)

	result, err := media.ProcessImages(context.Background(), []string{"b.jpg", "c.jpg"})
	require.NoError(t, err)
	assert.Len(t, result.OptimizedURLs, 2)

	snap := f.authoring.Snapshot()
	assert.Equal(t, []string{
		"https://cdn.local/optimized/a.webp",
		"https://cdn.local/optimized/b.webp",
		"https://cdn.local/optimized/c.webp",
	}, snap.Images)
	assert.Len(t, snap.Warnings, 1)
	assert.Equal(t, "Stage at dusk", snap.AltTexts["https://cdn.local/optimized/b.webp"])

	state := media.State()
	assert.Equal(t, models.MediaImagesProcessed, state.Phase)
	assert.Equal(t, result, state.Images)
}

func TestMedia_ImageFailureLeavesDraftUntouched(t *testing.T) {
	processor := &fakeMediaProcessor{imagesErr: errors.New("pipeline timeout")}
	media, f := newMediaFixture(t, processor)

	f.authoring.AppendImages([]string{"https://cdn.local/optimized/a.webp"}, nil, nil)
	before := f.authoring.Snapshot()

	result, err := media.ProcessImages(context.Background(), []string{"b.jpg"})

	assert.Error(t, err)
	assert.Nil(t, result)

	state := media.State()
	assert.Equal(t, models.MediaError, state.Phase)
	assert.Equal(t, "pipeline timeout", state.Message)

	after := f.authoring.Snapshot()
	assert.Equal(t, before.Images, after.Images)
	assert.Equal(t, before.Warnings, after.Warnings)
}

func TestMedia_VideoAppendsReel(t *testing.T) {
	processor := &fakeMediaProcessor{
		videoResult: &models.VideoResult{
			OptimizedURL: "https://cdn.local/optimized/promo.mp4",
			ThumbnailURL: "https://cdn.local/optimized/promo.jpg",
			Warnings:     []models.ContentWarning{{Category: "audio", Message: "Clipping detected"}},
		},
	}
	media, f := newMediaFixture(t, processor)

	result, err := media.ProcessVideo(context.Background(), "promo.mov")
	require.NoError(t, err)

	snap := f.authoring.Snapshot()
	require.Len(t, snap.Reels, 1)
	reel := snap.Reels[0]
	assert.NotEmpty(t, reel.ID)
	assert.Equal(t, "https://cdn.local/optimized/promo.mp4", reel.VideoURL)
	assert.Equal(t, "https://cdn.local/optimized/promo.jpg", reel.ThumbnailURL)
	assert.Len(t, snap.Warnings, 1)

	state := media.State()
	assert.Equal(t, models.MediaVideoProcessed, state.Phase)
	assert.Equal(t, result, state.Video)
}

func TestMedia_VideoFailure(t *testing.T) {
	processor := &fakeMediaProcessor{videoErr: errors.New("transcode failed")}
	media, f := newMediaFixture(t, processor)

	result, err := media.ProcessVideo(context.Background(), "promo.mov")

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, models.MediaError, media.State().Phase)
	assert.Empty(t, f.authoring.Snapshot().Reels)
}
