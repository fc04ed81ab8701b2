package services

import (
	"strings"
	"testing"
	"time"

	"event-studio/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func fixedEngine(now time.Time) *ValidationEngine {
	v := NewValidationEngine()
	v.now = func() time.Time { return now }
	return v
}

func validDraft(now time.Time) *models.EventDraft {
	draft := models.NewEventDraft("creator1")
	draft.Title = "Summer Jazz Night"
	draft.Description = "An evening of live jazz with three local bands."
	draft.Category = "music"
	draft.StartAt = now.Add(48 * time.Hour)
	draft.Price = models.Price{Amount: decimal.NewFromInt(25), Currency: "USD"}
	draft.Capacity = models.Capacity{MaxAttendees: 200}
	draft.Location = models.Location{
		Address:   "12 Riverside Ave",
		Latitude:  40.71,
		Longitude: -74.0,
	}
	draft.Images = []string{"https://cdn.local/optimized/stage.webp"}
	return draft
}

func TestValidate_ValidDraft(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	v := fixedEngine(now)

	errs := v.Validate(validDraft(now))

	assert.Empty(t, errs)
}

func TestValidate_DoesNotMutateDraft(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	v := fixedEngine(now)
	draft := models.NewEventDraft("creator1")

	v.Validate(draft)
	v.Validate(draft)

	assert.Empty(t, draft.ValidationErrors)
}

func TestValidate_TitleBounds(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	v := fixedEngine(now)

	tests := []struct {
		name    string
		title   string
		wantErr string
	}{
		{"empty", "", "Title is required"},
		{"blank", "   ", "Title is required"},
		{"four chars", "Jazz", "Title must be at least 5 characters"},
		{"five chars", "Jazzy", ""},
		{"hundred chars", strings.Repeat("a", 100), ""},
		{"hundred one chars", strings.Repeat("a", 101), "Title must be at most 100 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft(now)
			draft.Title = tt.title

			errs := v.Validate(draft)
			if tt.wantErr == "" {
				assert.NotContains(t, errs, FieldTitle)
			} else {
				assert.Equal(t, tt.wantErr, errs[FieldTitle])
			}
		})
	}
}

func TestValidate_DescriptionBounds(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	v := fixedEngine(now)

	tests := []struct {
		name        string
		description string
		wantErr     string
	}{
		{"empty", "", "Description is required"},
		{"nineteen chars", strings.Repeat("b", 19), "Description must be at least 20 characters"},
		{"twenty chars", strings.Repeat("b", 20), ""},
		{"two thousand chars", strings.Repeat("b", 2000), ""},
		{"over limit", strings.Repeat("b", 2001), "Description must be at most 2000 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft(now)
			draft.Description = tt.description

			errs := v.Validate(draft)
			if tt.wantErr == "" {
				assert.NotContains(t, errs, FieldDescription)
			} else {
				assert.Equal(t, tt.wantErr, errs[FieldDescription])
			}
		})
	}
}

func TestValidate_DateRules(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	v := fixedEngine(now)

	tests := []struct {
		name    string
		startAt time.Time
		wantErr string
	}{
		{"in the past", now.Add(-time.Hour), "Event date must be in the future"},
		{"exactly now", now, "Event date must be in the future"},
		{"under 24 hours", now.Add(23*time.Hour + 59*time.Minute), "Event date must be at least 24 hours from now"},
		{"exactly 24 hours", now.Add(24 * time.Hour), ""},
		{"exactly 365 days", now.AddDate(0, 0, 365), ""},
		{"over 365 days", now.AddDate(0, 0, 365).Add(time.Hour), "Event date must be within 365 days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft(now)
			draft.StartAt = tt.startAt

			errs := v.Validate(draft)
			if tt.wantErr == "" {
				assert.NotContains(t, errs, FieldDate)
			} else {
				assert.Equal(t, tt.wantErr, errs[FieldDate])
			}
		})
	}
}

func TestValidate_PriceBounds(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	v := fixedEngine(now)

	tests := []struct {
		name    string
		amount  decimal.Decimal
		wantErr string
	}{
		{"negative", decimal.NewFromInt(-1), "Price cannot be negative"},
		{"free", decimal.Zero, ""},
		{"at limit", decimal.NewFromInt(10000), ""},
		{"over limit", decimal.NewFromFloat(10000.01), "Price cannot exceed 10000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft(now)
			draft.Price.Amount = tt.amount

			errs := v.Validate(draft)
			if tt.wantErr == "" {
				assert.NotContains(t, errs, FieldPrice)
			} else {
				assert.Equal(t, tt.wantErr, errs[FieldPrice])
			}
		})
	}
}

func TestValidate_CapacityBounds(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	v := fixedEngine(now)

	tests := []struct {
		name     string
		capacity int
		wantErr  string
	}{
		{"zero", 0, "Capacity must be at least 1 attendee"},
		{"one", 1, ""},
		{"at limit", 10000, ""},
		{"over limit", 10001, "Capacity cannot exceed 10000 attendees"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft(now)
			draft.Capacity.MaxAttendees = tt.capacity

			errs := v.Validate(draft)
			if tt.wantErr == "" {
				assert.NotContains(t, errs, FieldCapacity)
			} else {
				assert.Equal(t, tt.wantErr, errs[FieldCapacity])
			}
		})
	}
}

func TestValidate_Location(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	v := fixedEngine(now)

	t.Run("missing address", func(t *testing.T) {
		draft := validDraft(now)
		draft.Location.Address = "  "

		errs := v.Validate(draft)
		assert.Equal(t, "Address is required", errs[FieldLocation])
	})

	t.Run("no map pin", func(t *testing.T) {
		draft := validDraft(now)
		draft.Location.Latitude = 0
		draft.Location.Longitude = 0

		errs := v.Validate(draft)
		assert.Equal(t, "Please select a location on the map", errs[FieldLocation])
	})

	t.Run("zero latitude alone is fine", func(t *testing.T) {
		draft := validDraft(now)
		draft.Location.Latitude = 0
		draft.Location.Longitude = -74.0

		errs := v.Validate(draft)
		assert.NotContains(t, errs, FieldLocation)
	})
}

func TestValidate_MediaCounts(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	v := fixedEngine(now)

	t.Run("no images", func(t *testing.T) {
		draft := validDraft(now)
		draft.Images = nil

		errs := v.Validate(draft)
		assert.Equal(t, "At least 1 image is required", errs[FieldImages])
	})

	t.Run("too many images", func(t *testing.T) {
		draft := validDraft(now)
		draft.Images = make([]string, 11)

		errs := v.Validate(draft)
		assert.Equal(t, "At most 10 images are allowed", errs[FieldImages])
	})

	t.Run("too many reels", func(t *testing.T) {
		draft := validDraft(now)
		draft.Reels = make([]models.Reel, 6)

		errs := v.Validate(draft)
		assert.Equal(t, "At most 5 reels are allowed", errs[FieldReels])
	})

	t.Run("five reels allowed", func(t *testing.T) {
		draft := validDraft(now)
		draft.Reels = make([]models.Reel, 5)

		errs := v.Validate(draft)
		assert.NotContains(t, errs, FieldReels)
	})
}

func TestIsPublishable(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	v := fixedEngine(now)

	assert.True(t, v.IsPublishable(validDraft(now)))

	draft := validDraft(now)
	draft.Title = ""
	assert.False(t, v.IsPublishable(draft))

	draft = validDraft(now)
	draft.Capacity.MaxAttendees = 0
	assert.False(t, v.IsPublishable(draft))
}
