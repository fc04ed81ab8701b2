package assist

import (
	"testing"
	"time"

	"event-studio/models"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestJSONBody_PlainJSON(t *testing.T) {
	body, err := jsonBody(`{"description": "A night of jazz"}`)

	assert.NoError(t, err)
	assert.Equal(t, "A night of jazz", gjson.Get(body, "description").String())
}

func TestJSONBody_StripsMarkdownFences(t *testing.T) {
	wrapped := "```json\n{\"description\": \"A night of jazz\"}\n```"

	body, err := jsonBody(wrapped)

	assert.NoError(t, err)
	assert.Equal(t, "A night of jazz", gjson.Get(body, "description").String())
}

func TestJSONBody_BareFences(t *testing.T) {
	wrapped := "```\n{\"capacity\": 120}\n```"

	body, err := jsonBody(wrapped)

	assert.NoError(t, err)
	assert.Equal(t, int64(120), gjson.Get(body, "capacity").Int())
}

func TestJSONBody_RejectsProse(t *testing.T) {
	_, err := jsonBody("Sure! Here is your description: a night of jazz.")

	assert.Error(t, err)
}

func TestParseOptimizations_NullFieldsStayNil(t *testing.T) {
	sugg := parseOptimizations(`{"title": null, "description": null, "start_at": null, "capacity": null}`)

	assert.Nil(t, sugg.Title)
	assert.Nil(t, sugg.Description)
	assert.Nil(t, sugg.StartAt)
	assert.Nil(t, sugg.Capacity)
}

func TestParseOptimizations_OmittedFieldsStayNil(t *testing.T) {
	sugg := parseOptimizations(`{"title": "Summer Jazz Night"}`)

	assert.Equal(t, "Summer Jazz Night", *sugg.Title)
	assert.Nil(t, sugg.Description)
	assert.Nil(t, sugg.StartAt)
	assert.Nil(t, sugg.Capacity)
}

func TestParseOptimizations_SuppliedFields(t *testing.T) {
	sugg := parseOptimizations(`{"description": "An open-air evening of live jazz.", "start_at": "2026-10-01T19:00:00Z", "capacity": 250}`)

	assert.Nil(t, sugg.Title)
	assert.Equal(t, "An open-air evening of live jazz.", *sugg.Description)
	assert.Equal(t, "2026-10-01T19:00:00Z", sugg.StartAt.Format(time.RFC3339))
	assert.Equal(t, 250, *sugg.Capacity)
}

func TestParseOptimizations_BadDateIsSkipped(t *testing.T) {
	sugg := parseOptimizations(`{"start_at": "next Friday"}`)

	assert.Nil(t, sugg.StartAt)
}

func TestParseGeneratedDraft_IncludesImages(t *testing.T) {
	seed := &models.EventSeed{Title: "Harvest Market", Type: models.EventTypeMarketplace, ExpectedAttendance: 80}
	body := `{"title": "Autumn Harvest Market", "description": "A weekend market of local producers.", "capacity": 120,
		"images": ["https://images.example.com/market-1.jpg", "https://images.example.com/market-2.jpg"]}`

	draft := parseGeneratedDraft(body, seed)

	assert.Equal(t, "Autumn Harvest Market", draft.Title)
	assert.Equal(t, 120, draft.Capacity.MaxAttendees)
	assert.Equal(t, []string{
		"https://images.example.com/market-1.jpg",
		"https://images.example.com/market-2.jpg",
	}, draft.Images)
}

func TestParseGeneratedDraft_StockCoverWhenNoImages(t *testing.T) {
	seed := &models.EventSeed{Title: "Harvest Market", Type: models.EventTypeMarketplace, ExpectedAttendance: 80}

	draft := parseGeneratedDraft(`{"title": "Autumn Harvest Market"}`, seed)

	assert.Equal(t, []string{stockCoverURL}, draft.Images)
}

func TestParseGeneratedDraft_SeedFallbacks(t *testing.T) {
	seed := &models.EventSeed{Title: "Harvest Market", Type: models.EventTypeMarketplace, ExpectedAttendance: 80}

	draft := parseGeneratedDraft(`{}`, seed)

	assert.Equal(t, "Harvest Market", draft.Title)
	assert.Equal(t, 80, draft.Capacity.MaxAttendees)
	assert.True(t, draft.StartAt.After(time.Now()))
}

func TestStringList(t *testing.T) {
	result := gjson.Get(`{"tags": ["jazz", "", "live music"]}`, "tags")

	assert.Equal(t, []string{"jazz", "live music"}, stringList(result))
}

func TestStringList_Empty(t *testing.T) {
	result := gjson.Get(`{"tags": []}`, "tags")

	assert.Nil(t, stringList(result))
}
