package models

import "time"

// DescriptionRequest is the prompt material for AI description generation,
// derived from the draft snapshot at call time.
type DescriptionRequest struct {
	Title    string    `json:"title"`
	Category string    `json:"category"`
	Type     EventType `json:"event_type"`
	Capacity int       `json:"capacity"`
	Address  string    `json:"address"`
	Keywords []string  `json:"keywords,omitempty"`
}

// GeneratedContent replaces the draft's description, SEO tags and
// hashtags wholesale on success.
type GeneratedContent struct {
	Description string   `json:"description"`
	SEOTags     []string `json:"seo_tags"`
	Hashtags    []string `json:"hashtags"`
}

// OptimizationSuggestions carries per-field suggestions. A nil field
// means "no suggestion, keep what the draft has"; each field is applied
// independently.
type OptimizationSuggestions struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartAt     *time.Time `json:"start_at,omitempty"`
	Capacity    *int       `json:"capacity,omitempty"`
}

// EventSeed is the minimal input for bootstrapping a full draft.
type EventSeed struct {
	Type               EventType `json:"event_type"`
	Title              string    `json:"title"`
	ExpectedAttendance int       `json:"expected_attendance"`
}

// CreateEventRequest is the assembled payload sent to the event store
// on publish.
type CreateEventRequest struct {
	CreatorID   string       `json:"creator_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Subcategory string       `json:"subcategory,omitempty"`
	Type        EventType    `json:"event_type"`
	StartAt     time.Time    `json:"start_at"`
	Location    Location     `json:"location"`
	Price       Price        `json:"price"`
	Capacity    Capacity     `json:"capacity"`
	Public      bool         `json:"public"`
	Images      []string     `json:"images"`
	Reels       []Reel       `json:"reels,omitempty"`
	TicketTypes []TicketType `json:"ticket_types,omitempty"`
	Products    []Product    `json:"products,omitempty"`
	SEOTags     []string     `json:"seo_tags,omitempty"`
	Hashtags    []string     `json:"hashtags,omitempty"`
}

// PublishedEvent is the server-assigned identity of a created event.
type PublishedEvent struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}
