package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventTypeInformative EventType = "informative"
	EventTypeBooking     EventType = "booking"
	EventTypeMarketplace EventType = "marketplace"
	EventTypeHybrid      EventType = "hybrid"
)

type Location struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HasCoordinates reports whether a map pin was actually selected.
// A pin at exactly (0, 0) is treated as unset.
func (l Location) HasCoordinates() bool {
	return l.Latitude != 0 || l.Longitude != 0
}

type Price struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

type Capacity struct {
	MaxAttendees int `json:"max_attendees"`
}

type TicketType struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

type Reel struct {
	ID           string `json:"id"`
	VideoURL     string `json:"video_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// EventDraft is the mutable working copy of an event in progress. It is
// owned by a single authoring session; everything else works on snapshots.
type EventDraft struct {
	ID          string       `json:"id,omitempty"`
	CreatorID   string       `json:"creator_id"`
	Type        EventType    `json:"event_type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Subcategory string       `json:"subcategory,omitempty"`
	StartAt     time.Time    `json:"start_at"`
	Location    Location     `json:"location"`
	Price       Price        `json:"price"`
	Capacity    Capacity     `json:"capacity"`
	Images      []string     `json:"images"`
	Reels       []Reel       `json:"reels"`
	TicketTypes []TicketType `json:"ticket_types,omitempty"`
	Products    []Product    `json:"products,omitempty"`
	Public      bool         `json:"public"`
	SEOTags     []string     `json:"seo_tags,omitempty"`
	Hashtags    []string     `json:"hashtags,omitempty"`

	// AltTexts maps an optimized image URL to its suggested alt text.
	AltTexts map[string]string `json:"alt_texts,omitempty"`

	// Warnings accumulates content warnings reported by the media
	// pipeline for all media currently on the draft.
	Warnings []ContentWarning `json:"warnings,omitempty"`

	// ValidationErrors maps a field name to its current error message.
	// It never holds a stale entry for a field that now satisfies its rule.
	ValidationErrors map[string]string `json:"validation_errors,omitempty"`

	IsDraft     bool      `json:"is_draft"`
	PreviewMode bool      `json:"preview_mode"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewEventDraft(creatorID string) *EventDraft {
	return &EventDraft{
		CreatorID:        creatorID,
		IsDraft:          true,
		AltTexts:         make(map[string]string),
		ValidationErrors: make(map[string]string),
	}
}

// Clone returns a deep copy of the draft so coordinators can read a
// snapshot while the original keeps receiving edits.
func (d *EventDraft) Clone() *EventDraft {
	c := *d

	c.Images = append([]string(nil), d.Images...)
	c.Reels = append([]Reel(nil), d.Reels...)
	c.TicketTypes = append([]TicketType(nil), d.TicketTypes...)
	c.Products = append([]Product(nil), d.Products...)
	c.SEOTags = append([]string(nil), d.SEOTags...)
	c.Hashtags = append([]string(nil), d.Hashtags...)
	c.Warnings = append([]ContentWarning(nil), d.Warnings...)

	c.AltTexts = make(map[string]string, len(d.AltTexts))
	for k, v := range d.AltTexts {
		c.AltTexts[k] = v
	}

	c.ValidationErrors = make(map[string]string, len(d.ValidationErrors))
	for k, v := range d.ValidationErrors {
		c.ValidationErrors[k] = v
	}

	return &c
}

// HasCriticalWarnings reports whether any media on the draft carries a
// warning severe enough to block publication.
func (d *EventDraft) HasCriticalWarnings() bool {
	for _, w := range d.Warnings {
		if w.IsCritical {
			return true
		}
	}
	return false
}
