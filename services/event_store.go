package services

import (
	"context"
	"encoding/json"
	"fmt"

	"event-studio/models"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

// EventStore persists published events as records of the "events"
// collection. The draft never touches the database; only a successful
// publish produces a record, and the record id becomes the event id.
type EventStore struct {
	app core.App
}

func NewEventStore(app core.App) *EventStore {
	return &EventStore{app: app}
}

func (s *EventStore) CreateEvent(ctx context.Context, req *models.CreateEventRequest) (*models.PublishedEvent, error) {
	collection, err := s.app.FindCollectionByNameOrId("events")
	if err != nil {
		return nil, fmt.Errorf("find events collection: %w", err)
	}

	record := core.NewRecord(collection)
	record.Set("creator_id", req.CreatorID)
	record.Set("title", req.Title)
	record.Set("description", req.Description)
	record.Set("category", req.Category)
	record.Set("subcategory", req.Subcategory)
	record.Set("event_type", string(req.Type))
	record.Set("start_at", req.StartAt)
	record.Set("capacity", req.Capacity.MaxAttendees)
	record.Set("price_amount", req.Price.Amount.String())
	record.Set("price_currency", req.Price.Currency)
	record.Set("public", req.Public)
	record.Set("status", "published")

	setJSONField(record, "location", req.Location)
	setJSONField(record, "images", req.Images)
	setJSONField(record, "reels", req.Reels)
	setJSONField(record, "ticket_types", req.TicketTypes)
	setJSONField(record, "products", req.Products)
	setJSONField(record, "seo_tags", req.SEOTags)
	setJSONField(record, "hashtags", req.Hashtags)

	if err := s.app.Save(record); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	return &models.PublishedEvent{
		ID:      record.Id,
		Success: true,
	}, nil
}

// ListPublishedIDs returns the ids of events the creator has published.
func (s *EventStore) ListPublishedIDs(ctx context.Context, creatorID string) ([]string, error) {
	var rows []dbx.NullStringMap
	err := s.app.DB().
		NewQuery("SELECT id FROM events WHERE creator_id = {:creator} AND status = 'published'").
		Bind(dbx.Params{"creator": creatorID}).
		All(&rows)
	if err != nil {
		return nil, fmt.Errorf("list published events: %w", err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if id := row["id"].String; id != "" {
			ids = append(ids, id)
		}
	}

	return ids, nil
}

func setJSONField(record *core.Record, field string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	record.Set(field, string(data))
}
