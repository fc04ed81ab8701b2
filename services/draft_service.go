package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"event-studio/internal/status"
	"event-studio/models"

	"github.com/redis/go-redis/v9"
)

// DraftService stores the working draft in Redis as one JSON blob per
// creator, expiring after the configured TTL.
type DraftService struct {
	Redis *redis.Client
	ttl   time.Duration
}

func NewDraftService(redisClient *redis.Client, ttl time.Duration) *DraftService {
	return &DraftService{
		Redis: redisClient,
		ttl:   ttl,
	}
}

func draftKey(creatorID string) string {
	return fmt.Sprintf("draft:%s", creatorID)
}

func (s *DraftService) SaveDraft(ctx context.Context, draft *models.EventDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}

	if err := s.Redis.Set(ctx, draftKey(draft.CreatorID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}

	return nil
}

func (s *DraftService) GetDraft(ctx context.Context, creatorID string) (*models.EventDraft, error) {
	data, err := s.Redis.Get(ctx, draftKey(creatorID)).Result()
	if err == redis.Nil {
		return nil, status.ErrDraftNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}

	var draft models.EventDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, fmt.Errorf("unmarshal draft: %w", err)
	}

	if draft.AltTexts == nil {
		draft.AltTexts = make(map[string]string)
	}
	if draft.ValidationErrors == nil {
		draft.ValidationErrors = make(map[string]string)
	}

	return &draft, nil
}

func (s *DraftService) ClearDraft(ctx context.Context, creatorID string) error {
	if err := s.Redis.Del(ctx, draftKey(creatorID)).Err(); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
