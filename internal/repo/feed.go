package repo

import (
	"context"
	"encoding/json"

	"DeckBox/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeedRepository is the activity sink for events recorded outside a ledger
// transaction (transfer events are written inside repo.Transfer instead).
type FeedRepository interface {
	// Record appends one event. payload is JSON-encoded.
	Record(ctx context.Context, actorID int64, kind string, payload any) error

	// ListRecent returns the newest events, capped at limit.
	ListRecent(ctx context.Context, limit int) ([]model.FeedEvent, error)
}

type feedRepo struct {
	db *gorm.DB
}

// NewFeedRepository creates the activity sink repository.
func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &feedRepo{db: db}
}

func (r *feedRepo) Record(ctx context.Context, actorID int64, kind string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event := model.FeedEvent{
		ID:      uuid.NewString(),
		ActorID: actorID,
		Kind:    kind,
		Payload: string(body),
	}
	return r.db.WithContext(ctx).Create(&event).Error
}

func (r *feedRepo) ListRecent(ctx context.Context, limit int) ([]model.FeedEvent, error) {
	var events []model.FeedEvent
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&events).Error
	return events, err
}
