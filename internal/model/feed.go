package model

import "time"

// Feed event kinds emitted by the core.
const (
	EventCardsImported   = "cards_imported"
	EventCardTransferred = "card_transferred"
	EventCardMoved       = "card_moved"
)

// FeedEvent is one row in the activity sink. Transfer events are written in
// the same transaction as the ledger mutation they describe.
type FeedEvent struct {
	ID      string `gorm:"primaryKey;type:uuid"`
	ActorID int64  `gorm:"not null;index"`
	Kind    string `gorm:"not null;index"`

	// JSON-encoded event details.
	Payload string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}
