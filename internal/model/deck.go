package model

import "time"

// Deck is a named deck belonging to one user. Cards in a deck are
// InventoryUnit rows whose DeckID points here; units with DeckID nil sit in
// the owner's Box.
type Deck struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"not null;index"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Name        string `gorm:"not null"`
	Description string
	Format      string `gorm:"default:Casual"`

	// Aggregate of the color identities of all cards in the deck, in WUBRG
	// order. Recomputed whenever deck contents change.
	ColorIdentity string

	// Group-mates may view a visible deck, but cards are never transferable
	// out of a deck regardless of visibility.
	IsVisibleToGroup bool `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
