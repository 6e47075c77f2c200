package model

import "time"

// Condition grades the physical state of a card.
type Condition string

const (
	ConditionNM Condition = "NM"
	ConditionEX Condition = "EX"
	ConditionGD Condition = "GD"
	ConditionLP Condition = "LP"
	ConditionPL Condition = "PL"
	ConditionPO Condition = "PO"
)

// Label returns the human-readable condition name.
func (c Condition) Label() string {
	switch c {
	case ConditionNM:
		return "Near Mint"
	case ConditionEX:
		return "Excellent"
	case ConditionGD:
		return "Good"
	case ConditionLP:
		return "Lightly Played"
	case ConditionPL:
		return "Played"
	case ConditionPO:
		return "Poor"
	}
	return "Unknown"
}

// InventoryUnit is a stack of identical copies owned by one user.
//
//	DeckID == nil  → the stack is in the owner's Box
//	DeckID != nil  → the stack is slotted into that deck
//
// At most one unit exists per (owner, card, foil, condition, location);
// mutations merge into the matching row instead of stacking duplicates, and
// a row whose quantity reaches zero is deleted, never retained.
type InventoryUnit struct {
	ID     int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"not null;index"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	CardScryfallID string `gorm:"not null;index;type:uuid"`
	Card           *Card  `gorm:"foreignKey:CardScryfallID"`

	Quantity  int       `gorm:"not null;default:1"`
	IsFoil    bool      `gorm:"not null;default:false"`
	Condition Condition `gorm:"not null;default:NM"`

	PurchasePriceUSD *float64
	AcquiredAt       time.Time `gorm:"autoCreateTime"`
	Notes            string

	DeckID      *int64 `gorm:"index"`
	Deck        *Deck  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	IsSideboard bool   `gorm:"not null;default:false"`
}

// InBox reports whether the unit is unassigned to any deck.
func (u *InventoryUnit) InBox() bool {
	return u.DeckID == nil
}

// Location returns the unit's location as a Location value.
func (u *InventoryUnit) Location() Location {
	if u.DeckID == nil {
		return Box()
	}
	return Location{deckID: u.DeckID}
}

// CurrentValue is the market value of the stack (quantity × unit price),
// nil when the cached card has no price.
func (u *InventoryUnit) CurrentValue() *float64 {
	if u.Card == nil {
		return nil
	}
	unit := u.Card.PriceFor(u.IsFoil)
	if unit == nil {
		return nil
	}
	v := *unit * float64(u.Quantity)
	return &v
}
