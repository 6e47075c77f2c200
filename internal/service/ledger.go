package service

import (
	"context"
	"errors"

	"DeckBox/internal/model"
	"DeckBox/internal/repo"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Ledger exposes same-owner inventory moves: Box ↔ deck and deck ↔ deck.
// Cross-owner relocation goes through TransferService instead.
type Ledger struct {
	units repo.InventoryRepository
	decks repo.DeckRepository
	feed  repo.FeedRepository
	log   *zap.SugaredLogger
}

// NewLedger creates the same-owner move service.
func NewLedger(units repo.InventoryRepository, decks repo.DeckRepository, feed repo.FeedRepository, log *zap.SugaredLogger) *Ledger {
	return &Ledger{units: units, decks: decks, feed: feed, log: log}
}

// Move relocates qty copies of one of ownerID's units to the Box
// (deckID nil) or to one of the owner's decks. The debit and credit commit
// together or not at all.
func (l *Ledger) Move(ctx context.Context, ownerID, unitID int64, deckID *int64, qty int) error {
	to := model.Box()
	if deckID != nil {
		deck, err := l.decks.GetOwned(ctx, *deckID, ownerID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ErrForeignDeck
		}
		if err != nil {
			return err
		}
		to, err = model.DeckLocation(deck, ownerID)
		if err != nil {
			return err
		}
	}

	if err := l.units.Move(ctx, repo.MoveParams{
		OwnerID:  ownerID,
		UnitID:   unitID,
		To:       to,
		Quantity: qty,
	}); err != nil {
		return err
	}

	if err := l.feed.Record(ctx, ownerID, model.EventCardMoved, map[string]any{
		"unit_id":  unitID,
		"to":       to.String(),
		"quantity": qty,
	}); err != nil {
		l.log.Warnw("move feed event failed", "unit_id", unitID, "error", err)
	}
	return nil
}

// Box returns the owner's unassigned units.
func (l *Ledger) Box(ctx context.Context, ownerID int64) ([]model.InventoryUnit, error) {
	return l.units.ListBox(ctx, ownerID)
}

// Deck returns a deck by id, regardless of viewer; callers check access.
func (l *Ledger) Deck(ctx context.Context, deckID int64) (*model.Deck, error) {
	return l.decks.GetByID(ctx, deckID)
}

// DeckCards returns the units slotted into a deck.
func (l *Ledger) DeckCards(ctx context.Context, deckID int64) ([]model.InventoryUnit, error) {
	return l.units.ListDeck(ctx, deckID)
}
