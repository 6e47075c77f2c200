package repo

import (
	"context"
	"errors"
	"sort"
	"strings"

	"DeckBox/internal/model"

	"gorm.io/gorm"
)

// Ledger conflict errors. Each aborts the whole operation; partial effects
// are never committed.
var (
	ErrUnitNotFound         = errors.New("inventory unit not found")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
)

// UpsertParams identifies a ledger slot and a quantity delta.
type UpsertParams struct {
	OwnerID        int64
	CardScryfallID string
	Foil           bool
	Condition      model.Condition
	Location       model.Location
	Delta          int
}

// MoveParams moves quantity from one of the owner's units to a location of
// the same owner.
type MoveParams struct {
	OwnerID  int64
	UnitID   int64
	To       model.Location
	Quantity int
}

// TransferParams relocates quantity from a source unit's owner into a deck
// of the acting user. The feed event is written in the same transaction.
type TransferParams struct {
	ActorID      int64
	SourceUnitID int64
	DestDeckID   int64
	Quantity     int
	EventID      string
	EventPayload string
}

// InventoryRepository owns the (owner, card, foil, condition, location)
// quantity ledger. All compound mutations are single transactions.
type InventoryRepository interface {
	// GetUnit returns one unit with its cached card preloaded.
	GetUnit(ctx context.Context, id int64) (*model.InventoryUnit, error)

	// Upsert merges Delta into the matching unit or creates one. A negative
	// delta debits the slot; the row is deleted when quantity reaches zero
	// and ErrInsufficientQuantity is returned when it would go below.
	Upsert(ctx context.Context, p UpsertParams) (*model.InventoryUnit, error)

	// Move debits the source unit and credits the destination location
	// atomically. Existing metadata on a merged destination row is kept.
	Move(ctx context.Context, p MoveParams) error

	// Transfer performs the cross-owner debit/credit, recomputes the
	// destination deck's color identity, and records the feed event — one
	// transaction, all or nothing.
	Transfer(ctx context.Context, p TransferParams) error

	// ListBox returns the user's unassigned units, card preloaded.
	ListBox(ctx context.Context, userID int64) ([]model.InventoryUnit, error)

	// ListDeck returns the units slotted into a deck, card preloaded.
	ListDeck(ctx context.Context, deckID int64) ([]model.InventoryUnit, error)
}

type inventoryRepo struct {
	db *gorm.DB
}

// NewInventoryRepository creates the ledger repository.
func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db: db}
}

func (r *inventoryRepo) GetUnit(ctx context.Context, id int64) (*model.InventoryUnit, error) {
	var unit model.InventoryUnit
	err := r.db.WithContext(ctx).Preload("Card").First(&unit, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnitNotFound
	}
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *inventoryRepo) Upsert(ctx context.Context, p UpsertParams) (*model.InventoryUnit, error) {
	if p.Delta == 0 {
		return nil, ErrInvalidQuantity
	}
	var out *model.InventoryUnit
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		unit, err := findSlot(tx, p.OwnerID, p.CardScryfallID, p.Foil, p.Condition, p.Location)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if unit == nil {
			if p.Delta < 0 {
				return ErrUnitNotFound
			}
			deckID := locationDeckID(p.Location)
			unit = &model.InventoryUnit{
				UserID:         p.OwnerID,
				CardScryfallID: p.CardScryfallID,
				Quantity:       p.Delta,
				IsFoil:         p.Foil,
				Condition:      p.Condition,
				DeckID:         deckID,
			}
			if err := tx.Create(unit).Error; err != nil {
				return err
			}
			out = unit
			return nil
		}

		if p.Delta < 0 {
			if err := debitUnit(tx, unit, -p.Delta); err != nil {
				return err
			}
			unit.Quantity += p.Delta
		} else {
			// Guarded increment; never touches existing condition or
			// purchase metadata.
			res := tx.Model(&model.InventoryUnit{}).
				Where("id = ?", unit.ID).
				Update("quantity", gorm.Expr("quantity + ?", p.Delta))
			if res.Error != nil {
				return res.Error
			}
			unit.Quantity += p.Delta
		}
		out = unit
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *inventoryRepo) Move(ctx context.Context, p MoveParams) error {
	if p.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var unit model.InventoryUnit
		err := tx.First(&unit, "id = ? AND user_id = ?", p.UnitID, p.OwnerID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnitNotFound
		}
		if err != nil {
			return err
		}

		if p.Quantity > unit.Quantity {
			return ErrInsufficientQuantity
		}
		if sameLocation(unit.Location(), p.To) {
			return nil
		}

		if err := debitUnit(tx, &unit, p.Quantity); err != nil {
			return err
		}
		if err := creditSlot(tx, p.OwnerID, unit.CardScryfallID, unit.IsFoil, unit.Condition, p.To, p.Quantity); err != nil {
			return err
		}

		// Color identity of every deck touched by the move.
		if fromID, ok := unit.Location().DeckID(); ok {
			if err := recomputeDeckColors(tx, fromID); err != nil {
				return err
			}
		}
		if toID, ok := p.To.DeckID(); ok {
			if err := recomputeDeckColors(tx, toID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *inventoryRepo) Transfer(ctx context.Context, p TransferParams) error {
	if p.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var src model.InventoryUnit
		err := tx.First(&src, "id = ?", p.SourceUnitID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnitNotFound
		}
		if err != nil {
			return err
		}
		if p.Quantity > src.Quantity {
			return ErrInsufficientQuantity
		}

		var deck model.Deck
		if err := tx.First(&deck, "id = ? AND user_id = ?", p.DestDeckID, p.ActorID).Error; err != nil {
			return err
		}
		dest, err := model.DeckLocation(&deck, p.ActorID)
		if err != nil {
			return err
		}

		if err := debitUnit(tx, &src, p.Quantity); err != nil {
			return err
		}
		if err := creditSlot(tx, p.ActorID, src.CardScryfallID, src.IsFoil, src.Condition, dest, p.Quantity); err != nil {
			return err
		}
		if err := recomputeDeckColors(tx, deck.ID); err != nil {
			return err
		}

		// The event is part of the transfer: if it cannot be recorded the
		// ledger mutation rolls back with it.
		event := model.FeedEvent{
			ID:      p.EventID,
			ActorID: p.ActorID,
			Kind:    model.EventCardTransferred,
			Payload: p.EventPayload,
		}
		return tx.Create(&event).Error
	})
}

func (r *inventoryRepo) ListBox(ctx context.Context, userID int64) ([]model.InventoryUnit, error) {
	var units []model.InventoryUnit
	err := r.db.WithContext(ctx).
		Preload("Card").
		Where("user_id = ? AND deck_id IS NULL", userID).
		Order("id asc").
		Find(&units).Error
	return units, err
}

func (r *inventoryRepo) ListDeck(ctx context.Context, deckID int64) ([]model.InventoryUnit, error) {
	var units []model.InventoryUnit
	err := r.db.WithContext(ctx).
		Preload("Card").
		Where("deck_id = ?", deckID).
		Order("id asc").
		Find(&units).Error
	return units, err
}

// findSlot locates the single unit matching a ledger slot, or
// gorm.ErrRecordNotFound.
func findSlot(tx *gorm.DB, ownerID int64, cardID string, foil bool, cond model.Condition, loc model.Location) (*model.InventoryUnit, error) {
	q := tx.Where(
		"user_id = ? AND card_scryfall_id = ? AND is_foil = ? AND condition = ?",
		ownerID, cardID, foil, cond,
	)
	if deckID, ok := loc.DeckID(); ok {
		q = q.Where("deck_id = ?", deckID)
	} else {
		q = q.Where("deck_id IS NULL")
	}
	var unit model.InventoryUnit
	if err := q.First(&unit).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

// debitUnit removes qty copies from the unit with a guarded update, deleting
// the row when it hits zero. The guard makes concurrent oversell impossible
// without a table lock.
func debitUnit(tx *gorm.DB, unit *model.InventoryUnit, qty int) error {
	if qty == unit.Quantity {
		res := tx.Where("id = ? AND quantity = ?", unit.ID, qty).Delete(&model.InventoryUnit{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientQuantity
		}
		return nil
	}
	res := tx.Model(&model.InventoryUnit{}).
		Where("id = ? AND quantity >= ?", unit.ID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientQuantity
	}
	return nil
}

// creditSlot merges qty into the matching unit at loc or creates one.
func creditSlot(tx *gorm.DB, ownerID int64, cardID string, foil bool, cond model.Condition, loc model.Location, qty int) error {
	unit, err := findSlot(tx, ownerID, cardID, foil, cond, loc)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if unit != nil {
		return tx.Model(&model.InventoryUnit{}).
			Where("id = ?", unit.ID).
			Update("quantity", gorm.Expr("quantity + ?", qty)).Error
	}
	return tx.Create(&model.InventoryUnit{
		UserID:         ownerID,
		CardScryfallID: cardID,
		Quantity:       qty,
		IsFoil:         foil,
		Condition:      cond,
		DeckID:         locationDeckID(loc),
	}).Error
}

// recomputeDeckColors rebuilds a deck's aggregate color identity from the
// color identities of its cached cards, in WUBRG order.
func recomputeDeckColors(tx *gorm.DB, deckID int64) error {
	var identities []string
	err := tx.Model(&model.InventoryUnit{}).
		Joins("JOIN cards ON cards.scryfall_id = inventory_units.card_scryfall_id").
		Where("inventory_units.deck_id = ?", deckID).
		Pluck("cards.color_identity", &identities).Error
	if err != nil {
		return err
	}

	present := map[rune]bool{}
	for _, id := range identities {
		for _, c := range id {
			present[c] = true
		}
	}
	const wubrg = "WUBRG"
	var b strings.Builder
	for _, c := range wubrg {
		if present[c] {
			b.WriteRune(c)
		}
	}
	// Anything outside WUBRG would indicate corrupt cache data; keep it
	// visible rather than dropping it.
	var extra []rune
	for c := range present {
		if !strings.ContainsRune(wubrg, c) {
			extra = append(extra, c)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	for _, c := range extra {
		b.WriteRune(c)
	}

	return tx.Model(&model.Deck{}).Where("id = ?", deckID).Update("color_identity", b.String()).Error
}

func locationDeckID(loc model.Location) *int64 {
	if id, ok := loc.DeckID(); ok {
		return &id
	}
	return nil
}

func sameLocation(a, b model.Location) bool {
	aid, aok := a.DeckID()
	bid, bok := b.DeckID()
	return aok == bok && aid == bid
}
