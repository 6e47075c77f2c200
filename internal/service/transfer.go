package service

import (
	"context"
	"encoding/json"
	"errors"

	"DeckBox/internal/model"
	"DeckBox/internal/repo"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TransferService authorizes and executes cross-owner transfers: taking
// cards from a group-mate's Box into one of the actor's own decks.
type TransferService struct {
	units  repo.InventoryRepository
	decks  repo.DeckRepository
	groups repo.GroupRepository
	users  repo.UserRepository
	log    *zap.SugaredLogger
}

// NewTransferService creates the transfer authorizer.
func NewTransferService(
	units repo.InventoryRepository,
	decks repo.DeckRepository,
	groups repo.GroupRepository,
	users repo.UserRepository,
	log *zap.SugaredLogger,
) *TransferService {
	return &TransferService{units: units, decks: decks, groups: groups, users: users, log: log}
}

// Transfer relocates quantity from sourceUnitID (which must sit in its
// owner's Box) into the actor's deck destDeckID.
//
// Preconditions, checked in order — the first failure names the denial:
//  1. the source unit exists;
//  2. its owner is not the actor (same-owner moves use the ledger directly);
//  3. it is in the Box, not in a deck;
//  4. actor and owner share a group, unless the actor holds the
//     admin-override capability;
//  5. 0 < quantity ≤ the unit's quantity;
//  6. the destination deck belongs to the actor.
//
// On success the debit, the credit, the deck color recompute, and the feed
// event commit as one transaction.
func (s *TransferService) Transfer(ctx context.Context, actorID, sourceUnitID, destDeckID int64, quantity int) error {
	src, err := s.units.GetUnit(ctx, sourceUnitID)
	if errors.Is(err, repo.ErrUnitNotFound) {
		return &DeniedError{Reason: DeniedUnitNotFound}
	}
	if err != nil {
		return err
	}

	if src.UserID == actorID {
		return &DeniedError{Reason: DeniedSameOwner}
	}
	if !src.InBox() {
		return &DeniedError{Reason: DeniedNotInBox}
	}

	// Admin override is a capability, granted explicitly and evaluated
	// exactly once at this boundary.
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.HasCapability(model.CapabilityAdminOverride) {
		shared, err := s.groups.SharesGroup(ctx, actorID, src.UserID)
		if err != nil {
			return err
		}
		if !shared {
			return &DeniedError{Reason: DeniedNoSharedGroup}
		}
	}

	if quantity <= 0 || quantity > src.Quantity {
		return &DeniedError{Reason: DeniedBadQuantity}
	}

	deck, err := s.decks.GetOwned(ctx, destDeckID, actorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &DeniedError{Reason: DeniedForeignDeck}
	}
	if err != nil {
		return err
	}
	// Double-checked by construction: a location for someone else's deck
	// cannot be built at all.
	if _, err := model.DeckLocation(deck, actorID); err != nil {
		return &DeniedError{Reason: DeniedForeignDeck}
	}

	cardName := ""
	if src.Card != nil {
		cardName = src.Card.Name
	}
	payload, err := json.Marshal(map[string]any{
		"source_unit_id": src.ID,
		"from_user_id":   src.UserID,
		"card_id":        src.CardScryfallID,
		"card_name":      cardName,
		"deck_id":        deck.ID,
		"quantity":       quantity,
		"foil":           src.IsFoil,
	})
	if err != nil {
		return err
	}

	err = s.units.Transfer(ctx, repo.TransferParams{
		ActorID:      actorID,
		SourceUnitID: src.ID,
		DestDeckID:   deck.ID,
		Quantity:     quantity,
		EventID:      uuid.NewString(),
		EventPayload: string(payload),
	})
	if errors.Is(err, repo.ErrInsufficientQuantity) {
		// The unit shrank between the check and the transaction.
		return &DeniedError{Reason: DeniedBadQuantity}
	}
	if errors.Is(err, repo.ErrUnitNotFound) {
		return &DeniedError{Reason: DeniedUnitNotFound}
	}
	if err != nil {
		return err
	}

	s.log.Infow("card transferred",
		"actor_id", actorID,
		"from_user_id", src.UserID,
		"card", cardName,
		"deck_id", deck.ID,
		"quantity", quantity,
	)
	return nil
}
