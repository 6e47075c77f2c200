package service

import (
	"context"

	"DeckBox/internal/model"
	"DeckBox/internal/repo"
)

// Access answers visibility questions across users.
type Access struct {
	users  repo.UserRepository
	groups repo.GroupRepository
	decks  repo.DeckRepository
}

// NewAccess creates the visibility service.
func NewAccess(users repo.UserRepository, groups repo.GroupRepository, decks repo.DeckRepository) *Access {
	return &Access{users: users, groups: groups, decks: decks}
}

// CanViewBox reports whether viewerID may see ownerID's Box: self, admin
// override, or shared group membership.
func (a *Access) CanViewBox(ctx context.Context, viewerID, ownerID int64) (bool, error) {
	if viewerID == ownerID {
		return true, nil
	}
	viewer, err := a.users.GetByID(ctx, viewerID)
	if err != nil {
		return false, err
	}
	if viewer.HasCapability(model.CapabilityAdminOverride) {
		return true, nil
	}
	return a.groups.SharesGroup(ctx, viewerID, ownerID)
}

// Groupmates returns every user sharing at least one group with userID,
// the set of people whose boxes the user may browse and transfer from.
func (a *Access) Groupmates(ctx context.Context, userID int64) ([]model.User, error) {
	return a.groups.Groupmates(ctx, userID)
}

// CanViewDeck reports whether viewerID may see a deck: its owner always,
// group-mates only when the deck is marked visible.
func (a *Access) CanViewDeck(ctx context.Context, viewerID int64, deck *model.Deck) (bool, error) {
	if deck.UserID == viewerID {
		return true, nil
	}
	if !deck.IsVisibleToGroup {
		return false, nil
	}
	return a.CanViewBox(ctx, viewerID, deck.UserID)
}
