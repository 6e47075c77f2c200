package model

import (
	"fmt"
	"strconv"
)

// ErrForeignDeck is returned by DeckLocation when the deck does not belong
// to the unit's owner.
var ErrForeignDeck = fmt.Errorf("deck does not belong to owner")

// Location is where an inventory unit lives: the owner's Box or one of the
// owner's decks. The fields are unexported so a deck location can only be
// built through DeckLocation, which rejects decks owned by anyone else —
// a unit pointing at a foreign deck cannot be constructed.
type Location struct {
	deckID *int64
}

// Box returns the unassigned-pool location.
func Box() Location {
	return Location{}
}

// DeckLocation returns the location inside deck, which must belong to
// ownerID.
func DeckLocation(deck *Deck, ownerID int64) (Location, error) {
	if deck == nil {
		return Location{}, fmt.Errorf("deck location: nil deck")
	}
	if deck.UserID != ownerID {
		return Location{}, ErrForeignDeck
	}
	id := deck.ID
	return Location{deckID: &id}, nil
}

// InBox reports whether the location is the Box.
func (l Location) InBox() bool {
	return l.deckID == nil
}

// DeckID returns the deck id and true for a deck location, 0 and false for
// the Box.
func (l Location) DeckID() (int64, bool) {
	if l.deckID == nil {
		return 0, false
	}
	return *l.deckID, true
}

func (l Location) String() string {
	if l.deckID == nil {
		return "box"
	}
	return "deck:" + strconv.FormatInt(*l.deckID, 10)
}
