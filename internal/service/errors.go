package service

import "fmt"

// NotFoundError is returned when a card reference cannot be resolved, after
// the fuzzy fallback. It carries the original reference text verbatim so
// import reports can echo the user's input.
type NotFoundError struct {
	Name string
	Raw  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("card not found: %q", e.Name)
}

// Transfer denial reasons, checked in order; the first failing check names
// the reason.
type DeniedReason string

const (
	DeniedUnitNotFound  DeniedReason = "unit_not_found"
	DeniedSameOwner     DeniedReason = "same_owner"
	DeniedNotInBox      DeniedReason = "not_in_box"
	DeniedNoSharedGroup DeniedReason = "no_shared_group"
	DeniedBadQuantity   DeniedReason = "bad_quantity"
	DeniedForeignDeck   DeniedReason = "foreign_deck"
)

// DeniedError rejects a transfer with a single reason and no partial effect.
type DeniedError struct {
	Reason DeniedReason
}

func (e *DeniedError) Error() string {
	return "transfer denied: " + string(e.Reason)
}
