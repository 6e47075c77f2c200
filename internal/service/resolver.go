package service

import (
	"context"
	"errors"
	"time"

	"DeckBox/internal/decklist"
	"DeckBox/internal/model"
	"DeckBox/internal/repo"
	"DeckBox/internal/scryfall"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Oracle is the slice of the card oracle the resolver needs. Implemented by
// *scryfall.Client; the client serializes all calls, so the resolver and the
// periodic refresher never race on the wire.
type Oracle interface {
	NamedExact(ctx context.Context, name, setCode string) (model.Card, error)
	NamedFuzzy(ctx context.Context, name string) (model.Card, error)
	ByPrinting(ctx context.Context, setCode, collectorNumber string) (model.Card, error)
	Printings(ctx context.Context, oracleID string) ([]model.Card, error)
}

// Resolver turns parsed card references into cached canonical identities.
type Resolver struct {
	cards  repo.CardRepository
	oracle Oracle
	ttl    time.Duration
	log    *zap.SugaredLogger
}

// NewResolver creates a resolver with the given cache staleness TTL.
func NewResolver(cards repo.CardRepository, oracle Oracle, ttl time.Duration, log *zap.SugaredLogger) *Resolver {
	return &Resolver{cards: cards, oracle: oracle, ttl: ttl, log: log}
}

// Resolve maps a reference to a card identity.
//
// Lookup order: local cache (by printing when the line names one, otherwise
// by name); a fresh hit returns immediately. On miss or staleness one exact
// oracle lookup is issued; a not-found answer is retried once with fuzzy
// name matching. Success upserts the cache row. A reference the oracle does
// not know yields *NotFoundError with the original text.
func (r *Resolver) Resolve(ctx context.Context, ref decklist.ParsedLine) (*model.Card, error) {
	cached, err := r.lookupCache(ctx, ref)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if cached != nil && !cached.Stale(r.ttl) {
		return cached, nil
	}

	card, err := r.fetch(ctx, ref)
	if err != nil {
		if scryfall.IsNotFound(err) {
			// One fuzzy retry tolerates typos in hand-typed lists.
			card, err = r.oracle.NamedFuzzy(ctx, ref.Name)
			if err != nil {
				if scryfall.IsNotFound(err) {
					return nil, &NotFoundError{Name: ref.Name, Raw: ref.Raw}
				}
				return nil, err
			}
		} else {
			// Timeouts and outages are hard failures for this reference,
			// reported to the caller, never papered over with cached data.
			return nil, err
		}
	}

	if err := r.cards.Upsert(ctx, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// RefreshIfStale re-fetches a cached printing older than ttl. Called by the
// external periodic refresher; the oracle lane serializes it against
// interactive resolutions, and last writer wins.
func (r *Resolver) RefreshIfStale(ctx context.Context, scryfallID string, ttl time.Duration) error {
	card, err := r.cards.GetByID(ctx, scryfallID)
	if err != nil {
		return err
	}
	if !card.Stale(ttl) {
		return nil
	}
	fresh, err := r.oracle.ByPrinting(ctx, card.SetCode, card.CollectorNumber)
	if err != nil {
		return err
	}
	return r.cards.Upsert(ctx, &fresh)
}

func (r *Resolver) lookupCache(ctx context.Context, ref decklist.ParsedLine) (*model.Card, error) {
	if ref.SetCode != "" && ref.CollectorNumber != "" {
		return r.cards.FindByPrinting(ctx, ref.SetCode, ref.CollectorNumber)
	}
	card, err := r.cards.FindByName(ctx, ref.Name)
	if err != nil {
		return nil, err
	}
	// A name hit from a different edition does not satisfy a line that
	// pinned a set code.
	if ref.SetCode != "" && card.SetCode != ref.SetCode {
		return nil, gorm.ErrRecordNotFound
	}
	return card, nil
}

func (r *Resolver) fetch(ctx context.Context, ref decklist.ParsedLine) (model.Card, error) {
	if ref.SetCode != "" && ref.CollectorNumber != "" {
		return r.oracle.ByPrinting(ctx, ref.SetCode, ref.CollectorNumber)
	}
	return r.oracle.NamedExact(ctx, ref.Name, ref.SetCode)
}
