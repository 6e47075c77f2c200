package service

import (
	"context"
	"time"

	"DeckBox/internal/model"
	"DeckBox/internal/repo"

	"go.uber.org/zap"
)

// PriceService refreshes cached prices and keeps per-printing history.
// RefreshStalePrices is driven by an external scheduler; each oracle call
// goes through the shared serialized lane.
type PriceService struct {
	cards   repo.CardRepository
	history repo.PriceHistoryRepository
	oracle  Oracle
	ttl     time.Duration
	log     *zap.SugaredLogger
}

// NewPriceService creates the price refresher with the given staleness TTL.
func NewPriceService(cards repo.CardRepository, history repo.PriceHistoryRepository, oracle Oracle, ttl time.Duration, log *zap.SugaredLogger) *PriceService {
	return &PriceService{cards: cards, history: history, oracle: oracle, ttl: ttl, log: log}
}

// RefreshStalePrices re-fetches up to limit stale cards, oldest first, and
// appends a history row for each card whose price changed. Per-card oracle
// failures are logged and skipped so one outage never wedges the sweep.
// Returns the number of cards refreshed.
func (p *PriceService) RefreshStalePrices(ctx context.Context, limit int) (int, error) {
	stale, err := p.cards.ListStale(ctx, time.Now().UTC().Add(-p.ttl), limit)
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for i := range stale {
		if err := ctx.Err(); err != nil {
			return refreshed, err
		}
		old := stale[i]

		fresh, err := p.oracle.ByPrinting(ctx, old.SetCode, old.CollectorNumber)
		if err != nil {
			p.log.Warnw("price refresh failed", "card", old.Name, "set", old.SetCode, "error", err)
			continue
		}
		if err := p.cards.Upsert(ctx, &fresh); err != nil {
			return refreshed, err
		}
		refreshed++

		if priceChanged(old.USD, fresh.USD) || priceChanged(old.USDFoil, fresh.USDFoil) {
			row := model.CardPriceHistory{
				CardScryfallID: fresh.ScryfallID,
				USD:            fresh.USD,
				USDFoil:        fresh.USDFoil,
			}
			if err := p.history.Append(ctx, &row); err != nil {
				return refreshed, err
			}
		}
	}

	p.log.Infow("price sweep complete", "stale", len(stale), "refreshed", refreshed)
	return refreshed, nil
}

// History returns price snapshots for a printing over the trailing window,
// oldest first.
func (p *PriceService) History(ctx context.Context, scryfallID string, days int) ([]model.CardPriceHistory, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	return p.history.Since(ctx, scryfallID, cutoff)
}

func priceChanged(a, b *float64) bool {
	if (a == nil) != (b == nil) {
		return true
	}
	if a == nil {
		return false
	}
	return *a != *b
}
