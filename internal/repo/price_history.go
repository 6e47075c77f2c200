package repo

import (
	"context"
	"time"

	"DeckBox/internal/model"

	"gorm.io/gorm"
)

// PriceHistoryRepository stores per-printing price snapshots.
type PriceHistoryRepository interface {
	// Append records one snapshot.
	Append(ctx context.Context, row *model.CardPriceHistory) error

	// Since returns a printing's snapshots recorded at or after cutoff,
	// oldest first.
	Since(ctx context.Context, scryfallID string, cutoff time.Time) ([]model.CardPriceHistory, error)
}

type priceHistoryRepo struct {
	db *gorm.DB
}

// NewPriceHistoryRepository creates the price history repository.
func NewPriceHistoryRepository(db *gorm.DB) PriceHistoryRepository {
	return &priceHistoryRepo{db: db}
}

func (r *priceHistoryRepo) Append(ctx context.Context, row *model.CardPriceHistory) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *priceHistoryRepo) Since(ctx context.Context, scryfallID string, cutoff time.Time) ([]model.CardPriceHistory, error) {
	var rows []model.CardPriceHistory
	err := r.db.WithContext(ctx).
		Where("card_scryfall_id = ? AND recorded_at >= ?", scryfallID, cutoff).
		Order("recorded_at asc").
		Find(&rows).Error
	return rows, err
}
