package repo

import (
	"context"
	"time"

	"DeckBox/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CardRepository is the local cache of oracle card data.
type CardRepository interface {
	// GetByID returns one printing by its Scryfall id.
	GetByID(ctx context.Context, scryfallID string) (*model.Card, error)

	// FindByName returns any cached printing matching the name,
	// case-insensitively.
	FindByName(ctx context.Context, name string) (*model.Card, error)

	// FindByPrinting returns the cached printing for set code + collector
	// number.
	FindByPrinting(ctx context.Context, setCode, collectorNumber string) (*model.Card, error)

	// Upsert inserts the card or overwrites every cached field. The oracle
	// is authoritative, so last writer wins.
	Upsert(ctx context.Context, card *model.Card) error

	// ListStale returns up to limit cards whose snapshot is older than the
	// given cutoff, oldest first.
	ListStale(ctx context.Context, cutoff time.Time, limit int) ([]model.Card, error)
}

type cardRepo struct {
	db *gorm.DB
}

// NewCardRepository creates the card cache repository.
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepo{db: db}
}

func (r *cardRepo) GetByID(ctx context.Context, scryfallID string) (*model.Card, error) {
	var card model.Card
	if err := r.db.WithContext(ctx).First(&card, "scryfall_id = ?", scryfallID).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *cardRepo) FindByName(ctx context.Context, name string) (*model.Card, error) {
	var card model.Card
	err := r.db.WithContext(ctx).
		Where("lower(name) = lower(?)", name).
		First(&card).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *cardRepo) FindByPrinting(ctx context.Context, setCode, collectorNumber string) (*model.Card, error) {
	var card model.Card
	err := r.db.WithContext(ctx).
		Where("upper(set_code) = upper(?) AND collector_number = ?", setCode, collectorNumber).
		First(&card).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *cardRepo) Upsert(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scryfall_id"}},
		UpdateAll: true,
	}).Create(card).Error
}

func (r *cardRepo) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]model.Card, error) {
	var cards []model.Card
	err := r.db.WithContext(ctx).
		Where("last_updated < ?", cutoff).
		Order("last_updated asc").
		Limit(limit).
		Find(&cards).Error
	return cards, err
}
