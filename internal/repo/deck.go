package repo

import (
	"context"

	"DeckBox/internal/model"

	"gorm.io/gorm"
)

// DeckRepository reads decks. Deck lifecycle (create/rename/delete) is owned
// by an external collaborator.
type DeckRepository interface {
	// GetByID returns the deck or gorm.ErrRecordNotFound.
	GetByID(ctx context.Context, id int64) (*model.Deck, error)

	// GetOwned returns the deck only when it belongs to ownerID.
	GetOwned(ctx context.Context, id, ownerID int64) (*model.Deck, error)

	// ListByUser returns the user's decks, newest first.
	ListByUser(ctx context.Context, userID int64) ([]model.Deck, error)
}

type deckRepo struct {
	db *gorm.DB
}

// NewDeckRepository creates the deck repository.
func NewDeckRepository(db *gorm.DB) DeckRepository {
	return &deckRepo{db: db}
}

func (r *deckRepo) GetByID(ctx context.Context, id int64) (*model.Deck, error) {
	var deck model.Deck
	if err := r.db.WithContext(ctx).First(&deck, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &deck, nil
}

func (r *deckRepo) GetOwned(ctx context.Context, id, ownerID int64) (*model.Deck, error) {
	var deck model.Deck
	err := r.db.WithContext(ctx).First(&deck, "id = ? AND user_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &deck, nil
}

func (r *deckRepo) ListByUser(ctx context.Context, userID int64) ([]model.Deck, error) {
	var decks []model.Deck
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&decks).Error
	return decks, err
}
