package repo

import (
	"context"

	"DeckBox/internal/model"

	"gorm.io/gorm"
)

// UserRepository reads user identities. Accounts are managed externally.
type UserRepository interface {
	// GetByID returns the user or gorm.ErrRecordNotFound.
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository creates the user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
