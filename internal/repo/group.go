package repo

import (
	"context"

	"DeckBox/internal/model"

	"gorm.io/gorm"
)

// GroupRepository reads group membership. Groups are administered externally
// and only consulted here.
type GroupRepository interface {
	// SharesGroup reports whether the two users are members of at least one
	// common group.
	SharesGroup(ctx context.Context, userA, userB int64) (bool, error)

	// Groupmates returns every user sharing at least one group with userID,
	// deduplicated, excluding the user, ordered by username.
	Groupmates(ctx context.Context, userID int64) ([]model.User, error)
}

type groupRepo struct {
	db *gorm.DB
}

// NewGroupRepository creates the group repository.
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepo{db: db}
}

func (r *groupRepo) SharesGroup(ctx context.Context, userA, userB int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("user_groups AS a").
		Joins("JOIN user_groups AS b ON a.group_id = b.group_id").
		Where("a.user_id = ? AND b.user_id = ?", userA, userB).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *groupRepo) Groupmates(ctx context.Context, userID int64) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Distinct("users.*").
		Table("users").
		Joins("JOIN user_groups AS b ON b.user_id = users.id").
		Joins("JOIN user_groups AS a ON a.group_id = b.group_id").
		Where("a.user_id = ? AND users.id <> ?", userID, userID).
		Order("users.username asc").
		Find(&users).Error
	return users, err
}
