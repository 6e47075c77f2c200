package model

import "time"

// Group is an externally administered set of users. Shared membership is the
// sole gate for cross-user box visibility and transfers.
type Group struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	CreatedBy *int64

	Members []*User `gorm:"many2many:user_groups"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
