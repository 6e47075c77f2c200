package model

import (
	"strings"
	"time"
)

// CapabilityAdminOverride lets a user bypass group-membership checks on
// transfers and box visibility.
const CapabilityAdminOverride = "admin.full_access"

// User identity as seen by the core. Accounts, credentials and sessions are
// owned by an external collaborator; rows here are read, never authored.
type User struct {
	ID       int64  `gorm:"primaryKey"`
	Username string `gorm:"uniqueIndex;not null"`
	IsAdmin  bool   `gorm:"not null;default:false"`

	// Space-separated capability names granted beyond the defaults.
	Permissions string

	Groups []*Group `gorm:"many2many:user_groups"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// HasCapability reports whether the user holds the named capability.
// Admins hold every capability.
func (u *User) HasCapability(name string) bool {
	if u.IsAdmin {
		return true
	}
	for _, p := range strings.Fields(u.Permissions) {
		if p == name {
			return true
		}
	}
	return false
}
