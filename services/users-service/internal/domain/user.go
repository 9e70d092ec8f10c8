package domain

import (
	"time"

	"github.com/TiaTarabay/TiaTarabay-JanaAyoub-meetingroom/pkg/authz"
)

// User is a registered account. Role drives every authorization decision; it
// defaults to regular_user and only admins may change it afterwards.
type User struct {
	ID           string `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex"`
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`
	Role         authz.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// KnownRole reports whether r belongs to the closed role set; used when an
// admin assigns roles so typos do not mint unusable accounts.
func KnownRole(r authz.Role) bool {
	switch r {
	case authz.RoleAdmin, authz.RoleRegularUser, authz.RoleFacilityManager,
		authz.RoleModerator, authz.RoleAuditor, authz.RoleServiceAccount:
		return true
	}
	return false
}
