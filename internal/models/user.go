package models

import (
	"time"
)

// User roles. Coaches own groups; admins can manage any group.
const (
	RoleAthlete = "athlete"
	RoleCoach   = "coach"
	RoleAdmin   = "admin"
)

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAthlete, RoleCoach, RoleAdmin:
		return true
	}
	return false
}

// User represents an athlete, coach, or admin account.
// PasswordHash never crosses the API boundary.
type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"size:255;not null;index" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Name         string    `gorm:"size:255" json:"name,omitempty"`
	Email        string    `gorm:"size:255" json:"email,omitempty"`
	Role         string    `gorm:"size:32;not null;default:athlete" json:"role"`
	Settings     JSON      `gorm:"type:json" json:"settings,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserPatch is a partial update for User. Nil fields are retained.
type UserPatch struct {
	Username     *string `json:"username,omitempty"`
	PasswordHash *string `json:"-"`
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Role         *string `json:"role,omitempty"`
	Settings     *JSON   `json:"settings,omitempty"`
}

// Apply merges the patch into u, field by field.
func (p UserPatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Settings != nil {
		u.Settings = *p.Settings
	}
}
