package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the platform-wide permission level of a profile. Checks go
// through the ordinal table below, never through string comparison.
type Role string

const (
	RoleUser       Role = "user"
	RoleEditor     Role = "editor"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

var roleOrdinal = map[Role]int{
	RoleUser:       0,
	RoleEditor:     1,
	RoleAdmin:      2,
	RoleSuperAdmin: 3,
}

func (r Role) Valid() bool {
	_, ok := roleOrdinal[r]
	return ok
}

// Status is the account lifecycle state. Anything other than active
// strips all permissions regardless of role.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusPending   Status = "pending"
	StatusBanned    Status = "banned"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusSuspended, StatusPending, StatusBanned:
		return true
	}
	return false
}

const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
)

type Profile struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash *string    `json:"-"`
	Provider     string     `json:"provider"`
	ProviderID   *string    `json:"-"`
	AvatarURL    *string    `json:"avatar_url,omitempty"`
	Role         Role       `json:"role"`
	Status       Status     `json:"status"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	LoginCount   int        `json:"login_count"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// HasRole reports whether the profile holds at least min in the role
// hierarchy. Always false for non-active profiles.
func (p *Profile) HasRole(min Role) bool {
	if p.Status != StatusActive {
		return false
	}
	have, ok := roleOrdinal[p.Role]
	want, ok2 := roleOrdinal[min]
	return ok && ok2 && have >= want
}

// RoleFlags is the derived permission view handed to API consumers.
type RoleFlags struct {
	IsSuperAdmin bool `json:"is_super_admin"`
	IsAdmin      bool `json:"is_admin"`
	IsEditor     bool `json:"is_editor"`
}

func (p *Profile) RoleFlags() RoleFlags {
	return RoleFlags{
		IsSuperAdmin: p.HasRole(RoleSuperAdmin),
		IsAdmin:      p.HasRole(RoleAdmin),
		IsEditor:     p.HasRole(RoleEditor),
	}
}
