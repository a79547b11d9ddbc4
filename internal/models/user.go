// Package models contains data structures for the application's domain models.
package models

import (
	"fmt"
	"time"
)

// Role is a user's role on the platform.
type Role string

const (
	RoleCitizen  Role = "citizen"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is a recognized role.
func (r Role) Valid() bool {
	switch r {
	case RoleCitizen, RoleEmployee, RoleAdmin:
		return true
	}
	return false
}

// ParseRole converts s into a Role, failing on unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", NewValidationError(fmt.Sprintf("Invalid role %q", s))
	}
	return r, nil
}

// User represents a registered account: a citizen, a municipal employee, or
// an admin.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Locality  string    `gorm:"index" json:"locality"`
	Avatar    string    `json:"avatar"`
	Role      Role      `gorm:"type:varchar(16);not null;default:'citizen'" json:"role"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Caller is the resolved identity of an authenticated request, supplied
// explicitly to every service operation instead of being read from ambient
// request state.
type Caller struct {
	ID       uint
	Role     Role
	IsActive bool
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// CallerFor builds a Caller from a loaded user record.
func CallerFor(u *User) Caller {
	return Caller{ID: u.ID, Role: u.Role, IsActive: u.IsActive}
}
