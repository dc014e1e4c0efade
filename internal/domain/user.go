package domain

import (
	"fmt"
	"time"
)

// Role is the access level assigned to a user at registration.
type Role string

// Roles.
const (
	RoleManager     Role = "manager"
	RoleStoreKeeper Role = "store_keeper"
)

// DefaultRole is assigned when registration does not specify a role.
const DefaultRole = RoleStoreKeeper

// IsValid checks if the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleManager, RoleStoreKeeper:
		return true
	}
	return false
}

// ParseRole converts a string into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return role, nil
}

// User represents an account in the credential store.
// Password holds the bcrypt hash and is never serialized.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
