package types

import (
	"fmt"
	"strings"
)

// Role is the access level of a signed-in principal.
type Role string

// Roles. Admins manage everything, owners manage their own listings, users
// only browse.
const (
	RoleAdmin Role = "Admin"
	RoleOwner Role = "Owner"
	RoleUser  Role = "User"
)

// Valid reports whether r is a recognized role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOwner, RoleUser:
		return true
	}
	return false
}

// ParseRole matches s case-insensitively against the known roles.
func ParseRole(s string) (Role, error) {
	for _, r := range []Role{RoleAdmin, RoleOwner, RoleUser} {
		if strings.EqualFold(string(r), strings.TrimSpace(s)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrRoleUnknown, s)
}

// User is an account that can sign in to the directory.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	IsActive     bool   `json:"isActive"`
	Avatar       string `json:"avatar,omitempty"`
	PasswordHash string `json:"passwordHash,omitempty"`
}

// Public returns a copy of u without credentials, safe to hand to shells.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// Validate checks the profile fields of u.
func (u User) Validate() error {
	email := strings.TrimSpace(u.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w %q", ErrEmailInvalid, u.Email)
	}
	if strings.TrimSpace(u.Name) == "" {
		return ErrUserNameEmpty
	}
	if !u.Role.Valid() {
		return fmt.Errorf("%w %q", ErrRoleUnknown, u.Role)
	}
	return nil
}
