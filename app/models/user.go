package models

import "strings"

// Validate checks the user record before it is persisted.
func (u *User) Validate() error {
	return validate.Struct(u)
}

// IsAdmin reports whether the user may manage posts.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// FirstName returns the first word of the display name.
func (u *User) FirstName() string {
	if fields := strings.Fields(u.Name); len(fields) > 0 {
		return fields[0]
	}
	return u.Name
}

// NormalizeEmail lower-cases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
