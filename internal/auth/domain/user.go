package domain

import (
	"slices"
	"strings"
	"time"
)

// RoleAdmin is the role allowed to manage other accounts.
const RoleAdmin = "admin"

type User struct {
	ID           string
	UserName     string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string // bcrypt

	AccountLocked bool
	PwResetToken  string // non-empty while a reset is pending; blocks login

	EmailVerified    bool
	EmailVerifyToken string // cleared once confirmed

	MFAToken string // base32 TOTP secret, empty until setup starts
	MFAState

	Roles     []string // role names, see NormalizeRoles
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MFAState is the second factor part of a user record. Enabled and Enforced
// are independent: an admin may enforce MFA on an account that has not set it
// up yet.
type MFAState struct {
	Enabled  bool
	Enforced bool
	Verified bool // reset on every login and logout
}

// HasRole reports whether the user holds role.
func (u User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

// LoginBlocked reports whether credentials must be refused regardless of the
// password: the account is locked or a password reset is pending.
func (u User) LoginBlocked() bool {
	return u.AccountLocked || u.PwResetToken != ""
}

// NormalizeRoles trims, lowercases, deduplicates and sorts role names.
func NormalizeRoles(roles []string) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		r = strings.ToLower(strings.TrimSpace(r))
		if r != "" {
			out = append(out, r)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
