package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultAccessTokenTTL is deliberately short: MFA state and roles are
	// re-read from the store every time a refresh token is exchanged.
	DefaultAccessTokenTTL = time.Minute

	// DefaultRefreshTokenTTL bounds how long an opaque refresh token lives.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims are the access-token claims issued by adminhub.
type Claims struct {
	jwt.RegisteredClaims

	// UserName of the authenticated user.
	UserName string `json:"user_name,omitempty"`

	// Roles held by the user at the time the token was minted.
	Roles []string `json:"roles,omitempty"`

	// Second factor state, see FullAccess.
	MFAEnabled  bool `json:"mfa_enabled"`
	MFAEnforced bool `json:"mfa_enforced"`
	MFAVerified bool `json:"mfa_verified"`
}

// Subject describes who an access token is minted for.
type Subject struct {
	UserID      string
	UserName    string
	Roles       []string
	MFAEnabled  bool
	MFAEnforced bool
	MFAVerified bool
}

// NewAccessClaims builds minimally-correct claims for sub.
func NewAccessClaims(sub Subject, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   sub.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		UserName:    sub.UserName,
		Roles:       slices.Clone(sub.Roles),
		MFAEnabled:  sub.MFAEnabled,
		MFAEnforced: sub.MFAEnforced,
		MFAVerified: sub.MFAVerified,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// FullAccess reports whether the token grants access beyond the MFA
// endpoints: either the second factor was verified, or none is required.
func (c *Claims) FullAccess() bool {
	if c.MFAVerified {
		return true
	}
	return !c.MFAEnabled && !c.MFAEnforced
}

// HasRole reports whether the token carries role.
func (c *Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
func (c *Claims) ValidateExpiry() error {
	return c.ValidateExpiryAt(time.Now().UTC())
}

// ValidateExpiryAt is ValidateExpiry against a fixed clock.
func (c *Claims) ValidateExpiryAt(now time.Time) error {
	if c.ExpiresAt != nil && !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
