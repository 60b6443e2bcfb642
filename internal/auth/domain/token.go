package domain

import "time"

// TokenPair is what logIn hands back: a short-lived access token (JWT) and
// the opaque refresh token used to mint new ones.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// RefreshToken models the stored refresh token record. Deleting the record
// ends the session.
type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string // deterministic fingerprint (base64url SHA-256)
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is no longer usable at now.
func (t RefreshToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// LoginResult is a successful login: the user as stored after the login
// transition and a fresh token pair.
type LoginResult struct {
	User   User
	Tokens TokenPair
}
