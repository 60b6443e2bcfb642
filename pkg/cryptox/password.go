package cryptox

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync/atomic"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned by VerifyPassword when the password does not
// match the stored hash.
var ErrPasswordMismatch = errors.New("password does not match")

// ErrPasswordTooLong is returned for passwords bcrypt cannot represent.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

var cost atomic.Int64

func init() { cost.Store(int64(bcrypt.DefaultCost)) }

// SetCost changes the bcrypt work factor used by HashPassword. Tests lower it
// to bcrypt.MinCost.
func SetCost(c int) {
	if c < bcrypt.MinCost {
		c = bcrypt.MinCost
	}
	if c > bcrypt.MaxCost {
		c = bcrypt.MaxCost
	}
	cost.Store(int64(c))
}

// HashPassword returns a bcrypt hash ($2a$) of password.
func HashPassword(password string) (string, error) {
	if len(password) > 72 {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), int(cost.Load()))
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a bcrypt hash.
func VerifyPassword(password, encodedHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("invalid hash: %w", err)
	}
}

// GeneratePassword returns a random 16 character alphanumeric password. The
// bootstrap flow uses it when no admin password is supplied.
func GeneratePassword() (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const length = 16
	password := make([]byte, length)
	for i := range password {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random password: %w", err)
		}
		password[i] = charset[n.Int64()]
	}
	return string(password), nil
}
