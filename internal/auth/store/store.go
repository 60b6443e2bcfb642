package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/adminhub/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it and
// expose sub-repositories so a transaction hands out the same repos bound to
// the tx, and nobody opens a transaction inside a transaction by accident.
type Store interface {
	Users() Users
	Roles() Roles
	RefreshTokens() RefreshTokens
	AuditLogs() AuditLogs

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise. Inside fn only use the repos of tx.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Users mutations return ErrNotFound when no row matched.
type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUserName matches case-insensitively.
	GetUserByUserName(ctx context.Context, userName string) (domain.User, error)

	// CreateUser returns ErrAlreadyExists when the user name or email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	IsEmpty(ctx context.Context) (bool, error)

	// UpdateMFAToken stores a pending TOTP secret without touching the flags.
	UpdateMFAToken(ctx context.Context, userID, secret string) error

	// EnableMFA applies the enabled and verified flags of st only while
	// mfa_token still equals secret, so a concurrent UpdateMFAToken wins and
	// this returns ErrNotFound. mfa_enforced is never touched.
	EnableMFA(ctx context.Context, userID, secret string, st domain.MFAState) error

	// VerifyMFA sets mfa_verified while MFA is enabled with secret. It
	// returns ErrNotFound once MFA was disabled or the secret replaced.
	VerifyMFA(ctx context.Context, userID, secret string) error

	// SetMFAVerified writes mfa_verified only.
	SetMFAVerified(ctx context.Context, userID string, verified bool) error

	// DisableMFA clears the secret and the enabled/verified flags.
	DisableMFA(ctx context.Context, userID string) error

	SetAccountLocked(ctx context.Context, userID string, locked bool) error
	SetPwResetToken(ctx context.Context, userID, token string) error

	// UpdatePassword sets the hash and clears any pending reset token.
	UpdatePassword(ctx context.Context, userID, hash string) error

	// ConfirmEmail marks the email verified and clears the verify token.
	ConfirmEmail(ctx context.Context, userID string) error
}

type Roles interface {
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)
	ListAll(ctx context.Context) ([]domain.Role, error)
	CreateRole(ctx context.Context, r domain.Role) error
	IsEmpty(ctx context.Context) (bool, error)
}

type RefreshTokens interface {
	CreateRefreshToken(ctx context.Context, t domain.RefreshToken) error

	// GetRefreshTokenByHash returns the token by its fingerprint.
	GetRefreshTokenByHash(ctx context.Context, hash string) (domain.RefreshToken, error)

	// DeleteRefreshToken is a no-op for unknown hashes.
	DeleteRefreshToken(ctx context.Context, hash string) error

	// DeleteUserRefreshTokens ends every session of a user.
	DeleteUserRefreshTokens(ctx context.Context, userID string) (int64, error)

	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

type AuditLogs interface {
	CreateAuditEntry(ctx context.Context, e domain.AuditEntry) error

	// ListAuditEntries returns entries newest first.
	ListAuditEntries(ctx context.Context, limit, offset int) ([]domain.AuditEntry, error)
	CountAuditEntries(ctx context.Context) (int, error)

	DeleteAuditEntriesBefore(ctx context.Context, before time.Time) (int64, error)
}
