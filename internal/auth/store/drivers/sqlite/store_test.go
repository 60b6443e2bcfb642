package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/adminhub/internal/auth/domain"
	"github.com/aussiebroadwan/adminhub/internal/auth/store"
	"github.com/aussiebroadwan/adminhub/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/adminhub/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newUser(name string) domain.User {
	return domain.User{
		ID:           idx.New().String(),
		UserName:     name,
		FirstName:    "First",
		LastName:     "Last",
		Email:        name + "@example.com",
		PasswordHash: "$2a$04$hash",
		Roles:        []string{"user", "admin", "user"},
	}
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestUsers_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	empty, err := s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	u := newUser("alice")
	u.PwResetToken = "abc123"
	require.NoError(t, s.Users().CreateUser(ctx, u))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.UserName)
	require.Equal(t, "abc123", got.PwResetToken)
	require.Equal(t, []string{"admin", "user"}, got.Roles)
	require.False(t, got.CreatedAt.IsZero())

	// User names match case-insensitively.
	got, err = s.Users().GetUserByUserName(ctx, "ALICE")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	_, err = s.Users().GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsers_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Users().CreateUser(ctx, newUser("alice")))

	dupName := newUser("Alice")
	dupName.Email = "other@example.com"
	require.ErrorIs(t, s.Users().CreateUser(ctx, dupName), store.ErrAlreadyExists)

	dupEmail := newUser("alice2")
	dupEmail.Email = "ALICE@example.com"
	require.ErrorIs(t, s.Users().CreateUser(ctx, dupEmail), store.ErrAlreadyExists)
}

func TestUsers_MFALifecycle(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u := newUser("alice")
	u.MFAState.Enforced = true
	require.NoError(t, s.Users().CreateUser(ctx, u))

	require.NoError(t, s.Users().UpdateMFAToken(ctx, u.ID, "SECRETONE"))

	// VerifyMFA needs MFA enabled.
	require.ErrorIs(t, s.Users().VerifyMFA(ctx, u.ID, "SECRETONE"), store.ErrNotFound)

	// Compare-and-set fails once the secret has moved on.
	require.NoError(t, s.Users().UpdateMFAToken(ctx, u.ID, "SECRETTWO"))
	err := s.Users().EnableMFA(ctx, u.ID, "SECRETONE", domain.MFAState{Enabled: true, Verified: true})
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Users().EnableMFA(ctx, u.ID, "SECRETTWO", domain.MFAState{Enabled: true, Verified: true}))
	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, domain.MFAState{Enabled: true, Enforced: true, Verified: true}, got.MFAState, "enforced is kept")
	require.Equal(t, "SECRETTWO", got.MFAToken)

	require.NoError(t, s.Users().SetMFAVerified(ctx, u.ID, false))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, domain.MFAState{Enabled: true, Enforced: true}, got.MFAState)

	require.ErrorIs(t, s.Users().VerifyMFA(ctx, u.ID, "SECRETONE"), store.ErrNotFound)
	require.NoError(t, s.Users().VerifyMFA(ctx, u.ID, "SECRETTWO"))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.MFAState.Verified)

	require.NoError(t, s.Users().DisableMFA(ctx, u.ID))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, got.MFAToken)
	require.Equal(t, domain.MFAState{Enforced: true}, got.MFAState)

	// Verification cannot come back after a disable.
	require.ErrorIs(t, s.Users().VerifyMFA(ctx, u.ID, "SECRETTWO"), store.ErrNotFound)

	require.ErrorIs(t, s.Users().DisableMFA(ctx, "missing"), store.ErrNotFound)
	require.ErrorIs(t, s.Users().SetMFAVerified(ctx, "missing", false), store.ErrNotFound)
}

func TestUsers_AccountControls(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u := newUser("bob")
	u.EmailVerifyToken = "verify-me"
	require.NoError(t, s.Users().CreateUser(ctx, u))

	require.NoError(t, s.Users().SetAccountLocked(ctx, u.ID, true))
	require.NoError(t, s.Users().SetPwResetToken(ctx, u.ID, "abc123"))
	require.NoError(t, s.Users().ConfirmEmail(ctx, u.ID))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, got.AccountLocked)
	require.Equal(t, "abc123", got.PwResetToken)
	require.True(t, got.EmailVerified)
	require.Empty(t, got.EmailVerifyToken)

	require.NoError(t, s.Users().UpdatePassword(ctx, u.ID, "$2a$04$new"))
	got, err = s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "$2a$04$new", got.PasswordHash)
	require.Empty(t, got.PwResetToken)
}

func TestRefreshTokens(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u := newUser("alice")
	require.NoError(t, s.Users().CreateUser(ctx, u))

	now := time.Now()
	live := domain.RefreshToken{ID: idx.New().String(), UserID: u.ID, TokenHash: "live", ExpiresAt: now.Add(time.Hour)}
	dead := domain.RefreshToken{ID: idx.New().String(), UserID: u.ID, TokenHash: "dead", ExpiresAt: now.Add(-time.Hour)}
	require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, live))
	require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, dead))

	got, err := s.RefreshTokens().GetRefreshTokenByHash(ctx, "live")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.UserID)
	require.WithinDuration(t, live.ExpiresAt, got.ExpiresAt, time.Millisecond)
	require.False(t, got.Expired(now))

	n, err := s.RefreshTokens().DeleteExpiredRefreshTokens(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	require.NoError(t, s.RefreshTokens().DeleteRefreshToken(ctx, "live"))
	require.NoError(t, s.RefreshTokens().DeleteRefreshToken(ctx, "live"), "deleting twice is fine")
	_, err = s.RefreshTokens().GetRefreshTokenByHash(ctx, "live")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRefreshTokens_DeleteForUser(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	alice, bob := newUser("alice"), newUser("bob")
	require.NoError(t, s.Users().CreateUser(ctx, alice))
	require.NoError(t, s.Users().CreateUser(ctx, bob))

	exp := time.Now().Add(time.Hour)
	for i, owner := range []string{alice.ID, alice.ID, bob.ID} {
		require.NoError(t, s.RefreshTokens().CreateRefreshToken(ctx, domain.RefreshToken{
			ID: idx.New().String(), UserID: owner, TokenHash: string(rune('a' + i)), ExpiresAt: exp,
		}))
	}

	n, err := s.RefreshTokens().DeleteUserRefreshTokens(ctx, alice.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	_, err = s.RefreshTokens().GetRefreshTokenByHash(ctx, "c")
	require.NoError(t, err)
}

func TestRoles(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	for _, name := range []string{"user", "admin"} {
		require.NoError(t, s.Roles().CreateRole(ctx, domain.Role{ID: idx.New().String(), Name: name}))
	}
	require.ErrorIs(t, s.Roles().CreateRole(ctx, domain.Role{ID: idx.New().String(), Name: "admin"}), store.ErrAlreadyExists)

	roles, err := s.Roles().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	require.Equal(t, "admin", roles[0].Name)

	_, err = s.Roles().GetRoleByName(ctx, "root")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestAuditLogs(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	base := time.Now().Add(-48 * time.Hour)
	for i := range 5 {
		require.NoError(t, s.AuditLogs().CreateAuditEntry(ctx, domain.AuditEntry{
			ID:        idx.New().String(),
			EventType: domain.AuditLogin,
			Status:    domain.AuditSuccess,
			CreatedAt: base.Add(time.Duration(i) * 12 * time.Hour),
		}))
	}

	total, err := s.AuditLogs().CountAuditEntries(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, total)

	page, err := s.AuditLogs().ListAuditEntries(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.True(t, page[0].CreatedAt.After(page[1].CreatedAt), "newest first")

	n, err := s.AuditLogs().DeleteAuditEntriesBefore(ctx, base.Add(30*time.Hour))
	require.NoError(t, err)
	require.EqualValues(t, 3, n)
}

func TestWithTx_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Users().CreateUser(ctx, newUser("alice")))
		return boom
	})
	require.ErrorIs(t, err, boom)

	empty, err := s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, newUser("alice"))
	}))
	empty, err = s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.False(t, empty)
}
