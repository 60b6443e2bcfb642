package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/adminhub/internal/auth/domain"
	"github.com/aussiebroadwan/adminhub/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func withAdmin(u *domain.User) { u.Roles = []string{domain.RoleAdmin} }

func TestDisableMFA(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.createUser(t, "root", "correct-horse", withAdmin)
	other := f.createUser(t, "mallory", "correct-horse", nil)
	alice, _ := enableMFA(t, f, "alice")
	bob, _ := enableMFA(t, f, "bob")

	t.Run("other users are forbidden", func(t *testing.T) {
		require.ErrorIs(t, f.users.DisableMFA(ctx, alice.ID, other.ID), ErrForbidden)
		require.True(t, f.user(t, alice.ID).MFAState.Enabled)
	})

	t.Run("self", func(t *testing.T) {
		require.NoError(t, f.users.DisableMFA(ctx, alice.ID, alice.ID))
		stored := f.user(t, alice.ID)
		require.Empty(t, stored.MFAToken)
		require.False(t, stored.MFAState.Enabled)
		require.False(t, stored.MFAState.Verified)
	})

	t.Run("admin", func(t *testing.T) {
		require.NoError(t, f.users.DisableMFA(ctx, bob.ID, admin.ID))
		require.False(t, f.user(t, bob.ID).MFAState.Enabled)
	})

	t.Run("already disabled", func(t *testing.T) {
		require.ErrorIs(t, f.users.DisableMFA(ctx, alice.ID, alice.ID), ErrMFANotEnabled)
	})

	t.Run("unknown target", func(t *testing.T) {
		require.ErrorIs(t, f.users.DisableMFA(ctx, "missing", admin.ID), ErrUserNotFound)
	})
}

func TestDisableMFA_KeepsEnforcement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.createUser(t, "alice", "correct-horse", func(u *domain.User) {
		u.MFAToken = "JBSWY3DPEHPK3PXP"
		u.MFAState = domain.MFAState{Enabled: true, Enforced: true, Verified: true}
	})

	require.NoError(t, f.users.DisableMFA(ctx, u.ID, u.ID))
	require.Equal(t, domain.MFAState{Enforced: true}, f.user(t, u.ID).MFAState)
}

func TestSetAccountLocked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.createUser(t, "root", "correct-horse", withAdmin)
	alice := f.createUser(t, "alice", "correct-horse", nil)

	res, err := f.auth.Login(ctx, LoginCommand{UserName: "alice", Password: "correct-horse"})
	require.NoError(t, err)

	require.ErrorIs(t, f.users.SetAccountLocked(ctx, admin.ID, alice.ID, true), ErrForbidden)
	require.ErrorIs(t, f.users.SetAccountLocked(ctx, admin.ID, admin.ID, true), ErrForbidden)

	require.NoError(t, f.users.SetAccountLocked(ctx, alice.ID, admin.ID, true))
	require.True(t, f.user(t, alice.ID).AccountLocked)

	_, err = f.token.CreateNewAccessToken(ctx, res.Tokens.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidToken, "locking ends sessions")

	_, err = f.auth.Login(ctx, LoginCommand{UserName: "alice", Password: "correct-horse"})
	require.ErrorIs(t, err, ErrAccountLocked)

	require.NoError(t, f.users.SetAccountLocked(ctx, alice.ID, admin.ID, false))
	_, err = f.auth.Login(ctx, LoginCommand{UserName: "alice", Password: "correct-horse"})
	require.NoError(t, err)

	require.ErrorIs(t, f.users.SetAccountLocked(ctx, "missing", admin.ID, true), ErrUserNotFound)
}

func TestRequestPasswordReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.createUser(t, "root", "correct-horse", withAdmin)
	bob := f.createUser(t, "bob", "correct-horse", nil)

	_, err := f.users.RequestPasswordReset(ctx, admin.ID, bob.ID)
	require.ErrorIs(t, err, ErrForbidden)

	token, err := f.users.RequestPasswordReset(ctx, bob.ID, admin.ID)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, cryptox.EqualTokens(token, f.user(t, bob.ID).PwResetToken))

	_, err = f.auth.Login(ctx, LoginCommand{UserName: "bob", Password: "correct-horse"})
	require.ErrorIs(t, err, ErrPasswordResetPending)

	require.NoError(t, f.auth.ResetPassword(ctx, bob.ID, token, "brand-new-pass"))
	_, err = f.auth.Login(ctx, LoginCommand{UserName: "bob", Password: "brand-new-pass"})
	require.NoError(t, err)
}

func TestGetUser(t *testing.T) {
	f := newFixture(t)
	u := f.createUser(t, "alice", "correct-horse", nil)

	got, err := f.users.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.UserName)

	_, err = f.users.GetUser(context.Background(), "missing")
	require.ErrorIs(t, err, ErrUserNotFound)
}
