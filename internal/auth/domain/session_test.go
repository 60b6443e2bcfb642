package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSession_LoginWithoutMFA(t *testing.T) {
	s, err := NewSession(User{}).Next(EventLogin)
	require.NoError(t, err)
	require.Equal(t, StateFullAccess, s.State)
	require.False(t, s.MFA.Verified)
}

func TestSession_LoginResetsVerified(t *testing.T) {
	u := User{MFAState: MFAState{Enabled: true, Verified: true}}

	s, err := NewSession(u).Next(EventLogin)
	require.NoError(t, err)
	require.Equal(t, StateAuthenticated, s.State)
	require.False(t, s.MFA.Verified)
	require.False(t, s.FullAccess())
}

func TestSession_OTPValidated(t *testing.T) {
	u := User{MFAState: MFAState{Enabled: true}}

	s, err := NewSession(u).Next(EventLogin)
	require.NoError(t, err)

	s, err = s.Next(EventOTPValidated)
	require.NoError(t, err)
	require.Equal(t, StateFullAccess, s.State)
	require.True(t, s.MFA.Verified)
}

func TestSession_EnforcedFinishesSetup(t *testing.T) {
	u := User{MFAState: MFAState{Enforced: true}}

	s, err := NewSession(u).Next(EventLogin)
	require.NoError(t, err)
	require.Equal(t, StateAuthenticated, s.State)

	s, err = s.Next(EventMFASetupFinished)
	require.NoError(t, err)
	require.Equal(t, StateFullAccess, s.State)
	require.Equal(t, MFAState{Enabled: true, Verified: true}, s.MFA)
}

func TestSession_Logout(t *testing.T) {
	s := ResumeSession(User{MFAState: MFAState{Enabled: true, Verified: true}})
	require.Equal(t, StateFullAccess, s.State)

	s, err := s.Next(EventLogout)
	require.NoError(t, err)
	require.Equal(t, StateAnonymous, s.State)
	require.False(t, s.MFA.Verified)
	require.True(t, s.MFA.Enabled)
}

func TestSession_MFADisabled(t *testing.T) {
	s := ResumeSession(User{MFAState: MFAState{Enabled: true}})
	require.Equal(t, StateAuthenticated, s.State)

	s, err := s.Next(EventMFADisabled)
	require.NoError(t, err)
	require.Equal(t, StateFullAccess, s.State)
	require.Equal(t, MFAState{}, s.MFA)
}

func TestSession_IllegalTransitions(t *testing.T) {
	tests := []struct {
		name string
		s    Session
		e    Event
	}{
		{"otp while anonymous", NewSession(User{MFAState: MFAState{Enabled: true}}), EventOTPValidated},
		{"otp without mfa", ResumeSession(User{}), EventOTPValidated},
		{"setup while anonymous", NewSession(User{}), EventMFASetupFinished},
		{"setup when already enabled", ResumeSession(User{MFAState: MFAState{Enabled: true}}), EventMFASetupFinished},
		{"unknown event", ResumeSession(User{}), Event(42)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.s.Next(tt.e)
			require.ErrorIs(t, err, ErrInvalidTransition)
			require.Equal(t, tt.s, got, "state must be unchanged")
		})
	}
}

func TestNormalizeRoles(t *testing.T) {
	require.Equal(t, []string{"admin", "user"}, NormalizeRoles([]string{" User", "admin", "", "user"}))
	require.Empty(t, NormalizeRoles(nil))
}

func TestUser_LoginBlocked(t *testing.T) {
	require.False(t, User{}.LoginBlocked())
	require.True(t, User{AccountLocked: true}.LoginBlocked())
	require.True(t, User{PwResetToken: "abc123"}.LoginBlocked())
}
