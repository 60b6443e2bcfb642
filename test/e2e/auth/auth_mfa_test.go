//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/adminhub/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestMFAEnrollmentAndLogin enrolls TOTP, then logs in again and passes the
// second factor.
func TestMFAEnrollmentAndLogin(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	bootstrapService(t, client)
	dave := signUpUser(t, client, "dave")

	session := logIn(t, client, "dave", userPassword)
	setup, err := session.StartMFASetup(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, setup.Base32)
	require.Contains(t, setup.OTPURL, "otpauth://totp/")

	err = session.FinishMFASetup(t.Context(), "12ab")
	require.True(t, authsdk.IsStatus(err, http.StatusBadRequest), "malformed code, got %v", err)

	require.NoError(t, session.FinishMFASetup(t.Context(), totpCode(t, setup.Base32)))
	require.NoError(t, session.Logout(t.Context()))

	// Second login: no full access until validateOtp.
	second := logIn(t, client, "dave", userPassword)
	_, err = second.GetUser(t.Context(), dave.ID)
	require.True(t, authsdk.IsStatus(err, http.StatusForbidden), "got %v", err)

	require.NoError(t, second.ValidateOTP(t.Context(), totpCode(t, setup.Base32)))
	user, err := second.GetUser(t.Context(), dave.ID)
	require.NoError(t, err)
	require.True(t, user.MFAEnabled)
	require.True(t, user.MFAVerified)

	// Self-service disable.
	require.NoError(t, second.DisableMFA(t.Context(), dave.ID))
	user, err = second.GetUser(t.Context(), dave.ID)
	require.NoError(t, err)
	require.False(t, user.MFAEnabled)
}

func TestMFAEndpointsRejectOtherSubjects(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	bootstrapService(t, client)
	signUpUser(t, client, "erin")
	frank := signUpUser(t, client, "frank")

	erin := logIn(t, client, "erin", userPassword)
	_, err := client.StartMFASetup(t.Context(), erin.AccessToken(), frank.ID)
	require.True(t, authsdk.IsStatus(err, http.StatusForbidden), "got %v", err)
}
