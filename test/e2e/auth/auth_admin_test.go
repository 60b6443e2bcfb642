//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/adminhub/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestAdminLockAccount(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	bootstrapService(t, client)
	bob := signUpUser(t, client, "bob")

	admin := logIn(t, client, adminUserName, adminPassword)
	bobSession := logIn(t, client, "bob", userPassword)

	err := bobSession.LockAccount(t.Context(), admin.UserID(), true)
	require.True(t, authsdk.IsStatus(err, http.StatusForbidden), "non-admins cannot lock, got %v", err)

	require.NoError(t, admin.LockAccount(t.Context(), bob.ID, true))

	_, err = client.LogIn(t.Context(), "bob", userPassword)
	require.True(t, authsdk.IsStatus(err, http.StatusUnauthorized), "got %v", err)
	require.ErrorContains(t, err, "account locked")

	_, err = client.CreateNewAccessToken(t.Context(), bobSession.RefreshToken())
	require.True(t, authsdk.IsStatus(err, http.StatusUnauthorized), "locking revokes refresh tokens, got %v", err)

	require.NoError(t, admin.LockAccount(t.Context(), bob.ID, false))
	logIn(t, client, "bob", userPassword)
}

func TestAdminPasswordReset(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	bootstrapService(t, client)
	carol := signUpUser(t, client, "carol")
	admin := logIn(t, client, adminUserName, adminPassword)

	token, err := admin.RequestPasswordReset(t.Context(), carol.ID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	_, err = client.LogIn(t.Context(), "carol", userPassword)
	require.ErrorContains(t, err, "open password reset request")

	require.NoError(t, client.ResetPassword(t.Context(), authsdk.ResetPasswordRequest{
		UserID: carol.ID, Token: token, Password: "Brand-new-pass1",
	}))
	logIn(t, client, "carol", "Brand-new-pass1")

	page, err := admin.ListAuditLogs(t.Context(), 1, 50)
	require.NoError(t, err)
	require.NotEmpty(t, page.Docs)

	events := map[string]bool{}
	for _, e := range page.Docs {
		events[e.EventType] = true
	}
	require.True(t, events["user.password_reset_requested"])
	require.True(t, events["auth.password_reset"])
}
