//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/adminhub/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestBootstrap(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	req := authsdk.BootstrapRequest{AdminUserName: adminUserName, AdminEmail: adminEmail, AdminPassword: adminPassword}

	_, err := client.Bootstrap(t.Context(), "wrong-token", req)
	require.True(t, authsdk.IsStatus(err, http.StatusUnauthorized), "got %v", err)

	adminID := bootstrapService(t, client)

	_, err = client.Bootstrap(t.Context(), bootstrapToken, req)
	require.True(t, authsdk.IsStatus(err, http.StatusConflict), "second bootstrap must conflict, got %v", err)

	admin := logIn(t, client, adminUserName, adminPassword)
	require.Equal(t, adminID, admin.UserID())
	require.Contains(t, admin.User().Roles, "admin")

	roles, err := admin.ListRoles(t.Context())
	require.NoError(t, err)
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	require.ElementsMatch(t, []string{"admin", "user"}, names)
}
