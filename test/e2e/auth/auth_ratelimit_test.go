//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/adminhub/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestLoginRateLimit checks the strict default limit on logIn.
func TestLoginRateLimit(t *testing.T) {
	baseURL, cleanup := setupContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	var limited bool
	for range 10 {
		_, err := client.LogIn(t.Context(), "ghost", "whatever-password")
		require.Error(t, err)
		if authsdk.IsStatus(err, http.StatusTooManyRequests) {
			limited = true
			break
		}
		require.True(t, authsdk.IsStatus(err, http.StatusUnauthorized), "got %v", err)
	}
	require.True(t, limited, "logIn should be rate limited")
}
