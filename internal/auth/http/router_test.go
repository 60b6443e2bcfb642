package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/adminhub/internal/auth/domain"
	"github.com/aussiebroadwan/adminhub/internal/auth/service"
	"github.com/aussiebroadwan/adminhub/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestLogIn_ReturnsTokenPair(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.createUser(t, "alice", nil)

	res := ts.logIn(t, "alice")
	require.False(t, res.Error)
	require.NotEmpty(t, res.AccessToken)
	require.NotEmpty(t, res.RefreshToken)
	require.Equal(t, alice.ID, res.User.ID)
	require.False(t, res.User.MFAVerified)
	require.Positive(t, res.ExpiresIn)
}

func TestLogIn_OpenPasswordReset(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "bob", func(u *domain.User) { u.PwResetToken = "abc123" })

	rec := ts.do(t, http.MethodPost, "/v1/auth/logIn", "", authsdk.LogInRequest{UserName: "bob", Password: testPassword})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	res := decode[authsdk.LogInResponse](t, rec)
	require.True(t, res.Error)
	require.Equal(t, "open password reset request", res.Message)
	require.Empty(t, res.AccessToken)
	require.Empty(t, res.RefreshToken)
}

func TestLogIn_Failures(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "carol", nil)

	rec := ts.do(t, http.MethodPost, "/v1/auth/logIn", "", authsdk.LogInRequest{UserName: "carol", Password: "wrong-password"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "invalid username or password", decode[authsdk.Envelope](t, rec).Message)

	rec = ts.do(t, http.MethodPost, "/v1/auth/logIn", "", authsdk.LogInRequest{UserName: "nobody", Password: testPassword})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPost, "/v1/auth/logIn", "", map[string]string{"userName": "carol"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.True(t, decode[authsdk.Envelope](t, rec).Error)
}

func TestMFASetup_EnablesMFAAndGrantsFullAccess(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "alice", nil)
	login := ts.logIn(t, "alice")
	id := login.User.ID

	rec := ts.do(t, http.MethodPost, "/v1/auth/startMfaSetup", login.AccessToken, authsdk.MFASetupRequest{UserID: id})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	setup := decode[authsdk.MFASetupResponse](t, rec)
	require.False(t, setup.Error)
	require.NotEmpty(t, setup.Base32)
	require.True(t, strings.HasPrefix(setup.OTPURL, "otpauth://totp/"))

	// A wrong code answers 200 with error:true and leaves MFA off.
	rec = ts.do(t, http.MethodPost, "/v1/auth/finishMfaSetup", login.AccessToken,
		authsdk.OTPRequest{UserID: id, Token: wrongCode(t, setup.Base32)})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decode[authsdk.Envelope](t, rec).Error)
	require.False(t, ts.user(t, id).Enabled)

	rec = ts.do(t, http.MethodPost, "/v1/auth/finishMfaSetup", login.AccessToken,
		authsdk.OTPRequest{UserID: id, Token: totpCode(t, setup.Base32, time.Now())})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.False(t, decode[authsdk.Envelope](t, rec).Error)

	stored := ts.user(t, id)
	require.True(t, stored.Enabled)
	require.True(t, stored.Verified)

	access := ts.refresh(t, login.RefreshToken)
	rec = ts.do(t, http.MethodGet, "/v1/roles", access, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestValidateOTP_SecondLoginStep(t *testing.T) {
	ts := newTestServer(t)
	secret := newTOTPSecret(t)
	ts.createUser(t, "dave", func(u *domain.User) {
		u.MFAToken = secret
		u.MFAState = domain.MFAState{Enabled: true}
	})
	login := ts.logIn(t, "dave")
	id := login.User.ID

	// Without the second factor the token lacks full access.
	rec := ts.do(t, http.MethodGet, "/v1/roles", login.AccessToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodPost, "/v1/auth/validateOtp", login.AccessToken,
		authsdk.OTPRequest{UserID: id, Token: wrongCode(t, secret)})
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[authsdk.Envelope](t, rec)
	require.True(t, res.Error)
	require.Equal(t, "invalid OTP token", res.Message)

	rec = ts.do(t, http.MethodPost, "/v1/auth/validateOtp", login.AccessToken,
		authsdk.OTPRequest{UserID: id, Token: totpCode(t, secret, time.Now())})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.False(t, decode[authsdk.Envelope](t, rec).Error)

	access := ts.refresh(t, login.RefreshToken)
	rec = ts.do(t, http.MethodGet, "/v1/roles", access, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestValidateOTP_TooManyAttempts(t *testing.T) {
	ts := newTestServer(t, func(r *Router) {
		r.MFAService.Limiter = service.NewMemoryOTPLimiter(2, time.Minute)
	})
	secret := newTOTPSecret(t)
	ts.createUser(t, "erin", func(u *domain.User) {
		u.MFAToken = secret
		u.MFAState = domain.MFAState{Enabled: true}
	})
	login := ts.logIn(t, "erin")
	bad := authsdk.OTPRequest{UserID: login.User.ID, Token: wrongCode(t, secret)}

	for range 2 {
		rec := ts.do(t, http.MethodPost, "/v1/auth/validateOtp", login.AccessToken, bad)
		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, decode[authsdk.Envelope](t, rec).Error)
	}

	// Even the right code is refused during the cooldown.
	good := authsdk.OTPRequest{UserID: login.User.ID, Token: totpCode(t, secret, time.Now())}
	rec := ts.do(t, http.MethodPost, "/v1/auth/validateOtp", login.AccessToken, good)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, otpRetryAfter, rec.Header().Get("Retry-After"))
	require.Equal(t, "too many attempts, try again later", decode[authsdk.Envelope](t, rec).Message)
}

func TestMFAEndpoints_RequireMatchingSubject(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "alice", nil)
	bob := ts.createUser(t, "bob", nil)
	login := ts.logIn(t, "alice")

	rec := ts.do(t, http.MethodPost, "/v1/auth/startMfaSetup", login.AccessToken, authsdk.MFASetupRequest{UserID: bob.ID})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Empty(t, ts.user(t, bob.ID).MFAToken)

	rec = ts.do(t, http.MethodPost, "/v1/auth/startMfaSetup", "", authsdk.MFASetupRequest{UserID: bob.ID})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "alice", nil)
	login := ts.logIn(t, "alice")

	rec := ts.do(t, http.MethodPost, "/v1/auth/logout", "", authsdk.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, decode[authsdk.Envelope](t, rec).Error)

	rec = ts.do(t, http.MethodPost, "/v1/auth/createNewAccessToken", "", authsdk.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Logging out again is fine.
	rec = ts.do(t, http.MethodPost, "/v1/auth/logout", "", authsdk.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSignUpAndConfirmEmail(t *testing.T) {
	ts := newTestServer(t)
	req := authsdk.SignUpRequest{
		FirstName: "Frank",
		LastName:  "Example",
		UserName:  "frank",
		Email:     "frank@example.com",
		Password:  testPassword,
	}

	rec := ts.do(t, http.MethodPost, "/v1/auth/signUp", "", req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	res := decode[authsdk.SignUpResponse](t, rec)
	require.Equal(t, []string{"user"}, res.User.Roles)
	require.False(t, res.User.EmailVerified)
	require.NotEmpty(t, res.EmailVerifyToken)

	rec = ts.do(t, http.MethodPost, "/v1/auth/signUp", "", req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/v1/auth/confirmEmail", "", authsdk.ConfirmEmailRequest{
		UserID: res.User.ID, Email: req.Email, Token: "wrong",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/v1/auth/confirmEmail", "", authsdk.ConfirmEmailRequest{
		UserID: res.User.ID, Email: req.Email, Token: res.EmailVerifyToken,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.True(t, ts.user(t, res.User.ID).EmailVerified)
}

func TestSignUp_HidesVerifyTokenOutsideDev(t *testing.T) {
	ts := newTestServer(t, func(r *Router) { r.ExposeErrors = false })

	rec := ts.do(t, http.MethodPost, "/v1/auth/signUp", "", authsdk.SignUpRequest{
		FirstName: "Gina", LastName: "Example", UserName: "gina", Email: "gina@example.com", Password: testPassword,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Empty(t, decode[authsdk.SignUpResponse](t, rec).EmailVerifyToken)
}

func TestAdminAccountControls(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.createUser(t, "root", func(u *domain.User) { u.Roles = []string{domain.RoleAdmin} })
	bob := ts.createUser(t, "bob", nil)
	adminLogin := ts.logIn(t, "root")
	bobLogin := ts.logIn(t, "bob")

	locked := true
	rec := ts.do(t, http.MethodPatch, "/v1/users/lockAccount", bobLogin.AccessToken,
		authsdk.LockAccountRequest{UserID: admin.ID, ExecUserID: bob.ID, Locked: &locked})
	require.Equal(t, http.StatusForbidden, rec.Code, "non-admins cannot lock accounts")

	rec = ts.do(t, http.MethodPatch, "/v1/users/lockAccount", adminLogin.AccessToken,
		authsdk.LockAccountRequest{UserID: bob.ID, ExecUserID: bob.ID, Locked: &locked})
	require.Equal(t, http.StatusForbidden, rec.Code, "execUserId must be the caller")

	rec = ts.do(t, http.MethodPatch, "/v1/users/lockAccount", adminLogin.AccessToken,
		authsdk.LockAccountRequest{UserID: bob.ID, ExecUserID: admin.ID, Locked: &locked})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.True(t, ts.user(t, bob.ID).AccountLocked)

	// Locking revoked bob's refresh token.
	rec = ts.do(t, http.MethodPost, "/v1/auth/createNewAccessToken", "", authsdk.RefreshTokenRequest{RefreshToken: bobLogin.RefreshToken})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPost, "/v1/auth/logIn", "", authsdk.LogInRequest{UserName: "bob", Password: testPassword})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "account locked", decode[authsdk.Envelope](t, rec).Message)

	rec = ts.do(t, http.MethodPatch, "/v1/users/lockAccount", adminLogin.AccessToken,
		map[string]string{"_id": bob.ID, "execUserId": admin.ID})
	require.Equal(t, http.StatusBadRequest, rec.Code, "locked is required")
}

func TestPasswordResetFlow(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.createUser(t, "root", func(u *domain.User) { u.Roles = []string{domain.RoleAdmin} })
	bob := ts.createUser(t, "bob", nil)
	adminLogin := ts.logIn(t, "root")

	rec := ts.do(t, http.MethodPatch, "/v1/users/requestPasswordReset", adminLogin.AccessToken,
		authsdk.RequestPasswordResetRequest{UserID: bob.ID, ExecUserID: admin.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	reset := decode[authsdk.PasswordResetResponse](t, rec)
	require.NotEmpty(t, reset.PwResetToken)

	rec = ts.do(t, http.MethodPost, "/v1/auth/resetPassword", "", authsdk.ResetPasswordRequest{
		UserID: bob.ID, Token: "not-the-token", Password: "a-new-password",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/v1/auth/resetPassword", "", authsdk.ResetPasswordRequest{
		UserID: bob.ID, Token: reset.PwResetToken, Password: "a-new-password",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/v1/auth/logIn", "", authsdk.LogInRequest{UserName: "bob", Password: "a-new-password"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestDisableMFA_SelfService(t *testing.T) {
	ts := newTestServer(t)
	secret := newTOTPSecret(t)
	dave := ts.createUser(t, "dave", func(u *domain.User) {
		u.MFAToken = secret
		u.MFAState = domain.MFAState{Enabled: true, Enforced: true}
	})
	login := ts.logIn(t, "dave")

	rec := ts.do(t, http.MethodPost, "/v1/auth/validateOtp", login.AccessToken,
		authsdk.OTPRequest{UserID: dave.ID, Token: totpCode(t, secret, time.Now())})
	require.Equal(t, http.StatusOK, rec.Code)
	access := ts.refresh(t, login.RefreshToken)

	rec = ts.do(t, http.MethodPatch, "/v1/users/disableMfa", access,
		authsdk.DisableMFARequest{UserID: dave.ID, ExecUserID: dave.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.False(t, decode[authsdk.Envelope](t, rec).Error)

	stored := ts.user(t, dave.ID)
	require.False(t, stored.Enabled)
	require.Empty(t, stored.MFAToken)
	require.True(t, stored.Enforced)

	rec = ts.do(t, http.MethodPatch, "/v1/users/disableMfa", access,
		authsdk.DisableMFARequest{UserID: dave.ID, ExecUserID: dave.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decode[authsdk.Envelope](t, rec).Error)
}

func TestGetUser(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "root", func(u *domain.User) { u.Roles = []string{domain.RoleAdmin} })
	alice := ts.createUser(t, "alice", nil)
	bob := ts.createUser(t, "bob", nil)
	adminLogin := ts.logIn(t, "root")
	aliceLogin := ts.logIn(t, "alice")

	rec := ts.do(t, http.MethodGet, "/v1/users/"+alice.ID, aliceLogin.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[authsdk.UserResponse](t, rec)
	require.Equal(t, "alice", res.User.UserName)

	rec = ts.do(t, http.MethodGet, "/v1/users/"+bob.ID, aliceLogin.AccessToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodGet, "/v1/users/"+bob.ID, adminLogin.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/v1/users/unknown", adminLogin.AccessToken, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuditLogs_AdminOnly(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "root", func(u *domain.User) { u.Roles = []string{domain.RoleAdmin} })
	ts.createUser(t, "alice", nil)
	adminLogin := ts.logIn(t, "root")
	aliceLogin := ts.logIn(t, "alice")

	rec := ts.do(t, http.MethodGet, "/v1/auditLogs", aliceLogin.AccessToken, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodGet, "/v1/auditLogs?page=1&limit=1", adminLogin.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page := decode[authsdk.AuditLogsResponse](t, rec)
	require.Len(t, page.Docs, 1)
	require.Equal(t, 2, page.TotalDocs)
	require.Equal(t, 2, page.TotalPages)
	require.Equal(t, domain.AuditLogin, page.Docs[0].EventType)

	rec = ts.do(t, http.MethodGet, "/v1/auditLogs?page=zero", adminLogin.AccessToken, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBootstrap(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		ts := newTestServer(t)
		rec := ts.do(t, http.MethodPost, "/v1/bootstrap", "", authsdk.BootstrapRequest{})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("creates admin once", func(t *testing.T) {
		ts := newTestServer(t, withBootstrapToken(testBootstrapToken))
		body := authsdk.BootstrapRequest{AdminUserName: "root", AdminEmail: "root@example.com"}

		rec := ts.bootstrap(t, "", body)
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = ts.bootstrap(t, "wrong", body)
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = ts.bootstrap(t, testBootstrapToken, body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		res := decode[authsdk.BootstrapResponse](t, rec)
		require.Equal(t, "root", res.AdminUserName)
		require.NotEmpty(t, res.AdminPassword, "password is generated when omitted")

		admin := ts.user(t, res.AdminID)
		require.Equal(t, []string{domain.RoleAdmin}, admin.Roles)

		rec = ts.bootstrap(t, testBootstrapToken, body)
		require.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestSystemEndpoints(t *testing.T) {
	ts := newTestServer(t, withCacheCheck(func(context.Context) error { return errors.New("connection refused") }))

	rec := ts.do(t, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decode[authsdk.HealthResponse](t, rec).Status)

	rec = ts.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	health := decode[authsdk.HealthResponse](t, rec)
	require.Equal(t, "degraded", health.Status)
	require.Equal(t, "ok", health.Checks.Database)
	require.Contains(t, health.Checks.Cache, "connection refused")

	rec = ts.do(t, http.MethodGet, "/.well-known/jwks.json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[authsdk.JWKSResponse](t, rec).Keys, 1)

	rec = ts.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `adminhub_http_requests_total{method="GET",route="GET /livez",status="200"} 1`)
}

func TestReadyz_WithoutCache(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[authsdk.HealthResponse](t, rec)
	require.Empty(t, health.Checks.Cache)
}

func TestInternalErrorsHiddenOutsideDev(t *testing.T) {
	ts := newTestServer(t, func(r *Router) { r.ExposeErrors = false })
	ts.createUser(t, "alice", nil)
	login := ts.logIn(t, "alice")

	require.NoError(t, ts.store.Close())

	rec := ts.do(t, http.MethodPost, "/v1/auth/createNewAccessToken", "", authsdk.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "internal server error", decode[authsdk.Envelope](t, rec).Message)
}
