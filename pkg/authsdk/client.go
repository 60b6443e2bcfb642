package authsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient talks to the adminhub API. It covers the unauthenticated
// endpoints and, given an access token, the MFA endpoints. Use LogInSession
// for a Session that keeps its access token fresh.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new client for the service at baseURL.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SignUp registers a new account.
func (c *SDKClient) SignUp(ctx context.Context, req SignUpRequest) (*SignUpResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/signUp", "", req)
	if err != nil {
		return nil, err
	}

	var out SignUpResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// LogIn exchanges credentials for a token pair. Accounts with MFA enabled
// get a token without full access until ValidateOTP succeeds.
func (c *SDKClient) LogIn(ctx context.Context, userName, password string) (*LogInResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/logIn", "", LogInRequest{
		UserName: userName,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var out LogInResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// LogInSession logs in and wraps the tokens in a Session.
func (c *SDKClient) LogInSession(ctx context.Context, userName, password string) (*Session, error) {
	out, err := c.LogIn(ctx, userName, password)
	if err != nil {
		return nil, err
	}
	return newSession(c, out), nil
}

// StartMFASetup issues a new TOTP secret for userID.
func (c *SDKClient) StartMFASetup(ctx context.Context, accessToken, userID string) (*MFASetupResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/startMfaSetup", accessToken, MFASetupRequest{UserID: userID})
	if err != nil {
		return nil, err
	}

	var out MFASetupResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// FinishMFASetup enables MFA when code matches the pending secret.
func (c *SDKClient) FinishMFASetup(ctx context.Context, accessToken, userID, code string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/finishMfaSetup", accessToken, OTPRequest{
		UserID: userID,
		Token:  code,
	})
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// ValidateOTP verifies the second factor after login. The current access
// token does not change; call CreateNewAccessToken for one with full access.
func (c *SDKClient) ValidateOTP(ctx context.Context, accessToken, userID, code string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/validateOtp", accessToken, OTPRequest{
		UserID: userID,
		Token:  code,
	})
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// CreateNewAccessToken mints an access token from a refresh token.
func (c *SDKClient) CreateNewAccessToken(ctx context.Context, refreshToken string) (*AccessTokenResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/createNewAccessToken", "", RefreshTokenRequest{
		RefreshToken: refreshToken,
	})
	if err != nil {
		return nil, err
	}

	var out AccessTokenResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout ends the session behind refreshToken.
func (c *SDKClient) Logout(ctx context.Context, refreshToken string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/logout", "", RefreshTokenRequest{
		RefreshToken: refreshToken,
	})
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

func (c *SDKClient) ConfirmEmail(ctx context.Context, req ConfirmEmailRequest) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/confirmEmail", "", req)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

func (c *SDKClient) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/auth/resetPassword", "", req)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// DisableMFA turns off MFA for req.UserID. The access token must belong to
// req.ExecUserID.
func (c *SDKClient) DisableMFA(ctx context.Context, accessToken string, req DisableMFARequest) error {
	resp, err := c.doJSON(ctx, http.MethodPatch, "/v1/users/disableMfa", accessToken, req)
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}
