package http

import (
	"net/http"

	"github.com/aussiebroadwan/adminhub/internal/auth/service"
	"github.com/aussiebroadwan/adminhub/pkg/authsdk"
	"github.com/aussiebroadwan/adminhub/pkg/httpx"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

// AuthHandler serves the unauthenticated /v1/auth endpoints.
type AuthHandler struct {
	AuthService  *service.AuthService
	TokenService *service.TokenService

	// Expose returns internal error text and email verification tokens.
	// Development only.
	Expose bool
}

// HandleSignUp handles POST /v1/auth/signUp
//
//	@Summary		Register an account
//	@Description	Creates a user with the default role. The email address stays unverified until confirmEmail.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.SignUpRequest	true	"New account"
//	@Success		201		{object}	authsdk.SignUpResponse	"Created user"
//	@Failure		400		{object}	authsdk.Envelope		"Validation failed or user exists"
//	@Failure		429		{object}	authsdk.Envelope		"Rate limited"
//	@Router			/v1/auth/signUp [post].
func (h *AuthHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	var req authsdk.SignUpRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}

	user, err := h.AuthService.SignUp(r.Context(), service.SignUpCommand{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		UserName:  req.UserName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}

	resp := authsdk.SignUpResponse{User: toUser(user)}
	if h.Expose {
		resp.EmailVerifyToken = user.EmailVerifyToken
	}
	httpx.WriteJSON(w, http.StatusCreated, resp)
}

// HandleLogIn handles POST /v1/auth/logIn
//
//	@Summary		Log in
//	@Description	Checks the credentials and returns an access token and an opaque refresh token.
//	@Description	Accounts with MFA enabled or enforced get a token without full access until validateOtp or finishMfaSetup succeeds.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LogInRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.LogInResponse	"Token pair and user"
//	@Failure		400		{object}	authsdk.Envelope		"Validation failed"
//	@Failure		401		{object}	authsdk.Envelope		"Invalid credentials, locked account or open password reset"
//	@Failure		429		{object}	authsdk.Envelope		"Rate limited"
//	@Router			/v1/auth/logIn [post].
func (h *AuthHandler) HandleLogIn(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LogInRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}

	res, err := h.AuthService.Login(r.Context(), service.LoginCommand{
		UserName: req.UserName,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.LogInResponse{
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
		ExpiresIn:    int(res.Tokens.ExpiresIn.Seconds()),
		User:         toUser(res.User),
	})
}

// HandleCreateNewAccessToken handles POST /v1/auth/createNewAccessToken
//
//	@Summary		Refresh the access token
//	@Description	Exchanges a refresh token for a new access token reflecting the current account state. The refresh token stays valid.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RefreshTokenRequest		true	"Refresh token"
//	@Success		200		{object}	authsdk.AccessTokenResponse		"New access token"
//	@Failure		400		{object}	authsdk.Envelope				"Validation failed"
//	@Failure		401		{object}	authsdk.Envelope				"Unknown or expired refresh token"
//	@Router			/v1/auth/createNewAccessToken [post].
func (h *AuthHandler) HandleCreateNewAccessToken(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RefreshTokenRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}

	access, err := h.TokenService.CreateNewAccessToken(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.AccessTokenResponse{
		AccessToken: access,
		ExpiresIn:   int(h.TokenService.AccessTokenTTL().Seconds()),
	})
}

// HandleLogout handles POST /v1/auth/logout
//
//	@Summary		Log out
//	@Description	Revokes the refresh token and clears MFA verification. Unknown tokens succeed.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RefreshTokenRequest	true	"Refresh token"
//	@Success		200		{object}	authsdk.Envelope			"Logged out"
//	@Failure		400		{object}	authsdk.Envelope			"Validation failed"
//	@Router			/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RefreshTokenRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}

	if err := h.TokenService.Logout(r.Context(), req.RefreshToken); err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.Envelope{})
}

// HandleConfirmEmail handles POST /v1/auth/confirmEmail
//
//	@Summary		Confirm an email address
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ConfirmEmailRequest	true	"User, email and verification token"
//	@Success		200		{object}	authsdk.Envelope			"Email verified"
//	@Failure		400		{object}	authsdk.Envelope			"Unknown user or token mismatch"
//	@Router			/v1/auth/confirmEmail [post].
func (h *AuthHandler) HandleConfirmEmail(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ConfirmEmailRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}

	if err := h.AuthService.ConfirmEmail(r.Context(), req.UserID, req.Email, req.Token); err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.Envelope{})
}

// HandleResetPassword handles POST /v1/auth/resetPassword
//
//	@Summary		Complete a password reset
//	@Description	Sets a new password using the token an admin obtained from requestPasswordReset. All sessions of the user end.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ResetPasswordRequest	true	"User, reset token and new password"
//	@Success		200		{object}	authsdk.Envelope				"Password changed"
//	@Failure		400		{object}	authsdk.Envelope				"Unknown user, token mismatch or weak password"
//	@Router			/v1/auth/resetPassword [post].
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ResetPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}

	if err := h.AuthService.ResetPassword(r.Context(), req.UserID, req.Token, req.Password); err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}
	slogx.FromContext(r.Context()).Info("password reset completed", "user_id", req.UserID)
	httpx.WriteJSON(w, http.StatusOK, authsdk.Envelope{})
}
