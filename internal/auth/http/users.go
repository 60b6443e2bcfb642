package http

import (
	"net/http"

	"github.com/aussiebroadwan/adminhub/internal/auth/domain"
	"github.com/aussiebroadwan/adminhub/internal/auth/service"
	"github.com/aussiebroadwan/adminhub/pkg/authsdk"
	"github.com/aussiebroadwan/adminhub/pkg/httpx"
)

// UsersHandler serves the /v1/users endpoints. Requests naming an
// execUserId must come from that user.
type UsersHandler struct {
	UserService *service.UserService
	Expose      bool
}

// HandleGetUser handles GET /v1/users/{id}
//
//	@Summary		Get a user
//	@Description	Users may read their own account; admins may read any account.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string					true	"User ID"
//	@Success		200	{object}	authsdk.UserResponse	"User"
//	@Failure		400	{object}	authsdk.Envelope		"Unknown user"
//	@Failure		401	{object}	authsdk.Envelope		"Invalid or missing access token"
//	@Failure		403	{object}	authsdk.Envelope		"MFA verification required or not allowed"
//	@Router			/v1/users/{id} [get].
func (h *UsersHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	claims, _ := httpx.ClaimsFromContext(r.Context())
	if claims.Subject != id && !claims.HasRole(domain.RoleAdmin) {
		httpx.WriteError(w, http.StatusForbidden, "not allowed to read this user")
		return
	}

	user, err := h.UserService.GetUser(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.UserResponse{User: toUser(user)})
}

// HandleDisableMFA handles PATCH /v1/users/disableMfa
//
//	@Summary		Disable MFA
//	@Description	Clears the TOTP secret of a user. Allowed for the user themselves or an admin. Enforcement stays in place.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.DisableMFARequest	true	"Target and executing user"
//	@Success		200		{object}	authsdk.Envelope			"MFA disabled; error:true when it was not enabled"
//	@Failure		400		{object}	authsdk.Envelope			"Validation failed or unknown user"
//	@Failure		401		{object}	authsdk.Envelope			"Invalid or missing access token"
//	@Failure		403		{object}	authsdk.Envelope			"Not allowed"
//	@Router			/v1/users/disableMfa [patch].
func (h *UsersHandler) HandleDisableMFA(w http.ResponseWriter, r *http.Request) {
	var req authsdk.DisableMFARequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}
	if !requireSubject(w, r, req.ExecUserID) {
		return
	}

	if err := h.UserService.DisableMFA(r.Context(), req.UserID, req.ExecUserID); err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.Envelope{})
}

// HandleLockAccount handles PATCH /v1/users/lockAccount
//
//	@Summary		Lock or unlock an account
//	@Description	Admin only. Locking revokes every refresh token of the account.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LockAccountRequest	true	"Target, executing user and lock state"
//	@Success		200		{object}	authsdk.Envelope			"Lock state changed"
//	@Failure		400		{object}	authsdk.Envelope			"Validation failed or unknown user"
//	@Failure		401		{object}	authsdk.Envelope			"Invalid or missing access token"
//	@Failure		403		{object}	authsdk.Envelope			"Not an admin, or locking yourself"
//	@Router			/v1/users/lockAccount [patch].
func (h *UsersHandler) HandleLockAccount(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LockAccountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}
	if !requireSubject(w, r, req.ExecUserID) {
		return
	}

	if err := h.UserService.SetAccountLocked(r.Context(), req.UserID, req.ExecUserID, *req.Locked); err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.Envelope{})
}

// HandleRequestPasswordReset handles PATCH /v1/users/requestPasswordReset
//
//	@Summary		Request a password reset
//	@Description	Admin only. Blocks login for the target until resetPassword succeeds and returns the reset token to hand over out of band.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RequestPasswordResetRequest	true	"Target and executing user"
//	@Success		200		{object}	authsdk.PasswordResetResponse		"Reset token"
//	@Failure		400		{object}	authsdk.Envelope					"Validation failed or unknown user"
//	@Failure		401		{object}	authsdk.Envelope					"Invalid or missing access token"
//	@Failure		403		{object}	authsdk.Envelope					"Not an admin"
//	@Router			/v1/users/requestPasswordReset [patch].
func (h *UsersHandler) HandleRequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RequestPasswordResetRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}
	if !requireSubject(w, r, req.ExecUserID) {
		return
	}

	token, err := h.UserService.RequestPasswordReset(r.Context(), req.UserID, req.ExecUserID)
	if err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.PasswordResetResponse{PwResetToken: token})
}
