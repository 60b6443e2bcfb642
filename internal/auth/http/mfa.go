package http

import (
	"net/http"

	"github.com/aussiebroadwan/adminhub/internal/auth/service"
	"github.com/aussiebroadwan/adminhub/pkg/authsdk"
	"github.com/aussiebroadwan/adminhub/pkg/httpx"
)

// MFAHandler handles the TOTP enrollment and verification endpoints. Every
// endpoint only acts on the subject of the bearer token.
type MFAHandler struct {
	MFAService *service.MFAService
	Expose     bool
}

// HandleStartSetup handles POST /v1/auth/startMfaSetup
//
//	@Summary		Start TOTP enrollment
//	@Description	Generates a new TOTP secret and returns it with an otpauth:// URL. Calling it again replaces the pending secret.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.MFASetupRequest		true	"User to enroll"
//	@Success		200		{object}	authsdk.MFASetupResponse	"TOTP secret; error:true when MFA is already enabled"
//	@Failure		401		{object}	authsdk.Envelope			"Invalid or missing access token"
//	@Failure		403		{object}	authsdk.Envelope			"Token subject does not match _id"
//	@Router			/v1/auth/startMfaSetup [post].
func (h *MFAHandler) HandleStartSetup(w http.ResponseWriter, r *http.Request) {
	var req authsdk.MFASetupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}
	if !requireSubject(w, r, req.UserID) {
		return
	}

	setup, err := h.MFAService.StartSetup(r.Context(), req.UserID)
	if err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MFASetupResponse{
		Base32: setup.Secret,
		OTPURL: setup.OTPURL,
	})
}

// HandleFinishSetup handles POST /v1/auth/finishMfaSetup
//
//	@Summary		Finish TOTP enrollment
//	@Description	Enables MFA when the code matches the pending secret and marks the session verified.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.OTPRequest	true	"User and current code"
//	@Success		200		{object}	authsdk.Envelope	"MFA enabled; error:true for an invalid code"
//	@Failure		400		{object}	authsdk.Envelope	"Validation failed"
//	@Failure		401		{object}	authsdk.Envelope	"Invalid or missing access token"
//	@Failure		403		{object}	authsdk.Envelope	"Token subject does not match _id"
//	@Failure		429		{object}	authsdk.Envelope	"Too many invalid codes"
//	@Router			/v1/auth/finishMfaSetup [post].
func (h *MFAHandler) HandleFinishSetup(w http.ResponseWriter, r *http.Request) {
	var req authsdk.OTPRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}
	if !requireSubject(w, r, req.UserID) {
		return
	}

	if err := h.MFAService.FinishSetup(r.Context(), req.UserID, req.Token); err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.Envelope{})
}

// HandleValidateOTP handles POST /v1/auth/validateOtp
//
//	@Summary		Validate a TOTP code
//	@Description	Second login step for accounts with MFA enabled. Refresh the access token afterwards to obtain full access.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.OTPRequest	true	"User and current code"
//	@Success		200		{object}	authsdk.Envelope	"Session verified; error:true for an invalid code"
//	@Failure		400		{object}	authsdk.Envelope	"Validation failed"
//	@Failure		401		{object}	authsdk.Envelope	"Invalid or missing access token"
//	@Failure		403		{object}	authsdk.Envelope	"Token subject does not match _id"
//	@Failure		429		{object}	authsdk.Envelope	"Too many invalid codes"
//	@Router			/v1/auth/validateOtp [post].
func (h *MFAHandler) HandleValidateOTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.OTPRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}
	if !requireSubject(w, r, req.UserID) {
		return
	}

	if err := h.MFAService.ValidateOTP(r.Context(), req.UserID, req.Token); err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.Envelope{})
}
