package http

import (
	"net/http"

	"github.com/aussiebroadwan/adminhub/internal/auth/service"
	"github.com/aussiebroadwan/adminhub/pkg/authsdk"
	"github.com/aussiebroadwan/adminhub/pkg/httpx"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
	Expose           bool
}

// ServeHTTP handles the bootstrap endpoint for initial system setup.
//
//	@Summary		Bootstrap the system
//	@Description	Creates the roles and the first admin user. Only available while a bootstrap token is configured and no user exists.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string						true	"Bootstrap token for authorization"
//	@Param			request				body		authsdk.BootstrapRequest	true	"Bootstrap configuration"
//	@Success		201					{object}	authsdk.BootstrapResponse	"Admin user created"
//	@Failure		400					{object}	authsdk.Envelope			"Invalid request body or missing admin role"
//	@Failure		401					{object}	authsdk.Envelope			"Missing or invalid bootstrap token"
//	@Failure		404					{object}	authsdk.Envelope			"Bootstrap not enabled (no token configured)"
//	@Failure		409					{object}	authsdk.Envelope			"System already bootstrapped"
//	@Failure		500					{object}	authsdk.Envelope			"Failed to create admin user"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())
	l.Info("starting to bootstrap")

	// Disabled and unauthorized are reported before the body is looked at.
	if h.BootstrapService.Token == "" {
		writeServiceError(w, r, service.ErrBootstrapDisabled, h.Expose)
		return
	}
	token := r.Header.Get(authsdk.BootstrapTokenHeader)
	if token == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "bootstrap token is required in "+authsdk.BootstrapTokenHeader+" header")
		return
	}

	var req authsdk.BootstrapRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}

	res, err := h.BootstrapService.Bootstrap(r.Context(), token, toBootstrapData(req))
	if err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}

	l.Info("bootstrap complete", "admin_id", res.AdminID)
	httpx.WriteJSON(w, http.StatusCreated, authsdk.BootstrapResponse{
		AdminID:       res.AdminID,
		AdminUserName: res.AdminUserName,
		AdminPassword: res.AdminPassword,
	})
}
