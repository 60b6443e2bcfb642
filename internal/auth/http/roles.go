package http

import (
	"net/http"

	"github.com/aussiebroadwan/adminhub/internal/auth/service"
	"github.com/aussiebroadwan/adminhub/pkg/authsdk"
	"github.com/aussiebroadwan/adminhub/pkg/httpx"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

type RolesHandler struct {
	RolesService *service.RolesService
}

// ServeHTTP handles the list roles endpoint
//
//	@Summary		List all roles
//	@Description	Returns every role ordered by name.
//	@Tags			Roles
//	@Produce		json
//	@Success		200	{object}	authsdk.RolesResponse	"List of roles"
//	@Failure		401	{object}	authsdk.Envelope		"Unauthorized - missing or invalid token"
//	@Failure		403	{object}	authsdk.Envelope		"Forbidden - MFA verification required"
//	@Failure		500	{object}	authsdk.Envelope		"Internal server error"
//	@Security		BearerAuth
//	@Router			/v1/roles [get].
func (h *RolesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	roles, err := h.RolesService.ListAll(ctx)
	if err != nil {
		log.Error("failed to list roles", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "failed to retrieve roles")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.RolesResponse{Roles: toRoles(roles)})
}
