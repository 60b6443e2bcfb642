package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/adminhub/internal/auth/service"
	"github.com/aussiebroadwan/adminhub/pkg/authsdk"
	"github.com/aussiebroadwan/adminhub/pkg/httpx"
)

type AuditHandler struct {
	AuditService *service.AuditService
	Expose       bool
}

// ServeHTTP handles GET /v1/auditLogs
//
//	@Summary		List audit log entries
//	@Description	Returns one page of audit entries, newest first. Admin only.
//	@Tags			Audit
//	@Security		BearerAuth
//	@Produce		json
//	@Param			page	query		int							false	"Page number, starting at 1"	default(1)
//	@Param			limit	query		int							false	"Entries per page, at most 100"	default(10)
//	@Success		200		{object}	authsdk.AuditLogsResponse	"Audit page"
//	@Failure		400		{object}	authsdk.Envelope			"Invalid page or limit"
//	@Failure		401		{object}	authsdk.Envelope			"Invalid or missing access token"
//	@Failure		403		{object}	authsdk.Envelope			"Not an admin"
//	@Router			/v1/auditLogs [get].
func (h *AuditHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}
	limit, err := queryInt(r, "limit", service.DefaultAuditPageLimit)
	if err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}

	res, err := h.AuditService.List(r.Context(), page, limit)
	if err != nil {
		writeServiceError(w, r, err, h.Expose)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.AuditLogsResponse{
		Docs:       toAuditLogs(res.Docs),
		TotalDocs:  res.TotalDocs,
		Page:       res.Page,
		Limit:      res.Limit,
		TotalPages: res.TotalPages,
	})
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, &httpx.ValidationError{Message: key + " must be a positive integer"}
	}
	return n, nil
}
