package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/adminhub/internal/auth/domain"
	"github.com/aussiebroadwan/adminhub/internal/auth/service"
	"github.com/aussiebroadwan/adminhub/internal/auth/store"
	"github.com/aussiebroadwan/adminhub/pkg/authsdk"
	"github.com/aussiebroadwan/adminhub/pkg/httpx"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

// otpRetryAfter is sent with 429 responses from the OTP limiter.
const otpRetryAfter = "60"

// writeServiceError maps a service error onto the response. Internal errors
// only carry their text when expose is set (ENV=dev).
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, expose bool) {
	log := slogx.FromContext(r.Context())

	var verr *httpx.ValidationError
	switch {
	case errors.As(err, &verr):
		httpx.WriteError(w, http.StatusBadRequest, verr.Message)

	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrInvalidToken):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid or expired token")

	case errors.Is(err, service.ErrForbidden):
		httpx.WriteError(w, http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrTooManyAttempts):
		w.Header().Set("Retry-After", otpRetryAfter)
		httpx.WriteError(w, http.StatusTooManyRequests, err.Error())

	// Business rule violations answer 200 with error:true.
	case errors.Is(err, service.ErrInvalidOTP),
		errors.Is(err, service.ErrMFAAlreadyEnabled),
		errors.Is(err, service.ErrMFANotEnabled),
		errors.Is(err, service.ErrMFASetupNotStarted),
		errors.Is(err, domain.ErrInvalidTransition):
		httpx.WriteJSON(w, http.StatusOK, authsdk.Envelope{Error: true, Message: businessMessage(err)})

	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrInvalidEmailToken),
		errors.Is(err, service.ErrInvalidResetToken):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrBootstrapDisabled):
		httpx.WriteError(w, http.StatusNotFound, "bootstrap endpoint is not enabled")
	case errors.Is(err, service.ErrBootstrapUnauthorized):
		httpx.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrBootstrapAlready):
		httpx.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrBootstrapMissingAdminRole):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())

	default:
		log.Error("request failed", slog.Any("error", err))
		msg := "internal server error"
		if expose {
			msg = err.Error()
		}
		httpx.WriteError(w, http.StatusInternalServerError, msg)
	}
}

// businessMessage hides transition internals behind the OTP wording clients
// already understand.
func businessMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidTransition) {
		return "operation not allowed in the current session state"
	}
	return err.Error()
}

// requireSubject rejects requests whose bearer token belongs to someone other
// than userID.
func requireSubject(w http.ResponseWriter, r *http.Request, userID string) bool {
	sub, ok := httpx.UserIDFromContext(r.Context())
	if !ok || sub != userID {
		slogx.FromContext(r.Context()).Warn("token subject mismatch", "subject", sub, "requested", userID)
		httpx.WriteError(w, http.StatusForbidden, "token subject does not match _id")
		return false
	}
	return true
}
