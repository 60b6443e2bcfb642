package httpx

import (
	"net/http"
	"strings"
)

// RequireFullAccess rejects tokens that still owe a second factor. Must run
// after AuthnMiddleware.
func RequireFullAccess() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}
			if !claims.FullAccess() {
				w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_user_authentication"`)
				WriteError(w, http.StatusForbidden, "mfa verification required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyRole the caller's token must carry at least one of roles.
func RequireAnyRole(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}
			for _, role := range roles {
				if claims.HasRole(role) {
					next.ServeHTTP(w, r)
					return
				}
			}
			WriteError(w, http.StatusForbidden, "requires role: "+strings.Join(roles, " or "))
		})
	}
}
