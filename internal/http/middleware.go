package http

import (
	"net/http"

	"github.com/fjod/go_storefront/internal/session"
)

// RequireSession gates protected routes: the startup restore must have
// settled and an identity must be present.
func RequireSession(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sessions.Ready() {
				respondError(w, http.StatusServiceUnavailable, "session_not_ready", "session restore still in progress")
				return
			}
			if !sessions.IsAuthenticated() {
				respondError(w, http.StatusUnauthorized, "unauthenticated", "sign in to continue")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin additionally checks the admin role.
func RequireAdmin(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := sessions.CurrentUser()
			if user == nil {
				respondError(w, http.StatusUnauthorized, "unauthenticated", "sign in to continue")
				return
			}
			if !user.IsAdmin() {
				respondError(w, http.StatusForbidden, "forbidden", "admin role required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
