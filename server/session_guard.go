package server

import (
	"context"
	"net/http"

	"github.com/portal-labs/userportal/activitylog"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyUsername stores the username resolved from the session cookie
const ContextKeyUsername ContextKey = "username"

// RequireSession gates a route behind a valid, non-expired session cookie.
// Requests without one are redirected to the login page and the downstream
// handler is never invoked. A successful resolve refreshes the session's
// last-touch time (sliding expiry).
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, RouteLogin, http.StatusFound)
				return
			}

			username, ok := s.sessions.Resolve(cookie.Value)
			if !ok {
				http.Redirect(w, r, RouteLogin, http.StatusFound)
				return
			}

			s.logActivity(activitylog.LevelInfo, "SESSION ACTIVE", username, cookie.Value)

			ctx := context.WithValue(r.Context(), ContextKeyUsername, username)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireAdmin re-checks the resolved user's role in the user store and
// responds 403 unless it is admin. Must be chained after RequireSession.
func (s *Server) RequireAdmin() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			username := currentUsername(r)
			user, err := s.users.Get(username)
			if err != nil || !user.IsAdmin() {
				s.logActivity(activitylog.LevelWarning, "ADMIN ACCESS DENIED", username, r.URL.Path)
				s.renderForbidden(w)
				return
			}
			next(w, r)
		}
	}
}

// currentUsername returns the username injected by RequireSession, or ""
func currentUsername(r *http.Request) string {
	username, _ := r.Context().Value(ContextKeyUsername).(string)
	return username
}
