package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/portal-labs/userportal/activitylog"
)

// SetSessionCookie sets (or, with a negative maxAge, clears) the session
// cookie. Max-age mirrors the configured session TTL.
func (s *Server) SetSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string, maxAge int) {
	isSecure := getScheme(r) == "https"

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// mintSession creates a session for username and sets the cookie
func (s *Server) mintSession(w http.ResponseWriter, r *http.Request, username string) (string, error) {
	sessionID, err := s.sessions.Create(username)
	if err != nil {
		return "", err
	}
	s.SetSessionCookie(w, r, sessionID, int(s.config.GetSessionTTL().Seconds()))
	return sessionID, nil
}

// logActivity appends to the activity log, dropping append failures into the
// process log rather than failing the request.
func (s *Server) logActivity(level activitylog.Level, event, username, extra string) {
	if err := s.activity.Append(level, event, username, extra); err != nil {
		log.Err(err).Str("event", event).Msg("failed to append activity log")
	}
}
