package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/portal-labs/userportal/activitylog"
	"github.com/portal-labs/userportal/users"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	Error     string
	Message   string
	UserCount int
}

// LoginPageHandler displays the login form (GET / and GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := LoginPageData{
			Error:     r.URL.Query().Get("error"),
			Message:   r.URL.Query().Get("message"),
			UserCount: s.users.Count(),
		}
		s.renderPage(w, http.StatusOK, "login", data)
	}
}

// LoginSubmissionHandler processes the login form submission
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		username := users.NormalizeUsername(r.FormValue("username"))
		password := strings.TrimSpace(r.FormValue("password"))
		if username == "" || password == "" {
			http.Error(w, "username and password are required", http.StatusBadRequest)
			return
		}

		if !s.users.VerifyPassword(username, password) {
			// Failed logins stay on the form with a 200; there is no
			// lockout after repeated failures.
			s.logActivity(activitylog.LevelWarning, "LOGIN FAILED", username, "")
			s.renderPage(w, http.StatusOK, "login", LoginPageData{
				Error:     "Invalid username or password",
				UserCount: s.users.Count(),
			})
			return
		}

		sessionID, err := s.mintSession(w, r, username)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		s.logActivity(activitylog.LevelInfo, "LOGIN", username, "session_id="+sessionID)
		http.Redirect(w, r, s.profilePath(username), http.StatusFound)
	}
}

// LogoutHandler destroys the session and clears the cookie. RequireSession
// guarantees a resolvable cookie by the time this runs.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := currentUsername(r)

		cookie, err := r.Cookie(sessionCookieName)
		if err == nil {
			s.sessions.Delete(cookie.Value)
			s.logActivity(activitylog.LevelInfo, "LOGOUT", username, "session_id="+cookie.Value)
		}

		s.SetSessionCookie(w, r, "", -1) // Delete cookie
		http.Redirect(w, r, RouteLogin+"?message="+url.QueryEscape("Session ended"), http.StatusFound)
	}
}

// profilePath returns where a freshly authenticated user lands: the admin
// panel for admins, the welcome page for everyone else.
func (s *Server) profilePath(username string) string {
	if user, err := s.users.Get(username); err == nil && user.IsAdmin() {
		return "/main/" + url.PathEscape(username)
	}
	return "/welcome/" + url.PathEscape(username)
}
