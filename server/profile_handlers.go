package server

import (
	"net/http"

	"github.com/portal-labs/userportal/activitylog"
	"github.com/portal-labs/userportal/users"
)

// WelcomeHandler renders the profile page. The session's username must
// match the path parameter; anything else is a 403.
func (s *Server) WelcomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pathUsername := users.NormalizeUsername(r.PathValue("username"))
		sessionUsername := currentUsername(r)

		if pathUsername != sessionUsername {
			s.logActivity(activitylog.LevelWarning, "PROFILE ACCESS DENIED", sessionUsername, r.URL.Path)
			s.renderForbidden(w)
			return
		}

		user, err := s.users.Get(sessionUsername)
		if err != nil {
			s.renderNotFound(w)
			return
		}
		s.renderPage(w, http.StatusOK, "welcome", user)
	}
}

// AdminPanelData contains data for rendering the admin panel
type AdminPanelData struct {
	Users []users.User
	Logs  []activitylog.Entry
}

// AdminPanelHandler renders the full user table and recent activity.
// RequireAdmin has already vouched for the caller's role.
func (s *Server) AdminPanelHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logs, err := s.activity.Recent(recentLogLimit)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		s.renderPage(w, http.StatusOK, "admin", AdminPanelData{
			Users: s.users.GetAll(),
			Logs:  logs,
		})
	}
}

// ForbiddenPageHandler renders the 403 page (GET /403)
func (s *Server) ForbiddenPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderForbidden(w)
	}
}

// NotFoundPageHandler renders the 404 page (GET /404)
func (s *Server) NotFoundPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderNotFound(w)
	}
}

// IndexHandler serves the login page on "/" and catches every path no other
// route matched: callers with a live session land on the 404 page, everyone
// else goes back to the login page.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == RouteRoot {
			s.renderPage(w, http.StatusOK, "login", LoginPageData{
				Error:     r.URL.Query().Get("error"),
				Message:   r.URL.Query().Get("message"),
				UserCount: s.users.Count(),
			})
			return
		}

		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			if _, ok := s.sessions.Resolve(cookie.Value); ok {
				http.Redirect(w, r, RouteNotFound, http.StatusFound)
				return
			}
		}
		http.Redirect(w, r, RouteLogin, http.StatusFound)
	}
}
