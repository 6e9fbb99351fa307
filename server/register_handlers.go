package server

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/portal-labs/userportal/activitylog"
	"github.com/portal-labs/userportal/users"
)

// RegisterPageData contains data for rendering the registration page
type RegisterPageData struct {
	Error string
}

// RegisterPageHandler displays the registration form (GET /register)
func (s *Server) RegisterPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderPage(w, http.StatusOK, "register", RegisterPageData{
			Error: r.URL.Query().Get("error"),
		})
	}
}

// RegisterSubmissionHandler processes the registration form submission.
// Requesting the admin role requires a valid provisioning credential pair
// belonging to an existing admin.
func (s *Server) RegisterSubmissionHandler() http.HandlerFunc {
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

		if username == users.NormalizeUsername(s.config.GetAdminUsername()) {
			s.logActivity(activitylog.LevelWarning, "REGISTER REJECTED", username, "reserved username")
			s.renderPage(w, http.StatusOK, "register", RegisterPageData{Error: "Username is reserved"})
			return
		}

		role := users.ParseRole(r.FormValue("role"))
		if role == users.RoleAdmin {
			adminUsername := users.NormalizeUsername(r.FormValue("admin_username"))
			adminPassword := r.FormValue("admin_password")
			provisioner, err := s.users.Get(adminUsername)
			if err != nil || !provisioner.IsAdmin() || !s.users.VerifyPassword(adminUsername, adminPassword) {
				s.logActivity(activitylog.LevelWarning, "ADMIN PROVISIONING REJECTED", username, "provisioner="+adminUsername)
				s.renderPage(w, http.StatusOK, "register", RegisterPageData{Error: "Admin provisioning credentials are invalid"})
				return
			}
		}

		if _, err := s.users.Create(username, password, role); err != nil {
			if errors.Is(err, users.ErrUserExists) {
				s.logActivity(activitylog.LevelWarning, "REGISTER REJECTED", username, "duplicate username")
				s.renderPage(w, http.StatusOK, "register", RegisterPageData{Error: "User already exists"})
				return
			}
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		s.logActivity(activitylog.LevelInfo, "REGISTER", username, "role="+string(role))

		sessionID, err := s.mintSession(w, r, username)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		s.logActivity(activitylog.LevelInfo, "LOGIN", username, "session_id="+sessionID)

		http.Redirect(w, r, s.profilePath(username), http.StatusFound)
	}
}
