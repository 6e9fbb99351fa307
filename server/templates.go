package server

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
)

const contentTypeHTML = "text/html; charset=utf-8"

// Page rendering stays deliberately minimal; the portal's look and feel is
// owned by whoever replaces these templates.
const pageMarkup = `
{{define "login"}}<!DOCTYPE html>
<html>
<head><title>Sign In</title></head>
<body>
<h1>Sign In</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{if .Message}}<p class="message">{{.Message}}</p>{{end}}
<form method="post" action="/login">
  <input name="username" placeholder="Username">
  <input name="password" type="password" placeholder="Password">
  <button type="submit">Login</button>
</form>
<p><a href="/register">Create an account</a></p>
<p>{{.UserCount}} registered users</p>
</body>
</html>{{end}}

{{define "register"}}<!DOCTYPE html>
<html>
<head><title>Register</title></head>
<body>
<h1>Register</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/register">
  <input name="username" placeholder="Username">
  <input name="password" type="password" placeholder="Password">
  <select name="role">
    <option value="user" selected>user</option>
    <option value="admin">admin</option>
  </select>
  <fieldset>
    <legend>Admin provisioning (only for role=admin)</legend>
    <input name="admin_username" placeholder="Existing admin username">
    <input name="admin_password" type="password" placeholder="Existing admin password">
  </fieldset>
  <button type="submit">Register</button>
</form>
<p><a href="/login">Back to login</a></p>
</body>
</html>{{end}}

{{define "welcome"}}<!DOCTYPE html>
<html>
<head><title>Welcome</title></head>
<body>
<h1>Welcome, {{.Username}}</h1>
<p>Role: {{.Role}}</p>
<p>Member since {{.CreatedAt.Format "2006-01-02 15:04:05"}}</p>
<p><a href="/logout">Logout</a></p>
</body>
</html>{{end}}

{{define "admin"}}<!DOCTYPE html>
<html>
<head><title>Admin Panel</title></head>
<body>
<h1>Admin Panel</h1>
<h2>Users</h2>
<table>
<tr><th>username</th><th>role</th><th>created_at</th></tr>
{{range .Users}}<tr><td>{{.Username}}</td><td>{{.Role}}</td><td>{{.CreatedAt.Format "2006-01-02 15:04:05"}}</td></tr>
{{end}}</table>
<h2>Recent Activity</h2>
<table>
<tr><th>timestamp</th><th>level</th><th>event</th><th>username</th></tr>
{{range .Logs}}<tr><td>{{.Timestamp.Format "2006-01-02 15:04:05"}}</td><td>{{.Level}}</td><td>{{.Event}}</td><td>{{.Username}}</td></tr>
{{end}}</table>
<p><a href="/logout">Logout</a></p>
</body>
</html>{{end}}

{{define "forbidden"}}<!DOCTYPE html>
<html>
<head><title>403</title></head>
<body>
<h1>403 - Forbidden</h1>
<p><a href="/">Back to login</a></p>
</body>
</html>{{end}}

{{define "notfound"}}<!DOCTYPE html>
<html>
<head><title>404</title></head>
<body>
<h1>404 - Page Not Found</h1>
<p><a href="/">Back to login</a></p>
</body>
</html>{{end}}
`

var pageTemplates = template.Must(template.New("pages").Parse(pageMarkup))

func (s *Server) renderPage(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		log.Err(err).Str("template", name).Msg("failed to render page")
	}
}

func (s *Server) renderForbidden(w http.ResponseWriter) {
	s.renderPage(w, http.StatusForbidden, "forbidden", nil)
}

func (s *Server) renderNotFound(w http.ResponseWriter) {
	s.renderPage(w, http.StatusNotFound, "notfound", nil)
}
