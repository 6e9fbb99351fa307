package server

const (
	RouteRoot       = "/"
	RouteLogin      = "/login"
	RouteRegister   = "/register"
	RouteLogout     = "/logout"
	RouteWelcome    = "/welcome/{username}"
	RouteAdminPanel = "/main/{username}"
	RouteAPIUsers   = "/api/users"
	RouteAPILogs    = "/api/logs"
	RouteForbidden  = "/403"
	RouteNotFound   = "/404"

	// StaticPrefix marks the static-asset subtree, reachable without a session
	StaticPrefix = "/static/"
)

const sessionCookieName = "session_id"

// recentLogLimit caps the number of activity entries shown on the admin
// panel and returned by the logs API.
const recentLogLimit = 50
