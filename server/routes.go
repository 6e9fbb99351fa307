package server

func (s *Server) initRoutes() {
	// Root doubles as the login page; unmatched paths fall through to it
	s.RegisterRouteHandler("GET /", ChainMiddleware(s.IndexHandler(), s.HTMLMiddleware()...))

	// Public allow-list: login, registration, and the static-asset subtree
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteRegister, ChainMiddleware(s.RegisterPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteRegister, ChainMiddleware(s.RegisterSubmissionHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteForbidden, ChainMiddleware(s.ForbiddenPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteNotFound, ChainMiddleware(s.NotFoundPageHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteHandler("GET "+StaticPrefix, s.fileServer)

	// Session-gated routes
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleware(s.RequireSession())...))
	s.RegisterRouteHandler("GET "+RouteWelcome, ChainMiddleware(s.WelcomeHandler(), s.HTMLMiddleware(s.RequireSession())...))

	// Admin-only routes
	s.RegisterRouteHandler("GET "+RouteAdminPanel, ChainMiddleware(s.AdminPanelHandler(), s.HTMLMiddleware(s.RequireSession(), s.RequireAdmin())...))
	s.RegisterRouteHandler("GET "+RouteAPIUsers, ChainMiddleware(s.APIUsersHandler(), s.HTMLMiddleware(s.RequireSession(), s.RequireAdmin())...))
	s.RegisterRouteHandler("GET "+RouteAPILogs, ChainMiddleware(s.APILogsHandler(), s.HTMLMiddleware(s.RequireSession(), s.RequireAdmin())...))
}
