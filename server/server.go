package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/portal-labs/userportal/activitylog"
	"github.com/portal-labs/userportal/internal/config"
	"github.com/portal-labs/userportal/sessions"
	"github.com/portal-labs/userportal/users"
)

type Server struct {
	env        string // Environment (e.g., "DEV", "PROD")
	mux        *http.ServeMux
	routes     []string
	fileServer http.Handler
	config     config.Config
	users      users.Repo
	sessions   sessions.Repo
	activity   *activitylog.Log
}

func New(cfg config.Config, userRepo users.Repo, sessionRepo sessions.Repo, activity *activitylog.Log) (*Server, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("[Server New] user repo is required")
	}
	if sessionRepo == nil {
		return nil, fmt.Errorf("[Server New] session repo is required")
	}
	if activity == nil {
		return nil, fmt.Errorf("[Server New] activity log is required")
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		users:    userRepo,
		sessions: sessionRepo,
		activity: activity,
	}
	s.env = cfg.GetEnv()
	s.fileServer = http.StripPrefix(StaticPrefix, http.FileServer(http.Dir(cfg.GetStaticFolder())))

	// Bootstrap: ensure the user table exists and the admin record is seeded
	if err := userRepo.Bootstrap(cfg.GetAdminUsername(), cfg.GetAdminPassword()); err != nil {
		return nil, fmt.Errorf("[Server New] failed to bootstrap user store: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
