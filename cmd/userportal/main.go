package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/portal-labs/userportal/activitylog"
	"github.com/portal-labs/userportal/internal/config"
	"github.com/portal-labs/userportal/server"
	"github.com/portal-labs/userportal/sessions"
	"github.com/portal-labs/userportal/users/csvrepo"
)

func main() {
	app := &cli.App{
		Name:  "userportal",
		Usage: "login and registration portal backed by a flat user table",
		Commands: []*cli.Command{
			serveCmd(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("userportal failed")
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the portal HTTP server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Value: "8080", Usage: "listen port", EnvVars: []string{"PORT"}},
			&cli.StringFlag{Name: "env", Value: "DEV", Usage: "DEV (plain HTTP) or PROD (TLS)", EnvVars: []string{"ENV"}},
			&cli.StringFlag{Name: "data-folder", Value: "./data", Usage: "folder for the user table and log file", EnvVars: []string{"FOLDER"}},
			&cli.StringFlag{Name: "static-folder", Value: "./static", Usage: "folder served under /static/", EnvVars: []string{"STATIC_FOLDER"}},
			&cli.StringFlag{Name: "users-file", Usage: "user table file (default <data-folder>/users.csv)", EnvVars: []string{"USERS_FILE"}},
			&cli.StringFlag{Name: "log-file", Usage: "activity log file (default <data-folder>/log.csv)", EnvVars: []string{"LOG_FILE"}},
			&cli.DurationFlag{Name: "session-ttl", Value: config.DefaultSessionTTL, Usage: "idle session lifetime", EnvVars: []string{"SESSION_TTL"}},
			&cli.StringFlag{Name: "admin-user", Value: "admin", Usage: "reserved admin username", EnvVars: []string{"ADMIN_USER"}},
			&cli.StringFlag{Name: "admin-password", Value: "admin123", Usage: "bootstrap admin password (change in any real deployment)", EnvVars: []string{"ADMIN_PASSWORD"}},
			&cli.StringFlag{Name: "tls-cert", Usage: "TLS certificate file (PROD)", EnvVars: []string{"TLS_CERT"}},
			&cli.StringFlag{Name: "tls-key", Usage: "TLS key file (PROD)", EnvVars: []string{"TLS_KEY"}},
		},
		Action: func(c *cli.Context) error {
			return serve(configFromCLI(c))
		},
	}
}

func configFromCLI(c *cli.Context) config.Static {
	cfg := config.Static{
		Port:          c.String("port"),
		Env:           c.String("env"),
		DataFolder:    c.String("data-folder"),
		StaticFolder:  c.String("static-folder"),
		UsersFile:     c.String("users-file"),
		LogFile:       c.String("log-file"),
		SessionTTL:    c.Duration("session-ttl"),
		AdminUsername: c.String("admin-user"),
		AdminPassword: c.String("admin-password"),
		TLSCert:       c.String("tls-cert"),
		TLSKey:        c.String("tls-key"),
	}
	if cfg.UsersFile == "" {
		cfg.UsersFile = filepath.Join(cfg.DataFolder, "users.csv")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataFolder, "log.csv")
	}
	return cfg
}

func serve(cfg config.Config) error {
	setupLogger(cfg.GetEnv())
	displayAppName(cfg.GetAppName())

	if err := os.MkdirAll(cfg.GetDataFolder(), 0o755); err != nil {
		return fmt.Errorf("create data folder: %w", err)
	}

	activity := activitylog.New(cfg.GetLogFile(), log.Logger)
	userRepo, err := csvrepo.New(cfg.GetUsersFile(), activity)
	if err != nil {
		return fmt.Errorf("open user table: %w", err)
	}
	sessionRepo := sessions.NewInMemoryRepo(cfg.GetSessionTTL())

	srv, err := server.New(cfg, userRepo, sessionRepo, activity)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	httpServer := &http.Server{Addr: cfg.GetPort(), Handler: srv}
	errCh := make(chan error, 1)
	go func() {
		errCh <- listenAndServe(httpServer, cfg)
	}()

	select {
	case err := <-errCh:
		return err
	case <-stopSignal():
	}
	return shutdown(httpServer)
}

func listenAndServe(httpServer *http.Server, cfg config.Config) error {
	log.Info().Str("addr", httpServer.Addr).Str("env", cfg.GetEnv()).Msg("server listening")

	var err error
	if cfg.GetEnv() == "PROD" && cfg.GetTLSCert() != "" {
		err = httpServer.ListenAndServeTLS(cfg.GetTLSCert(), cfg.GetTLSKey())
	} else {
		err = httpServer.ListenAndServe()
	}
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func stopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func setupLogger(env string) {
	if env == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func displayAppName(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
