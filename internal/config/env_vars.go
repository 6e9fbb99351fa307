package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	portEnvVar   = "PORT"
	appNameVar   = "APP_NAME"
	folderEnvVar = "FOLDER"

	// DefaultSessionTTL applies when SESSION_TTL is unset or unparsable
	DefaultSessionTTL = 10 * time.Minute
)

type EnvVars struct{}

var _ Config = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "User Portal")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func (e EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "./data")
}

func (e EnvVars) GetStaticFolder() string {
	return GetEnv("STATIC_FOLDER", "./static")
}

func (e EnvVars) GetUsersFile() string {
	return GetEnv("USERS_FILE", filepath.Join(e.GetDataFolder(), "users.csv"))
}

func (e EnvVars) GetLogFile() string {
	return GetEnv("LOG_FILE", filepath.Join(e.GetDataFolder(), "log.csv"))
}

func (EnvVars) GetSessionTTL() time.Duration {
	ttl, err := time.ParseDuration(GetEnv("SESSION_TTL", ""))
	if err != nil || ttl <= 0 {
		return DefaultSessionTTL
	}
	return ttl
}

// GetAdminUsername returns the reserved admin username seeded on first run
func (EnvVars) GetAdminUsername() string {
	return GetEnv("ADMIN_USER", "admin")
}

// GetAdminPassword returns the bootstrap admin password. The default is the
// well-known legacy credential; override it in any real deployment.
func (EnvVars) GetAdminPassword() string {
	return GetEnv("ADMIN_PASSWORD", "admin123")
}

func (EnvVars) GetTLSCert() string {
	return GetEnv("TLS_CERT", "")
}

func (EnvVars) GetTLSKey() string {
	return GetEnv("TLS_KEY", "")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
