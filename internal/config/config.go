package config

import "time"

type Config interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetDataFolder() string
	GetStaticFolder() string
	GetUsersFile() string
	GetLogFile() string
	GetSessionTTL() time.Duration
	GetAdminUsername() string
	GetAdminPassword() string
	GetTLSCert() string
	GetTLSKey() string
}

func New() Config {
	return EnvVars{}
}
