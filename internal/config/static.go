package config

import "time"

// Static is a Config backed by plain values, used by the CLI (flag values
// overlay the environment) and by tests.
type Static struct {
	Port          string
	AppName       string
	Env           string
	DataFolder    string
	StaticFolder  string
	UsersFile     string
	LogFile       string
	SessionTTL    time.Duration
	AdminUsername string
	AdminPassword string
	TLSCert       string
	TLSKey        string
}

var _ Config = Static{}

func (s Static) GetPort() string {
	if s.Port == "" {
		return ":8080"
	}
	if s.Port[0] != ':' {
		return ":" + s.Port
	}
	return s.Port
}

func (s Static) GetAppName() string {
	if s.AppName == "" {
		return "User Portal"
	}
	return s.AppName
}

func (s Static) GetEnv() string {
	if s.Env == "" {
		return "DEV"
	}
	return s.Env
}

func (s Static) GetDataFolder() string   { return s.DataFolder }
func (s Static) GetStaticFolder() string { return s.StaticFolder }
func (s Static) GetUsersFile() string    { return s.UsersFile }
func (s Static) GetLogFile() string      { return s.LogFile }

func (s Static) GetSessionTTL() time.Duration {
	if s.SessionTTL <= 0 {
		return DefaultSessionTTL
	}
	return s.SessionTTL
}

func (s Static) GetAdminUsername() string { return s.AdminUsername }
func (s Static) GetAdminPassword() string { return s.AdminPassword }
func (s Static) GetTLSCert() string       { return s.TLSCert }
func (s Static) GetTLSKey() string        { return s.TLSKey }
