package config

import (
	"fmt"
	"strings"

	apperrors "github.com/jrsteele09/portal-gate/internal/errors"
)

type Config interface {
	EnvConfig
	OAuthConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetBaseURL() string
	GetMetricsAddr() string
}

// Settings is the process configuration. It is read from the environment once
// by New and then passed to every component that needs it.
type Settings struct {
	EnvVars
	OAuth
	Security
}

var _ Config = Settings{}

// New loads the configuration from the environment.
func New() Settings {
	return Settings{
		EnvVars:  loadEnvVars(),
		OAuth:    loadOAuth(),
		Security: loadSecurity(),
	}
}

// Validate reports the settings required to serve the login flow that are missing.
func (s Settings) Validate() error {
	var missing []string
	if len(s.SessionSecret) == 0 {
		missing = append(missing, sessionSecretVar)
	}
	if s.ClientID == "" {
		missing = append(missing, clientIDVar)
	}
	if s.ClientSecret == "" {
		missing = append(missing, clientSecretVar)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", apperrors.ErrInvalidConfig, strings.Join(missing, ", "))
	}
	return nil
}
