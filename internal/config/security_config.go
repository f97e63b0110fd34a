package config

import (
	"strings"
	"time"
)

const (
	sessionSecretVar = "SESSION_SECRET"
	allowedDomainVar = "ALLOWED_EMAIL_DOMAIN"
)

type SecurityConfig interface {
	GetSessionSecret() []byte
	GetAllowedEmailDomain() string
	GetMaxSessionAge() time.Duration
}

type Security struct {
	SessionSecret []byte
	// AllowedEmailDomain restricts sessions to addresses under one domain. Empty disables the check.
	AllowedEmailDomain string
}

var _ SecurityConfig = Security{}

func loadSecurity() Security {
	return Security{
		SessionSecret:      []byte(GetEnv(sessionSecretVar, "")),
		AllowedEmailDomain: strings.TrimPrefix(GetEnv(allowedDomainVar, ""), "@"),
	}
}

func (s Security) GetSessionSecret() []byte {
	return s.SessionSecret
}

func (s Security) GetAllowedEmailDomain() string {
	return s.AllowedEmailDomain
}

func (Security) GetMaxSessionAge() time.Duration {
	return 8 * time.Hour
}
