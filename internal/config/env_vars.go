package config

import (
	"os"
	"strings"
)

const (
	portEnvVar     = "PORT"
	appNameVar     = "APP_NAME"
	envVar         = "ENV"
	logLevelVar    = "LOG_LEVEL"
	baseURLVar     = "APP_URL"
	metricsAddrVar = "METRICS_ADDR"
)

type EnvVars struct {
	Port        string
	AppName     string
	Env         string
	LogLevel    string
	BaseURL     string
	MetricsAddr string
}

var _ EnvConfig = EnvVars{}

func loadEnvVars() EnvVars {
	metricsAddr, ok := os.LookupEnv(metricsAddrVar)
	if !ok {
		metricsAddr = ":9090"
	}
	return EnvVars{
		Port:        GetEnv(portEnvVar, "8080"),
		AppName:     GetEnv(appNameVar, "Portal Gate"),
		Env:         strings.ToUpper(GetEnv(envVar, "DEV")),
		LogLevel:    GetEnv(logLevelVar, ""),
		BaseURL:     strings.TrimSuffix(GetEnv(baseURLVar, "http://localhost:8080"), "/"),
		MetricsAddr: metricsAddr,
	}
}

// GetPort returns the listen address in ":port" form.
func (e EnvVars) GetPort() string {
	port := e.Port
	if port == "" {
		port = "8080"
	}
	if port[0] != ':' {
		port = ":" + port
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	if e.Env == "" {
		return "DEV"
	}
	return e.Env
}

func (e EnvVars) GetLogLevel() string {
	return e.LogLevel
}

// GetBaseURL returns the public base URL of the site (e.g., "https://portal.example.com")
// This is used to build the OAuth redirect URI
func (e EnvVars) GetBaseURL() string {
	return e.BaseURL
}

// GetMetricsAddr returns the address of the metrics listener. Empty disables it.
func (e EnvVars) GetMetricsAddr() string {
	return e.MetricsAddr
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
