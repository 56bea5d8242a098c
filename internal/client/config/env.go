package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	EnvAPIURL             = "PASSGOD_API_URL"
	EnvWebOrigin          = "PASSGOD_WEB_ORIGIN"
	EnvDatabase           = "PASSGOD_DB"
	EnvTokenCheckInterval = "PASSGOD_TOKEN_CHECK_INTERVAL"
	EnvLogLevel           = "PASSGOD_LOG_LEVEL"
	EnvLogFormat          = "PASSGOD_LOG_FORMAT"
)

// EnvConfig is a DTO used exclusively for environment parsing.
type EnvConfig struct {
	APIBaseURL         string        `env:"PASSGOD_API_URL"`
	WebOrigin          string        `env:"PASSGOD_WEB_ORIGIN"`
	DatabasePath       string        `env:"PASSGOD_DB"`
	TokenCheckInterval *time.Duration `env:"PASSGOD_TOKEN_CHECK_INTERVAL"`
	LogLevel           string        `env:"PASSGOD_LOG_LEVEL"`
	LogFormat          string        `env:"PASSGOD_LOG_FORMAT"`
}

// parseEnv overlays cfg with non-empty environment variables. An explicit
// zero interval is kept and disables the token watcher. It panics when a
// variable cannot be parsed (e.g. a malformed interval).
func parseEnv(cfg *Config) {
	var ec EnvConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	setIfNotEmpty(&cfg.APIBaseURL, ec.APIBaseURL)
	setIfNotEmpty(&cfg.WebOrigin, ec.WebOrigin)
	setIfNotEmpty(&cfg.DatabasePath, ec.DatabasePath)
	setIfNotEmpty(&cfg.LogLevel, ec.LogLevel)
	setIfNotEmpty(&cfg.LogFormat, ec.LogFormat)
	if ec.TokenCheckInterval != nil {
		cfg.TokenCheckInterval = *ec.TokenCheckInterval
	}
}
