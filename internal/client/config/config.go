package config

import "time"

// Config holds runtime settings for the PassGod CLI.
//
// Fields:
//   - APIBaseURL: root of the backend REST API, e.g. http://localhost:8000/api/v1.
//   - WebOrigin: origin that share links are composed against.
//   - DatabasePath: SQLite file holding the persisted access token.
//   - TokenCheckInterval: how often the CLI re-reads the stored token to pick
//     up logins and logouts made by other processes.
//   - LogLevel, LogFormat: passed to logging.New.
type Config struct {
	APIBaseURL         string
	WebOrigin          string
	DatabasePath       string
	TokenCheckInterval time.Duration
	LogLevel           string
	LogFormat          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api/v1"
	c.WebOrigin = "http://localhost:3000"
	c.DatabasePath = "passgod.db"
	c.TokenCheckInterval = 3 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if present), the environment and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
