package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/passgod/internal/flagx"
	"github.com/dmitrijs2005/passgod/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for file unmarshalling.
type FileConfig struct {
	APIBaseURL         string         `json:"api_base_url" yaml:"api_base_url"`
	WebOrigin          string         `json:"web_origin" yaml:"web_origin"`
	DatabasePath       string         `json:"database_path" yaml:"database_path"`
	TokenCheckInterval *timex.Duration `json:"token_check_interval" yaml:"token_check_interval"`
	LogLevel           string         `json:"log_level" yaml:"log_level"`
	LogFormat          string         `json:"log_format" yaml:"log_format"`
}

// parseFile overlays cfg with values from the file named by -c/-config.
// It panics on read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	setIfNotEmpty(&cfg.APIBaseURL, fc.APIBaseURL)
	setIfNotEmpty(&cfg.WebOrigin, fc.WebOrigin)
	setIfNotEmpty(&cfg.DatabasePath, fc.DatabasePath)
	setIfNotEmpty(&cfg.LogLevel, fc.LogLevel)
	setIfNotEmpty(&cfg.LogFormat, fc.LogFormat)
	if fc.TokenCheckInterval != nil {
		cfg.TokenCheckInterval = fc.TokenCheckInterval.Duration
	}
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
