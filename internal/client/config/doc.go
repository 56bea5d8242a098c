// Package config loads runtime configuration for the PassGod CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Environment variables (see parseEnv), decoded with caarlos0/env.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-o string   web origin used in share links
//	-d string   path to the SQLite database
//	-i int      stored token check interval (seconds)
//	-l string   log level (debug, info, warn, error)
//	-f string   log format (text, json, console)
//
// Environment
//
//	PASSGOD_API_URL, PASSGOD_WEB_ORIGIN, PASSGOD_DB,
//	PASSGOD_TOKEN_CHECK_INTERVAL (Go duration, e.g. "5s"),
//	PASSGOD_LOG_LEVEL, PASSGOD_LOG_FORMAT
//
// # File schema
//
// Intervals use timex.Duration, so values can be either strings like "3s"
// or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8000/api/v1",
//	  "web_origin": "http://localhost:3000",
//	  "database_path": "passgod.db",
//	  "token_check_interval": "3s",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
//
// Empty or missing keys leave the previous value untouched.
package config
