package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/passgod/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with -c/-config.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-o", "-d", "-i", "-l", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend API")
	fs.StringVar(&cfg.WebOrigin, "o", cfg.WebOrigin, "web origin used in share links")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database")
	tokenCheckInterval := fs.Int("i", int(cfg.TokenCheckInterval.Seconds()), "stored token check interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format: text, json or console")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -i only counts when given; its whole seconds would otherwise truncate
	// an interval set by the file or the environment.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" {
			cfg.TokenCheckInterval = time.Duration(*tokenCheckInterval) * time.Second
		}
	})
}
