package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/labelshop/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-b string   commerce backend URL
//	-m string   CMS URL
//	-s string   SQLite state file
//	-n int      news requests per client per window
//	-l string   log level
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-b", "-m", "-s", "-n", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Server.HTTPAddr, "a", config.Server.HTTPAddr, "address and port to run the storefront API")
	fs.StringVar(&config.Public.BackendURL, "b", config.Public.BackendURL, "commerce backend URL")
	fs.StringVar(&config.Server.CMSURL, "m", config.Server.CMSURL, "CMS URL")
	fs.StringVar(&config.Server.StatePath, "s", config.Server.StatePath, "SQLite state file")
	fs.IntVar(&config.Server.NewsRateLimit, "n", config.Server.NewsRateLimit, "news requests per client per window")
	fs.StringVar(&config.Server.LogLevel, "l", config.Server.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
