// Package config provides functionality for managing configuration
// options for the application using command-line flags, environment
// variables and an optional JSON config file.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// ServerURL is the base URL of the QuickSwap backend.
	ServerURL string

	// Addr is the listen address of the stub server (ip:port).
	Addr string

	// LogFile is where the terminal client writes its log.
	LogFile string

	// NightMode selects the dark palette at startup.
	NightMode bool

	// Config is the path to the config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.ServerURL, "url", "http://localhost:8080", "backend base URL")
	flag.StringVar(&options.Addr, "a", "localhost:8080", "stub server listen address")
	flag.StringVar(&options.LogFile, "log", "quickswap.log", "client log file path")
	flag.BoolVar(&options.NightMode, "night", false, "start in night mode")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses a .env file, the command-line flags and environment
// variables to set configuration values. It returns a pointer to the
// Options struct containing the parsed configuration values.
func Parse() *Options {
	_ = godotenv.Load()
	flag.Parse()

	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverURL := os.Getenv("QUICKSWAP_URL"); serverURL != "" {
		options.ServerURL = serverURL
	}
	if addr := os.Getenv("SERVER_ADDRESS"); addr != "" {
		options.Addr = addr
	}
	if logFile := os.Getenv("QUICKSWAP_LOG"); logFile != "" {
		options.LogFile = logFile
	}

	return options
}
