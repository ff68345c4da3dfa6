// Package config provides functionality for managing configuration options
// for the gateway using command-line flags, a .env file, environment
// variables, and an optional JSON config file.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the gateway's listening address (ip:port).
	Addr string

	// BackendURL is the base URL of the pharmacy REST backend,
	// including the /api prefix.
	BackendURL string

	// DatabaseDSN holds the Postgres connection string for the
	// session store.
	DatabaseDSN string

	// Config is the path to the JSON config file.
	Config string

	// DebounceMs is the search coalescing window in milliseconds.
	DebounceMs int

	// LowStockThreshold is the quantity below which a stock batch
	// counts as low.
	LowStockThreshold int

	// ExpiringDays is the horizon of the expiring-soon window.
	ExpiringDays int
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8090", "run on ip:port")
	flag.StringVar(&options.BackendURL, "b", "http://localhost:8082/api", "pharmacy backend base URL")
	flag.StringVar(&options.DatabaseDSN, "d", "", "session store DSN")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	flag.IntVar(&options.DebounceMs, "debounce", 300, "search debounce window, ms")
	flag.IntVar(&options.LowStockThreshold, "low-stock", 10, "low stock threshold")
	flag.IntVar(&options.ExpiringDays, "expiring-days", 30, "expiring-soon window, days")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// A missing .env is not an error; env vars may come from the shell.
	_ = godotenv.Load()

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

	applyEnv(options)

	return options
}

// applyEnv applies environment overrides; they win over flags and
// file values.
func applyEnv(o *Options) {
	if addr := os.Getenv("SERVER_ADDRESS"); addr != "" {
		o.Addr = addr
	}
	if backend := os.Getenv("BACKEND_URL"); backend != "" {
		o.BackendURL = backend
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		o.DatabaseDSN = dsn
	}
	if v := os.Getenv("SEARCH_DEBOUNCE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			o.DebounceMs = ms
		}
	}
	if v := os.Getenv("LOW_STOCK_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			o.LowStockThreshold = n
		}
	}
	if v := os.Getenv("EXPIRING_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			o.ExpiringDays = n
		}
	}
}
