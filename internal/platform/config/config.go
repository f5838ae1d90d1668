package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds client configuration for the back-office toolkit.
type Config struct {
	APIBaseURL     string
	APIToken       string
	RequestTimeout time.Duration
	IsProduction   bool

	// List behaviour
	DefaultPerPage int

	// Workflow timing knobs. The defaults mirror the dashboard the
	// toolkit was extracted from and should rarely need changing.
	SearchDebounce       time.Duration
	NotifyDedupeWindow   time.Duration
	ErrorClearDelay      time.Duration
	SuccessRedirectDelay time.Duration
}

// LoadConfig loads configuration from environment variables and a .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("API_BASE_URL", "http://localhost:8080/api")
	viper.SetDefault("API_TOKEN", "")
	viper.SetDefault("REQUEST_TIMEOUT", "30s")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("DEFAULT_PER_PAGE", 10)
	viper.SetDefault("SEARCH_DEBOUNCE", "500ms")
	viper.SetDefault("NOTIFY_DEDUPE_WINDOW", "2s")
	viper.SetDefault("ERROR_CLEAR_DELAY", "3s")
	viper.SetDefault("SUCCESS_REDIRECT_DELAY", "1500ms")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.APIBaseURL = viper.GetString("API_BASE_URL")
	if cfg.APIBaseURL == "" {
		log.Println("Warning: API_BASE_URL environment variable not set.")
	}

	cfg.APIToken = viper.GetString("API_TOKEN")
	if cfg.APIToken == "" {
		log.Println("Warning: API_TOKEN not set. Requests will be unauthenticated.")
	}

	cfg.RequestTimeout = parseDurationOr("REQUEST_TIMEOUT", 30*time.Second)
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.DefaultPerPage = viper.GetInt("DEFAULT_PER_PAGE")
	if cfg.DefaultPerPage <= 0 {
		log.Printf("Warning: Invalid value for DEFAULT_PER_PAGE (%d). Defaulting to 10.\n", cfg.DefaultPerPage)
		cfg.DefaultPerPage = 10
	}

	cfg.SearchDebounce = parseDurationOr("SEARCH_DEBOUNCE", 500*time.Millisecond)
	cfg.NotifyDedupeWindow = parseDurationOr("NOTIFY_DEDUPE_WINDOW", 2*time.Second)
	cfg.ErrorClearDelay = parseDurationOr("ERROR_CLEAR_DELAY", 3*time.Second)
	cfg.SuccessRedirectDelay = parseDurationOr("SUCCESS_REDIRECT_DELAY", 1500*time.Millisecond)

	return cfg, nil
}

func parseDurationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
