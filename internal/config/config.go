package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment string `env:"ENV" envDefault:"development"`
	Port        string `env:"API_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`

	// CORS Configuration (comma-separated list of allowed origins)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	// Email Relay Configuration
	EmailRelayURL  string `env:"EMAIL_RELAY_URL" envDefault:"https://api.web3forms.com/submit"`
	EmailAccessKey string `env:"EMAIL_ACCESS_KEY"`
	ContactToEmail string `env:"CONTACT_TO_EMAIL"`
	ContactFrom    string `env:"CONTACT_FROM_EMAIL" envDefault:"noreply@northpeak.studio"`

	// Contacts Store Configuration
	ContactsStoreURL string `env:"CONTACTS_STORE_URL"`

	// Calendly Webhook Configuration
	CalendlySigningKey string `env:"CALENDLY_WEBHOOK_SIGNING_KEY"`

	// Contact endpoint rate limiting
	RateLimitMax    int `env:"CONTACT_RATE_LIMIT_MAX" envDefault:"5"`
	RateLimitWindow int `env:"CONTACT_RATE_LIMIT_WINDOW_SECONDS" envDefault:"60"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	// Load .env file if it exists. Try the env-specific file first,
	// then fall back to a plain .env in the working directory.
	envLocations := []string{".env"}
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}

	for _, loc := range envLocations {
		// godotenv.Load never overwrites variables already set in the
		// environment, so the first file found wins.
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	for i, origin := range cfg.AllowedOrigins {
		cfg.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	// Set default log file if not set
	if cfg.LogFile == "" {
		if cfg.Environment == "production" {
			cfg.LogFile = "/app/logs/api.log"
		} else {
			cfg.LogFile = "./logs/api.log"
		}
	}

	// Ensure log directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return cfg, nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate checks that configuration required in production is present.
// The Calendly signing key is deliberately not checked here: the webhook
// handler fails closed with 503 on its own so that the rest of the API
// stays up when only the webhook is misconfigured.
func (c *Config) Validate() error {
	if !c.IsProduction() {
		return nil
	}
	if c.EmailAccessKey == "" {
		return fmt.Errorf("EMAIL_ACCESS_KEY is required in production")
	}
	if c.ContactToEmail == "" {
		return fmt.Errorf("CONTACT_TO_EMAIL is required in production")
	}
	return nil
}
