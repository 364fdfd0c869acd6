package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	HTTP     HTTPConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Places   PlacesConfig
	Events   EventsConfig
	AppEnv   string
}

// HTTPConfig contains HTTP server settings.
type HTTPConfig struct {
	Address string // listen address (e.g., ":8080")
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path string // SQLite database file path
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret string // JWT signing secret
}

// PlacesConfig contains geocoding/autocomplete service settings.
type PlacesConfig struct {
	APIKey  string // Google Places API key
	BaseURL string // override for tests; empty means the public endpoint
}

// EventsConfig contains order-event publishing settings.
type EventsConfig struct {
	AMQPURL string // RabbitMQ URL; empty disables publishing
}

// Load loads configuration from a .env file (if present) and environment
// variables. Secrets have no defaults here; use LoadWithDefaults in development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := fromEnv()
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set; required for production")
	}
	if cfg.Places.APIKey == "" {
		return nil, fmt.Errorf("PLACES_API_KEY environment variable is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but fills safe development defaults for secrets.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	_ = godotenv.Load()

	cfg := fromEnv()
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "dev-secret-change-me"
	}
	return cfg, nil
}

func fromEnv() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address: getEnv("HTTP_ADDRESS", ":8080"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "app.db"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Places: PlacesConfig{
			APIKey:  getEnv("PLACES_API_KEY", ""),
			BaseURL: getEnv("PLACES_BASE_URL", ""),
		},
		Events: EventsConfig{
			AMQPURL: getEnv("AMQP_URL", ""),
		},
		AppEnv: getEnv("APP_ENV", "development"),
	}
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{HTTP: %s, DB: %s, Places: ***, Auth: ***, Events: %t}",
		c.HTTP.Address, c.Database.Path, c.Events.AMQPURL != "")
}
