package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Session storage driver names accepted by the configuration
const (
	SessionStorageFile     = "file"
	SessionStorageMemory   = "memory"
	SessionStoragePostgres = "postgres"
)

// Config represents the application configuration structure
type Config struct {
	Environment string `default:"development"`

	ConsoleListenAddress string `default:":8080" split_words:"true"`
	ConsoleAllowedOrigin string `default:"*" split_words:"true"`

	BackendBaseAddress    string        `default:"http://localhost:5000/api" split_words:"true"`
	BackendRequestTimeout time.Duration `default:"10s" split_words:"true"`

	SessionStorageDriver string `default:"file" split_words:"true"`
	SessionFilePath      string `default:"session.json" split_words:"true"`
	PostgresDSN          string `envconfig:"postgres_dsn"`

	// OfflineLogin keeps the console usable without a reachable backend by downgrading failed
	// logins to a local fallback session. It is ignored (always off) in production.
	OfflineLogin bool `default:"true" split_words:"true"`

	ReadCacheTTL time.Duration `default:"30s" envconfig:"read_cache_ttl"`
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	// Load a new configuration structure using environment variables
	config := new(Config)
	if err := envconfig.Process("vhh", config); err != nil {
		return nil, err
	}
	return config, nil
}

// IsEnvProduction returns whether the application runs in a production environment
func (config *Config) IsEnvProduction() bool {
	return strings.EqualFold(config.Environment, "production")
}

// OfflineLoginEnabled returns whether failed logins may be downgraded to offline fallback sessions
func (config *Config) OfflineLoginEnabled() bool {
	return config.OfflineLogin && !config.IsEnvProduction()
}
