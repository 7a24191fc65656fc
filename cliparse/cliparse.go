package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	RedisURL      string
	GeocodeAPIURL string
	GeocodeAPIKey string
}

const defaultGeocodeAPIURL = "https://maps.googleapis.com/maps/api/geocode/json"

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	// Load .env if present; real env variables win over file values
	_ = godotenv.Load()

	fs := flag.NewFlagSet("question-hour", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or file path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.RedisURL, "redis", "", "Redis URL for the geocode cache (optional)")

	// Geocoding collaborator (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.GeocodeAPIURL, "geocode-url", "", "Geocoding API base URL")
	fs.StringVar(&cfg.GeocodeAPIKey, "geocode-key", "", "Geocoding API key (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3001 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.RedisURL == "" {
		cfg.RedisURL = os.Getenv("REDIS_URL")
	}

	if cfg.GeocodeAPIURL == "" {
		cfg.GeocodeAPIURL = os.Getenv("GEOCODE_API_URL")
		if cfg.GeocodeAPIURL == "" {
			cfg.GeocodeAPIURL = defaultGeocodeAPIURL
		}
	}

	// Key MUST be provided: the server proxies all geocoding lookups
	if cfg.GeocodeAPIKey == "" {
		cfg.GeocodeAPIKey = os.Getenv("GEOCODE_API_KEY")
	}
	if cfg.GeocodeAPIKey == "" {
		return Config{}, errors.New("GEOCODE_API_KEY required")
	}

	return cfg, nil
}
