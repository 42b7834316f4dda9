package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v6"

	"github.com/telbook/telbook-backend/pkg/utils"
)

// Config holds everything loaded from the environment at process start.
// Nothing else in the codebase reads os.Getenv directly.
type Config struct {
	MongoURI     string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017/telbook"`
	DatabaseName string `env:"DATABASE_NAME" envDefault:"telbook"`
	RedisURI     string `env:"REDIS_URI"`

	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENV" envDefault:"development"`

	// JWT
	JWTSecret          string `env:"SECRET_KEY" envDefault:"change-me-in-production"`
	TokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"1440"`

	// Single admin identity. ADMIN_PASSWORD_HASH takes precedence; a plain
	// ADMIN_PASSWORD is hashed at load so dev setups don't need to pre-hash.
	AdminUsername     string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	AdminPassword     string `env:"ADMIN_PASSWORD"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:3000"`

	CloudinaryName      string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))

	if cfg.AdminPasswordHash == "" && cfg.AdminPassword != "" {
		hash, err := utils.HashPassword(cfg.AdminPassword)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		cfg.AdminPasswordHash = hash
	}
	if cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH must be set")
	}

	var origins []string
	for _, o := range cfg.AllowedOrigins {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	cfg.AllowedOrigins = origins

	return cfg, nil
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
