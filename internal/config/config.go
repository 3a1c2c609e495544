package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`
	MySQLDSN   string `env:"MYSQL_DSN" envDefault:"user:password@tcp(localhost:3306)/communityhub?charset=utf8mb4&parseTime=True&loc=Local"`
	RedisAddr  string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB    int    `env:"REDIS_DB" envDefault:"0"`
	RedisPass  string `env:"REDIS_PASSWORD"`
	JWTSecret  string `env:"JWT_SECRET" envDefault:"change-me"`

	// Media storage for uploaded images.
	UploadsDir     string `env:"UPLOADS_DIR" envDefault:"./uploads"`
	UploadsBaseURL string `env:"UPLOADS_BASE_URL" envDefault:"/uploads"`
}

// Load reads an optional .env file and parses environment variables.
func Load() (*Config, error) {
	// Missing .env is fine; environment wins in deployment.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
