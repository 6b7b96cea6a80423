package config

import (
	"fmt"
	"os"
)

// Config collects every environment setting the server needs. Loaded once
// in main and passed down; nothing else reads the environment.
type Config struct {
	Port            string
	MongoURI        string
	MongoDatabase   string
	RedisAddr       string
	RedisPassword   string
	JWTSecret       string
	UploadsDir      string
	UploadsURLBase  string
	AnthropicAPIKey string
	AnthropicModel  string
	IssueRateLimit  int
}

// Load reads configuration from the environment. MONGODB_URI and
// JWT_SECRET are required; everything else has a sensible default.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getenv("PORT", "8080"),
		MongoURI:        os.Getenv("MONGODB_URI"),
		MongoDatabase:   getenv("MONGODB_DATABASE", "civictrack"),
		RedisAddr:       os.Getenv("REDIS_ADDRESS"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		UploadsDir:      getenv("UPLOADS_DIR", "uploads"),
		UploadsURLBase:  getenv("UPLOADS_URL_BASE", "/uploads"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  getenv("ANTHROPIC_MODEL", "claude-sonnet-4-5"),
		IssueRateLimit:  10,
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI environment variable is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
