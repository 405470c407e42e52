package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// ErrMissingCredentials indicates the remote store credentials are absent.
// Read paths degrade to empty results on this error; write paths fail.
var ErrMissingCredentials = errors.New("config: AIRTABLE_API_KEY or AIRTABLE_BASE_ID not set")

// Config holds all environment-driven settings for the portal.
type Config struct {
	AirtableAPIKey string
	AirtableBaseID string
	JWTSecret      string
	ServerPort     string
	AllowedOrigins string
	PortalBaseURL  string // public base URL used to build magic links
	MagicLinkTTL   time.Duration
}

// Load reads the configuration from the environment. Callers are expected
// to have run godotenv.Load() beforehand.
func Load() *Config {
	cfg := &Config{
		AirtableAPIKey: os.Getenv("AIRTABLE_API_KEY"),
		AirtableBaseID: os.Getenv("AIRTABLE_BASE_ID"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		ServerPort:     os.Getenv("SERVER_PORT"),
		AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		PortalBaseURL:  os.Getenv("PORTAL_BASE_URL"),
		MagicLinkTTL:   15 * time.Minute,
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.PortalBaseURL == "" {
		cfg.PortalBaseURL = "http://localhost:" + cfg.ServerPort
	}
	if v := os.Getenv("MAGIC_LINK_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MagicLinkTTL = time.Duration(n) * time.Minute
		}
	}
	return cfg
}

// ValidateRemoteStore reports whether the Airtable credentials are present.
func (c *Config) ValidateRemoteStore() error {
	if c.AirtableAPIKey == "" || c.AirtableBaseID == "" {
		return ErrMissingCredentials
	}
	return nil
}
