package utils

import (
	"os"
	"strconv"
	"time"
)

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration
}

func LoadAuthConfig() AuthConfig {
	secret := os.Getenv("ANIMECAL_JWT_SECRET")
	if secret == "" {
		// dev default (change for demo / production)
		secret = "dev-secret-change-me"
	}

	issuer := os.Getenv("ANIMECAL_JWT_ISSUER")
	if issuer == "" {
		issuer = "animecal"
	}

	duration := 24 * time.Hour
	if ttl := os.Getenv("ANIMECAL_JWT_TTL_HOURS"); ttl != "" {
		if hours, err := strconv.Atoi(ttl); err == nil && hours > 0 {
			duration = time.Duration(hours) * time.Hour
		}
	}

	return AuthConfig{
		JWTSecret:   secret,
		JWTIssuer:   issuer,
		JWTDuration: duration,
	}
}

type ServerConfig struct {
	HTTPAddr       string
	SyncAddr       string
	CatalogBaseURL string // empty means the public Jikan API
}

func LoadServerConfig() ServerConfig {
	cfg := ServerConfig{
		HTTPAddr: ":8080",
		SyncAddr: ":7070",
	}
	if v := os.Getenv("ANIMECAL_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("ANIMECAL_SYNC_ADDR"); v != "" {
		cfg.SyncAddr = v
	}
	cfg.CatalogBaseURL = os.Getenv("ANIMECAL_CATALOG_URL")
	return cfg
}
