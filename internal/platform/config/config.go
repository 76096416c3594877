// Package config builds the server configuration from environment variables
// so main stays lean.
package config

import (
	"os"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr        string
	CatalogPath string
	DatabaseURL string
	RedisURL    string
	CacheTTL    time.Duration
	LogLevel    string
}

// FromEnv reads configuration from the environment. Empty CatalogPath loads
// the embedded default knowledge base; empty DatabaseURL selects the
// in-memory scan store; empty RedisURL disables the result cache.
func FromEnv() Server {
	addr := os.Getenv("REGSCOPE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	cacheTTL := 5 * time.Minute
	if raw := os.Getenv("REGSCOPE_CACHE_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			cacheTTL = d
		}
	}

	return Server{
		Addr:        addr,
		CatalogPath: os.Getenv("REGSCOPE_CATALOG_PATH"),
		DatabaseURL: os.Getenv("REGSCOPE_DATABASE_URL"),
		RedisURL:    os.Getenv("REGSCOPE_REDIS_URL"),
		CacheTTL:    cacheTTL,
		LogLevel:    os.Getenv("REGSCOPE_LOG_LEVEL"),
	}
}
