package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	DatabaseURL string

	IdentitySecret string
	IdentityExpiry time.Duration

	Redis RedisConfig

	// PruneAfter is how long past its date a match is kept before cmd/prune-matches removes it.
	PruneAfter time.Duration

	CORSOrigins []string
}

type RedisConfig struct {
	URL      string
	StatsTTL time.Duration
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" && r.StatsTTL > 0
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	identityExpiry, err := time.ParseDuration(getEnv("IDENTITY_EXPIRY", "720h"))
	if err != nil {
		identityExpiry = 720 * time.Hour
	}

	statsTTL, err := time.ParseDuration(getEnv("STATS_CACHE_TTL", "30s"))
	if err != nil {
		statsTTL = 30 * time.Second
	}

	pruneAfter, err := time.ParseDuration(getEnv("PRUNE_AFTER", "720h"))
	if err != nil {
		pruneAfter = 720 * time.Hour
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		IdentitySecret: getEnvOrPanic("IDENTITY_SECRET"),
		IdentityExpiry: identityExpiry,

		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			StatsTTL: statsTTL,
		},

		PruneAfter: pruneAfter,

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvOrPanic(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		panic("required environment variable not set: " + key)
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
