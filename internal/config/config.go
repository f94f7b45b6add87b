// Package config reads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port     string
	DBPath   string
	SeedPath string

	DirectionsAPIKey string

	// Route cache backend: "sqlite" (default), "postgres", "redis" or "none".
	RouteCache  string
	DatabaseURL string
	RedisAddr   string
	RedisTTL    time.Duration

	LogLevel   string
	LogConsole bool
}

func FromEnv() Config {
	return Config{
		Port:     Get("PORT", "8080"),
		DBPath:   Get("DB_PATH", "data/app.db"),
		SeedPath: Get("SEED_PATH", "data/seeds/locations.json"),

		DirectionsAPIKey: os.Getenv("DIRECTIONS_API_KEY"),

		RouteCache:  strings.ToLower(Get("ROUTE_CACHE", "sqlite")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   Get("REDIS_ADDR", "localhost:6379"),
		RedisTTL:    GetDuration("REDIS_TTL", 24*time.Hour),

		LogLevel:   Get("LOG_LEVEL", "info"),
		LogConsole: GetBool("LOG_CONSOLE", false),
	}
}

func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
