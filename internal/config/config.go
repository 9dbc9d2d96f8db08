package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Port        string
	DatabaseURL string
	Store       string // postgres | memory
	JWTSecret   string
	JWTTTL      time.Duration
	CacheSize   int
	CacheTTL    time.Duration
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	cfg := Config{
		Port:        getenv("PORT", "8080"),
		DatabaseURL: getenv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=devconnect port=5432 sslmode=disable"),
		Store:       getenv("STORE", StorePostgres),
		JWTSecret:   getenv("JWT_SECRET", ""),
		JWTTTL:      getDuration("JWT_TTL", 100*time.Hour),
		CacheSize:   getInt("CACHE_SIZE", 500),
		CacheTTL:    getDuration("CACHE_TTL", 5*time.Minute),
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "secret_key_change_me"
		log.Println("⚠️ JWT_SECRET not set, using the built-in development secret")
	}
	return cfg
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getInt(k string, def int) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
