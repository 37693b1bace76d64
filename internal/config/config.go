package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment after an
// optional .env file.
type Config struct {
	HTTPPort       string
	DatabaseURL    string
	LogLevel       string
	JWTSecret      string
	JWTTTL         time.Duration
	CipherParallel bool
	AdminEmail     string
	AdminPassword  string
}

func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() Config {
	c := Config{
		HTTPPort:      getenv("HTTP_PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		LogLevel:      strings.ToLower(getenv("LOG_LEVEL", "info")),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTTTL:        24 * time.Hour,
		AdminEmail:    strings.ToLower(getenv("ADMIN_EMAIL", "admin@aeskit.local")),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
	if s := os.Getenv("JWT_EXPIRES_IN"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			c.JWTTTL = d
		}
	}
	if b, err := strconv.ParseBool(os.Getenv("CIPHER_PARALLEL")); err == nil {
		c.CipherParallel = b
	}
	return c
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}
