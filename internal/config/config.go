package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable; required ones are enforced by must() and
// abort startup when missing.
type Config struct {
	Env             string        // application environment (e.g. "dev", "prod")
	Port            string        // HTTP port to listen on
	DBUser          string        // database username
	DBPass          string        // database password (optional)
	DBHost          string        // database host address
	DBPort          string        // database port number
	DBName          string        // database name
	JWTSecret       string        // secret used to sign JWTs
	AccessTTL       time.Duration // access token lifetime (default 600s)
	RefreshTTL      time.Duration // refresh token lifetime
	BcryptCost      int           // bcrypt cost for password hashing
	CacheTTL        time.Duration // public GET response cache lifetime (0 disables)
	RateLimitPerMin int           // requests per minute per IP (0 disables)
}

// Load reads configuration from the environment. Token lifetimes and
// the ambient knobs have defaults; identity of the database and the
// signing secret do not.
func Load() Config {
	return Config{
		Env:             envStr("APP_ENV", "dev"),
		Port:            must("APP_PORT"),
		DBUser:          must("DB_USER"),
		DBPass:          os.Getenv("DB_PASS"),
		DBHost:          must("DB_HOST"),
		DBPort:          must("DB_PORT"),
		DBName:          must("DB_NAME"),
		JWTSecret:       must("JWT_SECRET"),
		AccessTTL:       time.Duration(envInt("ACCESS_TOKEN_TTL_SEC", 600)) * time.Second,
		RefreshTTL:      time.Duration(envInt("REFRESH_TOKEN_TTL_DAYS", 30)) * 24 * time.Hour,
		BcryptCost:      envInt("BCRYPT_COST", 12),
		CacheTTL:        time.Duration(envInt("CACHE_TTL_SEC", 0)) * time.Second,
		RateLimitPerMin: envInt("RATE_LIMIT_PER_MIN", 0),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
