package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSessionSecret is the placeholder used when SESSION_SECRET is unset.
const DefaultSessionSecret = "change-me"

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string

	DBDriver   string
	MySQLDSN   string
	SQLitePath string
	ResetDB    bool

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	SessionSecret    string
	CookieSecure     bool
	InitAdminEnabled bool

	// Requests per minute allowed per client IP.
	LoginRateLimit   int
	MessageRateLimit int

	SwaggerHost string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		DBDriver:         getEnv("DB_DRIVER", "mysql"),
		MySQLDSN:         getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/portfolio?charset=utf8mb4&parseTime=True&loc=UTC"),
		SQLitePath:       getEnv("SQLITE_PATH", "data/portfolio.db"),
		ResetDB:          getEnvBool("RESET_DB", false),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisPass:        os.Getenv("REDIS_PASSWORD"),
		CacheTTL:         getEnvDuration("CACHE_TTL", 5*time.Minute),
		SessionSecret:    getEnv("SESSION_SECRET", DefaultSessionSecret),
		CookieSecure:     getEnvBool("COOKIE_SECURE", true),
		InitAdminEnabled: getEnvBool("INIT_ADMIN_ENABLED", true),
		LoginRateLimit:   getEnvInt("LOGIN_RATE_LIMIT", 10),
		MessageRateLimit: getEnvInt("MESSAGE_RATE_LIMIT", 5),
		SwaggerHost:      os.Getenv("SWAGGER_HOST"),
	}
}

// Validate rejects settings that are unsafe for a production deployment.
// With secure cookies on, the session secret must be set explicitly.
func (c *Config) Validate() error {
	if c.CookieSecure && c.SessionSecret == DefaultSessionSecret {
		return errors.New("SESSION_SECRET must be set when COOKIE_SECURE is true")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
