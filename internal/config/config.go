package config

import (
	"os"
	"strconv"
	"time"

	"realm_backend/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Wager limits
	MinWager float64
	MaxWager float64

	// Rate limits
	APIRateLimit      int
	APIRateWindow     time.Duration
	AuthRateLimit     int
	AuthRateWindow    time.Duration
	EconomyRateLimit  int
	EconomyRateWindow time.Duration

	// Worker intervals
	RegenInterval     time.Duration
	BurnCheckInterval time.Duration
	ResolverInterval  time.Duration

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment (.env supported).
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		AppPort:     port,
		DatabaseURL: dbURL,
		JWTSecret:   jwtSecret,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),

		MinWager: envFloat("MIN_WAGER", 1),
		MaxWager: envFloat("MAX_WAGER", 10000),

		APIRateLimit:      envInt("API_RATE_LIMIT", 60),
		APIRateWindow:     envSeconds("API_RATE_WINDOW_SECONDS", time.Minute),
		AuthRateLimit:     envInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow:    envSeconds("AUTH_RATE_WINDOW_SECONDS", time.Minute),
		EconomyRateLimit:  envInt("ECONOMY_RATE_LIMIT", 30),
		EconomyRateWindow: envSeconds("ECONOMY_RATE_WINDOW_SECONDS", time.Minute),

		RegenInterval:     envSeconds("REGEN_INTERVAL_SECONDS", 30*time.Second),
		BurnCheckInterval: envSeconds("BURN_CHECK_INTERVAL_SECONDS", time.Hour),
		ResolverInterval:  envSeconds("RESOLVER_INTERVAL_SECONDS", 5*time.Second),

		LogLevel: envString("LOG_LEVEL", "info"),
		LogJSON:  os.Getenv("LOG_JSON") == "true",
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return def
}

func envSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return def
}
