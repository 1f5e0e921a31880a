// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"currency-exchange/pkg/db"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort string
	DB         db.Config

	RedisAddr        string
	CurrencyCacheTTL time.Duration

	// ExchangeMaxRetries bounds how many times one exchange is retried on
	// transient store conflicts before failing.
	ExchangeMaxRetries int
}

// LoadConfig loads configuration from environment variables.
// It returns an AppConfig instance or an error if any variable is invalid.
func LoadConfig() (*AppConfig, error) {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080" // Default port
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}
	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		dbPortStr = "5432"
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		dbUser = "user"
	}
	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		dbPassword = "password"
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "exchangedb"
	}
	dbSSLMode := os.Getenv("DB_SSLMODE")
	if dbSSLMode == "" {
		dbSSLMode = "disable"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	cacheTTL := 5 * time.Minute
	if raw := os.Getenv("CURRENCY_CACHE_TTL"); raw != "" {
		cacheTTL, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid CURRENCY_CACHE_TTL: %w", err)
		}
	}

	maxRetries := 3
	if raw := os.Getenv("EXCHANGE_MAX_RETRIES"); raw != "" {
		maxRetries, err = strconv.Atoi(raw)
		if err != nil || maxRetries < 1 {
			return nil, fmt.Errorf("invalid EXCHANGE_MAX_RETRIES: %q", raw)
		}
	}

	return &AppConfig{
		ServerPort: serverPort,
		DB: db.Config{
			Host:     dbHost,
			Port:     dbPort,
			User:     dbUser,
			Password: dbPassword,
			DBName:   dbName,
			SSLMode:  dbSSLMode,
		},
		RedisAddr:          redisAddr,
		CurrencyCacheTTL:   cacheTTL,
		ExchangeMaxRetries: maxRetries,
	}, nil
}
