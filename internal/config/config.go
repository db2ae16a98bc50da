package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Secrets (from .env)
	GoldAPIKey      string
	WebhookURL      string
	SenderName      string
	CORSAllowOrigin string

	// Database
	DBHost           string
	DBPort           int
	DBName           string
	DBUser           string
	DBPassword       string
	DBMaxConns       int
	DBMinConns       int
	DBConnectTimeout int // seconds

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Pricing
	USDINRRate float64

	// Collection
	GoldFetchIntervalMinutes   int
	MarketFetchIntervalMinutes int

	// API
	APIPort int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		// Secrets
		GoldAPIKey:      envStr("GOLD_API_KEY", ""),
		WebhookURL:      envStr("WEBHOOK_URL", ""),
		SenderName:      envStr("SENDER_NAME", "GoldTracker"),
		CORSAllowOrigin: envStr("CORS_ALLOW_ORIGIN", "*"),

		// Database
		DBHost:           envStr("DB_HOST", "localhost"),
		DBPort:           envInt("DB_PORT", 5432),
		DBName:           envStr("DB_NAME", "gold_tracker"),
		DBUser:           envStr("DB_USER", ""),
		DBPassword:       envStr("DB_PASSWORD", ""),
		DBMaxConns:       envInt("DB_MAX_CONNS", 10),
		DBMinConns:       envInt("DB_MIN_CONNS", 2),
		DBConnectTimeout: envInt("DB_CONNECT_TIMEOUT_SECONDS", 5),

		// Redis
		RedisAddr:     envStr("REDIS_ADDR", ""),
		RedisPassword: envStr("REDIS_PASSWORD", ""),
		RedisDB:       envInt("REDIS_DB", 0),

		// Pricing
		USDINRRate: envFloat("USD_INR_RATE", 83),

		// Collection
		GoldFetchIntervalMinutes:   envInt("GOLD_FETCH_INTERVAL_MINUTES", 30),
		MarketFetchIntervalMinutes: envInt("MARKET_FETCH_INTERVAL_MINUTES", 15),

		// API
		APIPort: envInt("API_PORT", 8080),
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []string

	if c.DBUser == "" {
		errs = append(errs, "DB_USER is required")
	}
	if c.GoldAPIKey == "" {
		fmt.Println("[WARN] GOLD_API_KEY not set, gold price collection will fail until one is provided")
	}
	if c.WebhookURL == "" {
		fmt.Println("[WARN] WEBHOOK_URL not set, alert notifications go to console only")
	}
	if c.RedisAddr == "" {
		fmt.Println("[WARN] REDIS_ADDR not set, latest-price cache disabled: all reads hit Postgres")
	}
	if c.USDINRRate <= 0 {
		errs = append(errs, "USD_INR_RATE must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func (c *Config) Print() {
	fmt.Println("=== Gold Price Tracker Configuration ===")
	fmt.Printf("Database: %s@%s:%d/%s\n", c.DBUser, c.DBHost, c.DBPort, c.DBName)
	fmt.Printf("Redis: %s\n", boolLabel(c.RedisAddr != "", c.RedisAddr, "disabled"))
	fmt.Println("--------------------------------------")
	fmt.Println("Collection:")
	fmt.Printf("  Gold fetch: every %d minutes\n", c.GoldFetchIntervalMinutes)
	fmt.Printf("  Market fetch: every %d minutes\n", c.MarketFetchIntervalMinutes)
	fmt.Printf("  Gold API: %s\n", boolLabel(c.GoldAPIKey != "", "configured", "not set"))
	fmt.Println("--------------------------------------")
	fmt.Println("Pricing:")
	fmt.Printf("  USD/INR rate: %.2f\n", c.USDINRRate)
	fmt.Println("--------------------------------------")
	fmt.Printf("API port: %d\n", c.APIPort)
	fmt.Printf("CORS origin: %s\n", c.CORSAllowOrigin)
	fmt.Printf("Notifications: %s\n", boolLabel(c.WebhookURL != "", "webhook + console", "console only"))
	fmt.Println("======================================")
}

func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// --- helpers ---

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func boolLabel(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
