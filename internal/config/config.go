package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode     string
	Port        string
	MetricsPort string
	Database    DatabaseConfig
	JWT         JWTConfig
	Cookie      CookieConfig
	Redis       RedisConfig
	AMQP        AMQPConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds the signing secrets for both token families. The admin and
// customer families use separate secret material and separate lifetimes.
type JWTConfig struct {
	AdminSecret       string
	CustomerSecret    string
	AdminTokenHours   int
	CustomerTokenDays int
}

// CookieConfig holds admin session cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// RedisConfig holds the optional configuration cache settings. Enabled only
// when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// AMQPConfig holds the notification broker settings
type AMQPConfig struct {
	URL      string
	Exchange string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:     appMode,
		Port:        getEnv("PORT", "3000"),
		MetricsPort: getEnv("METRICS_PORT", "9091"),
		Database:    loadDatabaseConfig(appMode),
		JWT:         loadJWTConfig(appMode),
		Cookie:      loadCookieConfig(appMode),
		Redis:       loadRedisConfig(),
		AMQP:        loadAMQPConfig(),
	}

	log.Printf("✅ Configuration loaded [MODE: %s]", appMode)
	return config, nil
}

func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "bdmart"),
	}
}

func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	adminHours, _ := strconv.Atoi(getEnv("ADMIN_TOKEN_HOURS", "24"))
	customerDays, _ := strconv.Atoi(getEnv("CUSTOMER_TOKEN_DAYS", "7"))

	return JWTConfig{
		AdminSecret:       getEnv(prefix+"JWT_ADMIN_SECRET", "default_admin_secret"),
		CustomerSecret:    getEnv(prefix+"JWT_CUSTOMER_SECRET", "default_customer_secret"),
		AdminTokenHours:   adminHours,
		CustomerTokenDays: customerDays,
	}
}

func loadCookieConfig(mode string) CookieConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "Lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

func loadRedisConfig() RedisConfig {
	db, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	ttlSecs, _ := strconv.Atoi(getEnv("REDIS_TTL_SECONDS", "300"))

	return RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
		TTL:      time.Duration(ttlSecs) * time.Second,
	}
}

func loadAMQPConfig() AMQPConfig {
	return AMQPConfig{
		URL:      getEnv("AMQP_URL", ""),
		Exchange: getEnv("AMQP_EXCHANGE", "bdmart.notifications"),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://bdmart.com.bd"
	}
	return origins
}
