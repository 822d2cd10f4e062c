package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session store backends
const (
	SessionStoreMemory   = "memory"
	SessionStoreRedis    = "redis"
	SessionStorePostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Billing backend configuration
	BillingAPIURL     string
	BillingAPIToken   string
	BillingAPITimeout time.Duration
	InvoiceViewURL    string

	// Session configuration
	SessionStore  string
	SessionTTL    time.Duration
	CookieSecure  bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DatabaseURL   string

	// HTTP configuration
	CORSAllowedOrigins []string

	// Logging configuration
	LogFormat string
	LogLevel  string
}

// LoadConfig loads the application configuration from environment variables
func LoadConfig() (*Config, error) {
	execPath, err := os.Executable()
	if err != nil {
		log.Printf("Warning: Could not determine executable path: %v", err)
	}

	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(execPath)))
	envPath := filepath.Join(projectRoot, ".env")

	if err := godotenv.Load(envPath); err != nil {
		// Try loading from current directory as fallback
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading .env file. Using environment variables.")
		} else {
			log.Println("Loaded environment variables from current directory .env file")
		}
	} else {
		log.Printf("Loaded environment variables from %s", envPath)
	}

	return FromEnv(), nil
}

// FromEnv builds the configuration from the current environment only
func FromEnv() *Config {
	config := &Config{
		Port:         getEnvInt("PORT", 8080),
		ReadTimeout:  time.Duration(getEnvInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvInt("WRITE_TIMEOUT", 60)) * time.Second,

		BillingAPIURL:     strings.TrimRight(getEnvString("BILLING_API_URL", "http://localhost:8000/api"), "/"),
		BillingAPIToken:   os.Getenv("BILLING_API_TOKEN"),
		BillingAPITimeout: time.Duration(getEnvInt("BILLING_API_TIMEOUT", 15)) * time.Second,
		InvoiceViewURL:    strings.TrimRight(getEnvString("INVOICE_VIEW_URL", "/invoices"), "/"),

		SessionStore:  strings.ToLower(getEnvString("SESSION_STORE", SessionStoreMemory)),
		SessionTTL:    time.Duration(getEnvInt("SESSION_TTL", 3600)) * time.Second,
		CookieSecure:  getEnvBool("COOKIE_SECURE", false),
		RedisAddr:     getEnvString("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		DatabaseURL:   os.Getenv("SESSION_DATABASE_URL"),

		CORSAllowedOrigins: getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),

		LogFormat: getEnvString("LOG_FORMAT", "json"),
		LogLevel:  getEnvString("LOG_LEVEL", "info"),
	}

	validateConfig(config)

	return config
}

// validateConfig checks critical configuration values and logs warnings or falls back to defaults
func validateConfig(config *Config) {
	if config.BillingAPIToken == "" {
		log.Println("Warning: No billing API token provided. Requests will be sent unauthenticated.")
	}

	switch config.SessionStore {
	case SessionStoreMemory, SessionStoreRedis:
	case SessionStorePostgres:
		if config.DatabaseURL == "" {
			log.Printf("SESSION_DATABASE_URL is not set, using %s session store", SessionStoreMemory)
			config.SessionStore = SessionStoreMemory
		}
	default:
		log.Printf("Unknown session store %q, using %s", config.SessionStore, SessionStoreMemory)
		config.SessionStore = SessionStoreMemory
	}
}

// getEnvInt gets an integer from an environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvBool gets a boolean from an environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	valueStr = strings.ToLower(valueStr)
	return valueStr == "true" || valueStr == "1" || valueStr == "yes"
}

// getEnvString gets a string from an environment variable with a default value
func getEnvString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvStringSlice gets a string slice from a comma-separated environment variable
func getEnvStringSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	return values
}
