package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Auth      AuthConfig
	AVM       AVMConfig
	SkipTrace SkipTraceConfig
	Scheduler SchedulerConfig
	Log       LogConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// AuthConfig holds token signing configuration
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// AVMConfig holds the automated valuation provider configuration
type AVMConfig struct {
	BaseURL string
	APIKey  string
}

// SkipTraceConfig holds the owner lookup provider configuration.
// EncryptionKeys are fernet keys, newest first; older keys stay in the
// list so previously stored payloads remain readable after rotation.
type SkipTraceConfig struct {
	BaseURL        string
	APIKey         string
	EncryptionKeys []string
}

// SchedulerConfig holds background job configuration
type SchedulerConfig struct {
	RefreshEnabled  bool
	RefreshSchedule string
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level    string
	Encoding string
}

// devEncryptionKey is a valid fernet key used when ENCRYPTION_KEYS is unset.
// It only exists so the server boots in local development; production
// deployments must set their own keys.
const devEncryptionKey = "MDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDA="

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	refreshEnabled, err := strconv.ParseBool(getEnv("VALUATION_REFRESH_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid VALUATION_REFRESH_ENABLED: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/rental_portfolio.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost")),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-me"),
			TokenTTL:  tokenTTL,
		},
		AVM: AVMConfig{
			BaseURL: getEnv("AVM_BASE_URL", "https://api.avm.example.com"),
			APIKey:  getEnv("AVM_API_KEY", ""),
		},
		SkipTrace: SkipTraceConfig{
			BaseURL:        getEnv("SKIPTRACE_BASE_URL", "https://api.skiptrace.example.com"),
			APIKey:         getEnv("SKIPTRACE_API_KEY", ""),
			EncryptionKeys: splitList(getEnv("ENCRYPTION_KEYS", devEncryptionKey)),
		},
		Scheduler: SchedulerConfig{
			RefreshEnabled: refreshEnabled,
			// Six-field cron spec (with seconds): daily at 03:00.
			RefreshSchedule: getEnv("VALUATION_REFRESH_SCHEDULE", "0 0 3 * * *"),
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Encoding: getEnv("LOG_ENCODING", "console"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// splitList splits a comma-separated value, trimming whitespace and
// dropping empty entries.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
