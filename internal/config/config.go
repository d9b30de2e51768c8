// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Admin       AdminConfig
	Assistant   AssistantConfig
	Flow        FlowConfig
	Upload      UploadConfig
	Frontend    FrontendConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type AdminConfig struct {
	Secret     string
	SecretHash string // bcrypt hash; takes precedence over Secret when set
	JWTSecret  string
	SessionTTL int // in hours
}

type AssistantConfig struct {
	APIKey      string
	Model       string
	Temperature float64
}

// FlowConfig holds the simulated checkout and download delays.
type FlowConfig struct {
	RedirectDelay time.Duration
	SuccessDelay  time.Duration
	DownloadDelay time.Duration
}

type UploadConfig struct {
	MaxSize int64 // in bytes
}

type FrontendConfig struct {
	AllowOrigins []string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Admin: AdminConfig{
			Secret:     getEnv("ADMIN_SECRET", "admin123"),
			SecretHash: getEnv("ADMIN_SECRET_HASH", ""),
			JWTSecret:  getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			SessionTTL: getEnvAsInt("ADMIN_SESSION_TTL", 720), // 30 days, no logout surface
		},
		Assistant: AssistantConfig{
			APIKey:      getEnv("GEMINI_API_KEY", ""),
			Model:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Temperature: getEnvAsFloat("GEMINI_TEMPERATURE", 0.7),
		},
		Flow: FlowConfig{
			RedirectDelay: getEnvAsDuration("FLOW_REDIRECT_DELAY_MS", 1500),
			SuccessDelay:  getEnvAsDuration("FLOW_SUCCESS_DELAY_MS", 2000),
			DownloadDelay: getEnvAsDuration("FLOW_DOWNLOAD_DELAY_MS", 1500),
		},
		Upload: UploadConfig{
			MaxSize: int64(getEnvAsInt("UPLOAD_MAX_SIZE", 25<<20)),
		},
		Frontend: FrontendConfig{
			AllowOrigins: strings.Split(getEnv("CORS_ALLOW_ORIGINS", "*"), ","),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.Admin.JWTSecret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT secret key must be changed in production")
		}
		if c.Admin.SecretHash == "" && c.Admin.Secret == "admin123" {
			return fmt.Errorf("admin secret must be changed in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultMillis int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultMillis)) * time.Millisecond
}
