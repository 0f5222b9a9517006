// Package config provides centralized configuration management.
// It loads configuration from environment variables with sensible defaults.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	JWT       JWTConfig
	Maps      MapsConfig
	Gemini    GeminiConfig
	Twilio    TwilioConfig
	R2        R2Config
	FCM       FCMConfig
	Telemetry TelemetryConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port              string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// DatabaseConfig holds the optional PostgreSQL connection configuration.
// The server runs fully in-memory when no database is configured; the
// store is only used to archive finalized freight jobs.
type DatabaseConfig struct {
	URL             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Enabled reports whether enough connection settings are present.
func (c DatabaseConfig) Enabled() bool {
	return c.URL != "" || c.Name != ""
}

// CORSConfig holds CORS middleware configuration
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// JWTConfig holds JWT session-token configuration
type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
}

// MapsConfig holds Google Maps Platform configuration
type MapsConfig struct {
	APIKey string
	// Region biases autocomplete predictions (ccTLD, e.g. "br")
	Region string
}

// GeminiConfig holds the Gemini API configuration used for route
// optimization and the logistics assistant.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// TwilioConfig holds Twilio configuration for booking-confirmation SMS.
// Enabled is false when credentials are missing (mock mode).
type TwilioConfig struct {
	AccountSID string
	APIKey     string
	APISecret  string
	FromPhone  string
	Enabled    bool
}

// R2Config holds Cloudflare R2 storage configuration for job photos
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
}

// Enabled reports whether the storage credentials are complete.
func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" && c.BucketName != ""
}

// FCMConfig holds Firebase Cloud Messaging configuration for driver
// push notifications.
type FCMConfig struct {
	CredentialsPath string
	CredentialsJSON string
}

// Enabled reports whether FCM credentials are configured.
func (c FCMConfig) Enabled() bool {
	return c.CredentialsPath != "" || c.CredentialsJSON != ""
}

// TelemetryConfig holds the simulated telemetry tuning knobs.
// The defaults mirror the original product behavior: a three second
// refresh with speed in [40,80) km/h and ETA in [15,35) minutes.
type TelemetryConfig struct {
	Interval time.Duration
	MinSpeed int
	MaxSpeed int
	MinETA   int
	MaxETA   int
}

// Load loads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              getEnv("PORT", "8080"),
			ReadTimeout:       getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:      getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:       getDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ReadHeaderTimeout: getDurationEnv("SERVER_READ_HEADER_TIMEOUT", 5*time.Second),
			ShutdownTimeout:   getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", ""),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		CORS: CORSConfig{
			AllowedOrigins:   getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods:   getSliceEnv("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}),
			AllowedHeaders:   getSliceEnv("CORS_ALLOWED_HEADERS", []string{"Accept", "Authorization", "Content-Type"}),
			AllowCredentials: getBoolEnv("CORS_ALLOW_CREDENTIALS", false),
			MaxAge:           getIntEnv("CORS_MAX_AGE", 86400),
		},
		JWT: JWTConfig{
			SecretKey:      getEnv("JWT_SECRET", ""),
			AccessTokenTTL: getDurationEnv("JWT_ACCESS_EXPIRY", 12*time.Hour),
		},
		Maps: MapsConfig{
			APIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),
			Region: getEnv("GOOGLE_MAPS_REGION", "br"),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		},
		Twilio: loadTwilio(),
		R2: R2Config{
			AccountID:       getEnv("R2_ACCOUNT_ID", ""),
			AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnv("R2_BUCKET_NAME", ""),
			PublicURL:       getEnv("R2_PUBLIC_URL", ""),
		},
		FCM: FCMConfig{
			CredentialsPath: getEnv("FCM_CREDENTIALS_PATH", ""),
			CredentialsJSON: getEnv("FCM_CREDENTIALS_JSON", ""),
		},
		Telemetry: TelemetryConfig{
			Interval: getDurationEnv("TELEMETRY_INTERVAL", 3*time.Second),
			MinSpeed: getIntEnv("TELEMETRY_MIN_SPEED", 40),
			MaxSpeed: getIntEnv("TELEMETRY_MAX_SPEED", 80),
			MinETA:   getIntEnv("TELEMETRY_MIN_ETA", 15),
			MaxETA:   getIntEnv("TELEMETRY_MAX_ETA", 35),
		},
	}
}

func loadTwilio() TwilioConfig {
	cfg := TwilioConfig{
		AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		APIKey:     os.Getenv("TWILIO_API_KEY"),
		APISecret:  os.Getenv("TWILIO_API_SECRET"),
		FromPhone:  os.Getenv("TWILIO_FROM_PHONE_NUMBER"),
	}
	cfg.Enabled = cfg.AccountSID != "" && cfg.APIKey != "" && cfg.APISecret != "" && cfg.FromPhone != ""
	return cfg
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv gets an integer environment variable or returns a default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getBoolEnv gets a boolean environment variable or returns a default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getDurationEnv gets a duration environment variable or returns a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getSliceEnv gets a comma-separated environment variable as a slice
func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
