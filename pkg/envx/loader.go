// Package envx loads environment configuration for local development.
package envx

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file when one exists.
// In cloud deployments the file is absent and variables come from the
// platform environment, so a missing file is not an error.
func LoadEnv() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load()
}

// GetEnv returns the current environment name (ENV variable).
func GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "development"
	}
	return env
}

// IsProduction returns true if running in production.
func IsProduction() bool {
	return GetEnv() == "production"
}

// IsDevelopment returns true if running in development.
func IsDevelopment() bool {
	return GetEnv() == "development"
}
