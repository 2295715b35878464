package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/joy095/consult/logger"
)

var loadOnce sync.Once

// LoadEnv loads variables from a .env file if one is present. Values already
// set in the environment win. Safe to call from multiple init paths.
func LoadEnv() {
	loadOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			if os.IsNotExist(err) {
				logger.InfoLogger.Info("No .env file found, using environment variables")
				return
			}
			logger.WarnLogger.Warnf("Could not load .env file: %v", err)
		}
	})
}

// IsProduction reports whether the service runs with APP_ENV=production.
// Error responses hide internal detail in production.
func IsProduction() bool {
	return os.Getenv("APP_ENV") == "production"
}
