// Package config loads client configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/kiranamart/storefront-client/pricing"
)

const defaultBaseURL = "https://grocery-app-flame-eight.vercel.app"

type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	DataFile       string
	Pricing        pricing.Policy
	LogLevel       string
}

// Load reads configuration from the environment. Missing keys fall
// back to defaults, so a bare environment still produces a working
// client.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIBaseURL:     getEnv("STOREFRONT_API_BASE_URL", defaultBaseURL),
		RequestTimeout: getDuration("STOREFRONT_REQUEST_TIMEOUT", 15*time.Second),
		DataFile:       getEnv("STOREFRONT_DATA_FILE", "storefront.db"),
		Pricing: pricing.Policy{
			FreeThreshold: getFloat("STOREFRONT_FREE_DELIVERY_THRESHOLD", pricing.DefaultPolicy.FreeThreshold),
			FlatCharge:    getFloat("STOREFRONT_DELIVERY_CHARGE", pricing.DefaultPolicy.FlatCharge),
		},
		LogLevel: getEnv("STOREFRONT_LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
