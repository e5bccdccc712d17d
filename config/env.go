package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func LoadEnv() {
	_ = godotenv.Load()
	// If .env is missing, ignore error (env vars can be set by other means)
	log.Println("Environment variables loaded (if .env present)")
}

// GetEnv returns the env var value or the fallback when unset.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
