package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var loaded bool

// Config reads a key from the environment, loading .env once if present.
func Config(key string) string {
	if !loaded {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("no .env file found, relying on process environment")
		}
		loaded = true
	}
	return os.Getenv(key)
}

// ConfigDefault reads a key and falls back when unset.
func ConfigDefault(key, fallback string) string {
	if v := Config(key); v != "" {
		return v
	}
	return fallback
}
