package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	PORT        string
	DB_URL      string
	JWT_SECRET  string
	CORS_ORIGIN string
	LOG_LEVEL   string

	DB_MAX_OPEN_CONNS int
	DB_MAX_IDLE_CONNS int

	// Plan sync is disabled when STRIPE_SECRET_KEY is empty.
	STRIPE_SECRET_KEY string
	STRIPE_PRODUCT_ID string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "*")
	LOG_LEVEL = getEnv("LOG_LEVEL", "info")

	DB_MAX_OPEN_CONNS = getEnvInt("DB_MAX_OPEN_CONNS", 25)
	DB_MAX_IDLE_CONNS = getEnvInt("DB_MAX_IDLE_CONNS", 10)

	STRIPE_SECRET_KEY = getEnv("STRIPE_SECRET_KEY", "")
	STRIPE_PRODUCT_ID = getEnv("STRIPE_PRODUCT_ID", "")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("Invalid value for %s (%q), using %d", key, value, fallback)
		return fallback
	}
	return n
}
