package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	// AllowNegativeStockSale keeps the legacy behavior: a sale whose deficit
	// cannot be auto-produced still writes its OUT row and drives derived
	// stock negative. Set false to reject such sales instead.
	AllowNegativeStockSale bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
		)
	}

	return &Config{
		Port:                   getEnv("PORT", "3000"),
		DatabaseURL:            dsn,
		JWTSecret:              getEnv("JWT_SECRET", ""),
		AllowNegativeStockSale: getEnvBool("ALLOW_NEGATIVE_STOCK_SALE", true),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Warning: invalid bool for %s: %q, using default", key, v)
		return fallback
	}
	return parsed
}
