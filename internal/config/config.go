package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN                 string `validate:"required"`
	Environment           string `validate:"required,oneof=development production"`
	HTTPAddr              string `validate:"required"`
	MigrationsPath        string `validate:"required"`
	ExpireIntervalMinutes int    `validate:"min=1"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		DBDSN:          os.Getenv("DB_DSN"),
		Environment:    getEnv("ENV", "development"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
	}

	interval, err := strconv.Atoi(getEnv("EXPIRE_INTERVAL_MINUTES", "5"))
	if err != nil {
		return nil, fmt.Errorf("EXPIRE_INTERVAL_MINUTES must be an integer: %w", err)
	}
	cfg.ExpireIntervalMinutes = interval

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// getEnv читает переменную окружения с дефолтным значением
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
