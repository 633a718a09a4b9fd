package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Environment        string `mapstructure:"ENV"`
	LogLevel           string `mapstructure:"LOG_LEVEL"`
	Storage            string `mapstructure:"STORAGE"`
	DBDSN              string `mapstructure:"DB_DSN"`
	MigrationsPath     string `mapstructure:"MIGRATIONS_PATH"`
	HTTPAddr           string `mapstructure:"HTTP_ADDR"`
	TelegramToken      string `mapstructure:"TELEGRAM_TOKEN"`
	Timezone           string `mapstructure:"TIMEZONE"`
	PhoneRegion        string `mapstructure:"PHONE_REGION"`
	BookingHorizonDays int    `mapstructure:"BOOKING_HORIZON_DAYS"`

	// Location - разобранный Timezone
	Location *time.Location `mapstructure:"-"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		Environment:    getEnv("ENV", "development"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		Storage:        getEnv("STORAGE", StoragePostgres),
		DBDSN:          os.Getenv("DB_DSN"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		Timezone:       getEnv("TIMEZONE", "Local"),
		PhoneRegion:    getEnv("PHONE_REGION", "RU"),
	}

	horizon, err := strconv.Atoi(getEnv("BOOKING_HORIZON_DAYS", "30"))
	if err != nil || horizon <= 0 {
		return nil, fmt.Errorf("BOOKING_HORIZON_DAYS must be a positive integer")
	}
	cfg.BookingHorizonDays = horizon

	cfg.Location, err = time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	// Проверяем обязательные поля
	switch cfg.Storage {
	case StoragePostgres:
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("DB_DSN is required but not set")
		}
	case StorageMemory:
	default:
		return nil, fmt.Errorf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, cfg.Storage)
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}

// NotificationsEnabled - уведомления в Telegram включены, если задан токен
func (c *Config) NotificationsEnabled() bool {
	return c.TelegramToken != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
