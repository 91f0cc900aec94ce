package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN          string `mapstructure:"DB_DSN"`
	Environment    string `mapstructure:"ENV"`
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`

	// Объединять пересекающиеся слоты при подборе времени встреч
	MergeOverlappingSlots bool `mapstructure:"MERGE_OVERLAPPING_SLOTS"`

	// Периодичность фоновой проверки встреч на двойные бронирования
	AuditIntervalHours int `mapstructure:"AUDIT_INTERVAL_HOURS"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	// Читаем напрямую из переменных окружения (после godotenv.Load они там)
	cfg := &Config{
		DBDSN:                 os.Getenv("DB_DSN"),
		Environment:           os.Getenv("ENV"),
		MigrationsPath:        os.Getenv("MIGRATIONS_PATH"),
		MergeOverlappingSlots: os.Getenv("MERGE_OVERLAPPING_SLOTS") == "true",
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}
	cfg.AuditIntervalHours = 24
	if raw := os.Getenv("AUDIT_INTERVAL_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			return nil, fmt.Errorf("AUDIT_INTERVAL_HOURS must be a positive integer, got %q", raw)
		}
		cfg.AuditIntervalHours = hours
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}
