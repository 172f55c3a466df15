package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN       string `mapstructure:"DB_DSN"`
	Environment string `mapstructure:"ENV"`
	Port        string `mapstructure:"PORT"`
	CORSOrigins string `mapstructure:"CORS_ORIGINS"`

	GroqAPIKey  string `mapstructure:"GROQ_API_KEY"`
	GroqBaseURL string `mapstructure:"GROQ_BASE_URL"`

	GoogleAPIKey        string        `mapstructure:"GOOGLE_API_KEY"`
	GeminiModel         string        `mapstructure:"GEMINI_MODEL"`
	ExtractPromptFile   string        `mapstructure:"EXTRACT_PROMPT_FILE"`
	UploadDir           string        `mapstructure:"UPLOAD_DIR"`
	ExtractPollInterval time.Duration `mapstructure:"EXTRACT_POLL_INTERVAL"`
	ExtractPollTimeout  time.Duration `mapstructure:"EXTRACT_POLL_TIMEOUT"`

	TeacherSyncWorkers int `mapstructure:"TEACHER_SYNC_WORKERS"`
	TeacherSyncQueue   int `mapstructure:"TEACHER_SYNC_QUEUE"`
}

func Load() (*Config, error) {
	// .env необязателен, переменные окружения имеют тот же эффект
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	} else {
		log.Println("Loaded configuration from .env file")
	}

	cfg := &Config{
		DBDSN:             os.Getenv("DB_DSN"),
		Environment:       getEnv("ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		CORSOrigins:       getEnv("CORS_ORIGINS", "*"),
		GroqAPIKey:        os.Getenv("GROQ_API_KEY"),
		GroqBaseURL:       getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GoogleAPIKey:      os.Getenv("GOOGLE_API_KEY"),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.5-pro"),
		ExtractPromptFile: getEnv("EXTRACT_PROMPT_FILE", "prompt.txt"),
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
	}

	var err error
	if cfg.ExtractPollInterval, err = getDuration("EXTRACT_POLL_INTERVAL", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.ExtractPollTimeout, err = getDuration("EXTRACT_POLL_TIMEOUT", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.TeacherSyncWorkers, err = getInt("TEACHER_SYNC_WORKERS", 2); err != nil {
		return nil, err
	}
	if cfg.TeacherSyncQueue, err = getInt("TEACHER_SYNC_QUEUE", 64); err != nil {
		return nil, err
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	if cfg.GroqAPIKey == "" {
		log.Println("GROQ_API_KEY is not set, /ai/query will fail")
	}
	if cfg.GoogleAPIKey == "" {
		log.Println("GOOGLE_API_KEY is not set, /extract-pdf will fail")
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return n, nil
}
