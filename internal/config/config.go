package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации узла
type Config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Central Server Config
	ServerBaseURL string        `env:"PULSE_SERVER_URL"`
	ServerAPIKey  string        `env:"PULSE_SERVER_API_KEY"`
	ServerTimeout time.Duration `env:"PULSE_SERVER_TIMEOUT" envDefault:"10s"`

	// Sync Config
	SyncInterval    time.Duration `env:"SYNC_INTERVAL" envDefault:"30s"`
	SyncMaxAttempts int           `env:"SYNC_MAX_ATTEMPTS" envDefault:"5"`
	ViewLimit       int           `env:"VIEW_LIMIT" envDefault:"100"`

	// Prediction Config
	PredictionInterval time.Duration `env:"PREDICTION_INTERVAL" envDefault:"5m"`
	PredictionTTL      time.Duration `env:"PREDICTION_TTL" envDefault:"2h"`

	// Alerts Config
	MaxActiveAlerts int           `env:"MAX_ACTIVE_ALERTS" envDefault:"5"`
	DismissalTTL    time.Duration `env:"ALERT_DISMISSAL_TTL" envDefault:"12h"`

	// OpenAI Config (опционально: без ключа работают детерминированные шаблоны)
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	// Weather Config
	WeatherAPIKey   string        `env:"OPENWEATHER_API_KEY"`
	WeatherLat      float64       `env:"WEATHER_LAT" envDefault:"22.3072"`
	WeatherLon      float64       `env:"WEATHER_LON" envDefault:"73.1812"`
	WeatherCacheTTL time.Duration `env:"WEATHER_CACHE_TTL" envDefault:"10m"`

	// Stats Config
	StatsTimeWindowMinutes int `env:"STATS_TIME_WINDOW_MINUTES" envDefault:"60"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		RedisAddr:              getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:              os.Getenv("REDIS_PASSWORD"),
		RedisDB:                getEnvAsInt("REDIS_DB", 0),
		ServerBaseURL:          os.Getenv("PULSE_SERVER_URL"),
		ServerAPIKey:           os.Getenv("PULSE_SERVER_API_KEY"),
		ServerTimeout:          getEnvAsDuration("PULSE_SERVER_TIMEOUT", 10*time.Second),
		SyncInterval:           getEnvAsDuration("SYNC_INTERVAL", 30*time.Second),
		SyncMaxAttempts:        getEnvAsInt("SYNC_MAX_ATTEMPTS", 5),
		ViewLimit:              getEnvAsInt("VIEW_LIMIT", 100),
		PredictionInterval:     getEnvAsDuration("PREDICTION_INTERVAL", 5*time.Minute),
		PredictionTTL:          getEnvAsDuration("PREDICTION_TTL", 2*time.Hour),
		MaxActiveAlerts:        getEnvAsInt("MAX_ACTIVE_ALERTS", 5),
		DismissalTTL:           getEnvAsDuration("ALERT_DISMISSAL_TTL", 12*time.Hour),
		OpenAIAPIKey:           os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:            getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		WeatherAPIKey:          os.Getenv("OPENWEATHER_API_KEY"),
		WeatherLat:             getEnvAsFloat("WEATHER_LAT", 22.3072),
		WeatherLon:             getEnvAsFloat("WEATHER_LON", 73.1812),
		WeatherCacheTTL:        getEnvAsDuration("WEATHER_CACHE_TTL", 10*time.Minute),
		StatsTimeWindowMinutes: getEnvAsInt("STATS_TIME_WINDOW_MINUTES", 60),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if cfg.ServerBaseURL == "" {
		return nil, fmt.Errorf("PULSE_SERVER_URL environment variable is required")
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
