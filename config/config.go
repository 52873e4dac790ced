package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Environment   string
	ServerPort    string
	DBHost        string
	DBPort        int
	DBUser        string
	DBPassword    string
	DBName        string
	JWTSecret     string
	AdminEmail    string
	AdminPassword string

	// Audio asset storage
	AudioDir      string
	MaxAudioBytes int64
	FetchTimeout  time.Duration
}

func Load() (*Config, error) {
	return &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		ServerPort:    getEnv("PORT", "8080"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnvInt("DB_PORT", 5432),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", "lawpath"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AudioDir:      getEnv("AUDIO_DIR", "uploads/audio"),
		MaxAudioBytes: int64(getEnvInt("MAX_AUDIO_MB", 500)) * 1024 * 1024,
		FetchTimeout:  time.Duration(getEnvInt("FETCH_TIMEOUT_SECONDS", 60)) * time.Second,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
