package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath     string
	OutputDir  string
	ListenAddr string

	FetchTimeoutMs   int
	FetchRateLimit   int
	MaxUploadBytes   int64
	DefaultLabelSize string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:     getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		OutputDir:  getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),

		FetchTimeoutMs:   getEnvInt("IMAGE_FETCH_TIMEOUT_MS", 10000),
		FetchRateLimit:   getEnvInt("IMAGE_FETCH_RPS", 10),
		MaxUploadBytes:   int64(getEnvInt("MAX_UPLOAD_BYTES", 10*1024*1024)),
		DefaultLabelSize: getEnv("DEFAULT_LABEL_SIZE", "2x1"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(getEnv(key, ""))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
