package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"mdip/internal/assistant"
	"mdip/internal/dashboard"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// DatabaseConfig selects the store backend. An empty URL runs on the in-memory demo store.
type DatabaseConfig struct {
	URL      string
	MaxConns int
}

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Database            DatabaseConfig
	OpenAI              assistant.OpenAIConfig
	Dashboard           dashboard.Settings
	ContextRows         int
	BcryptCost          int
	EnableMermaidCharts bool
	DataPath            string
	LogDir              string
}

// Demo reports whether no database is configured.
func (c *AppConfig) Demo() bool {
	return c.Database.URL == ""
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve Data Paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := getEnv("LOGS_FOLDER", filepath.Join(dataPath, "logs"))

	cfg := &AppConfig{
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			MaxConns: getEnvInt("DB_MAX_CONNS", 4),
		},
		OpenAI: assistant.OpenAIConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			Temperature: getEnvFloat("OPENAI_TEMPERATURE", 0.7),
			MaxTokens:   getEnvInt("OPENAI_MAX_TOKENS", 1000),
			Timeout:     time.Duration(getEnvInt("OPENAI_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		Dashboard: dashboard.Settings{
			SurgeWindowDays:       getEnvInt("SURGE_WINDOW_DAYS", dashboard.DefaultSettings.SurgeWindowDays),
			StaleDaysThreshold:    getEnvInt("STALE_DAYS_THRESHOLD", dashboard.DefaultSettings.StaleDaysThreshold),
			RareAccessThreshold:   getEnvInt("RARE_ACCESS_THRESHOLD", dashboard.DefaultSettings.RareAccessThreshold),
			ArchiveCandidateLimit: getEnvInt("ARCHIVE_CANDIDATE_LIMIT", dashboard.DefaultSettings.ArchiveCandidateLimit),
		},
		ContextRows:         getEnvInt("ASSISTANT_CONTEXT_ROWS", 50),
		BcryptCost:          getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", false),
		DataPath:            dataPath,
		LogDir:              logDir,
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-integer setting")
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring non-numeric setting")
	}
	return fallback
}
