package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Agent   AgentConfig
	Catalog CatalogConfig
	OpenAI  OpenAIConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// AgentConfig holds the decision-core tunables
type AgentConfig struct {
	DefaultLocale   string
	DefaultCurrency string
	PoolLimit       int     // candidate pool size requested from the catalog
	ResultCount     int     // items returned in a recommendations reply
	CategoryCap     int     // max accepted items sharing a primary category
	DialogPolicy    string  // "strict" or "soft"
	MinConfidence   float64 // soft-policy clarification threshold
}

// CatalogConfig selects and configures the catalog provider
type CatalogConfig struct {
	Provider           string // "memory" or "postgres"
	DSN                string
	MaxConnections     int
	MaxIdleConnections int
}

// OpenAIConfig holds the semantic-extractor API configuration
type OpenAIConfig struct {
	APIKey              string
	APIBase             string
	ChatModel           string
	ChatTemperature     float64
	ChatMaxTokens       int
	EmbeddingModel      string
	EmbeddingDimensions int
	BatchSize           int
	Timeout             int // seconds per extractor call
	Enabled             bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Agent: AgentConfig{
			DefaultLocale:   getEnv("AGENT_DEFAULT_LOCALE", "ru-RU"),
			DefaultCurrency: getEnv("AGENT_DEFAULT_CURRENCY", "EUR"),
			PoolLimit:       getEnvAsInt("AGENT_POOL_LIMIT", 40),
			ResultCount:     getEnvAsInt("AGENT_RESULT_COUNT", 8),
			CategoryCap:     getEnvAsInt("AGENT_CATEGORY_CAP", 3),
			DialogPolicy:    getEnv("AGENT_DIALOG_POLICY", "strict"),
			MinConfidence:   getEnvAsFloat("AGENT_MIN_CONFIDENCE", 0.45),
		},
		Catalog: CatalogConfig{
			Provider:           getEnv("CATALOG_PROVIDER", "memory"),
			DSN:                getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
		},
		OpenAI: OpenAIConfig{
			APIKey:              getEnv("OPENAI_API_KEY", ""),
			APIBase:             getEnv("OPENAI_API_BASE", "https://api.openai.com/v1"),
			ChatModel:           getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			ChatTemperature:     getEnvAsFloat("OPENAI_CHAT_TEMPERATURE", 0.2),
			ChatMaxTokens:       getEnvAsInt("OPENAI_CHAT_MAX_TOKENS", 1024),
			EmbeddingModel:      getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
			EmbeddingDimensions: getEnvAsInt("OPENAI_EMBEDDING_DIMENSIONS", 1536),
			BatchSize:           getEnvAsInt("OPENAI_BATCH_SIZE", 100),
			Timeout:             getEnvAsInt("OPENAI_TIMEOUT", 10),
			Enabled:             getEnv("OPENAI_API_KEY", "") != "",
		},
	}

	return cfg, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}
