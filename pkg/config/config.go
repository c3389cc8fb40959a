package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	OpenRouter OpenRouterConfig
	Embedding  EmbeddingConfig
	Redis      RedisConfig
	Chunking   ChunkingConfig
	Retrieval  RetrievalConfig
	Session    SessionConfig
	Cache      CacheConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	ShutdownTimeout int
}

// OpenRouterConfig holds the generation provider configuration
type OpenRouterConfig struct {
	APIKey          string
	BaseURL         string
	ChatModel       string
	TranscribeModel string
	QARetryCooldown time.Duration
	IngestRetryBase time.Duration
}

// EmbeddingConfig holds the embedding provider configuration
type EmbeddingConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	BatchSize int
}

// RedisConfig holds Redis cache tier configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// ChunkingConfig holds transcript chunking parameters
type ChunkingConfig struct {
	Size    int
	Overlap int
}

// RetrievalConfig holds retrieval parameters
type RetrievalConfig struct {
	TopK int
}

// SessionConfig holds session lifecycle parameters
type SessionConfig struct {
	TTL        time.Duration
	HistoryCap int
}

// CacheConfig holds cache TTL configuration
type CacheConfig struct {
	TTL time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		OpenRouter: OpenRouterConfig{
			APIKey:          getEnv("OPENROUTER_API_KEY", ""),
			BaseURL:         getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			ChatModel:       getEnv("CHAT_MODEL", "stepfun/step-3.5-flash:free"),
			TranscribeModel: getEnv("TRANSCRIBE_MODEL", "google/gemma-3n-e4b-it:free"),
			QARetryCooldown: getEnvAsDuration("QA_RETRY_COOLDOWN", "60s"),
			IngestRetryBase: getEnvAsDuration("INGEST_RETRY_BASE", "70s"),
		},
		Embedding: EmbeddingConfig{
			APIKey:    getEnv("EMBEDDING_API_KEY", ""),
			BaseURL:   getEnv("EMBEDDING_BASE_URL", "https://api.openai.com/v1"),
			Model:     getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
			BatchSize: getEnvAsInt("EMBEDDING_BATCH_SIZE", 32),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("USE_REDIS", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Chunking: ChunkingConfig{
			Size:    getEnvAsInt("CHUNK_SIZE", 400),
			Overlap: getEnvAsInt("CHUNK_OVERLAP", 50),
		},
		Retrieval: RetrievalConfig{
			TopK: getEnvAsInt("TOP_K_CHUNKS", 4),
		},
		Session: SessionConfig{
			TTL:        getEnvAsDuration("SESSION_TTL", "6h"),
			HistoryCap: getEnvAsInt("SESSION_HISTORY_CAP", 20),
		},
		Cache: CacheConfig{
			TTL: getEnvAsDuration("CACHE_TTL", "24h"),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration. Failures here are fatal at startup.
func (c *Config) Validate() error {
	if c.OpenRouter.APIKey == "" {
		return fmt.Errorf("OPENROUTER_API_KEY is required")
	}
	if c.Embedding.APIKey == "" {
		return fmt.Errorf("EMBEDDING_API_KEY is required")
	}
	if c.Chunking.Size <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be positive")
	}
	if c.Chunking.Overlap < 0 || c.Chunking.Overlap >= c.Chunking.Size {
		return fmt.Errorf("CHUNK_OVERLAP must be in [0, CHUNK_SIZE)")
	}
	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("TOP_K_CHUNKS must be positive")
	}
	return nil
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
