package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log"`

	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Corpus configuration
	Corpus CorpusConfig `mapstructure:"corpus"`

	// Neo4j persistence configuration (optional)
	Neo4j Neo4jConfig `mapstructure:"neo4j"`

	// Embedding configuration
	Embedding EmbeddingConfig `mapstructure:"embedding"`

	// Reasoning configuration (tunable thresholds)
	Reasoning ReasoningConfig `mapstructure:"reasoning"`

	// Telemetry configuration
	Telemetry TelemetryConfig `mapstructure:"telemetry"`

	// CircuitBreaker configuration
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// CorpusConfig locates the ETL-produced violations corpus.
type CorpusConfig struct {
	Path string `mapstructure:"path"`
}

// Neo4jConfig holds the optional graph persistence backend.
type Neo4jConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	URI      string `mapstructure:"uri"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// EmbeddingConfig holds the embedding capability configuration. Model must
// match the model/version that produced any stored corpus embeddings.
type EmbeddingConfig struct {
	Provider string `mapstructure:"provider"` // openai or compatible
	Model    string `mapstructure:"model"`
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
}

// ReasoningConfig exposes the tuned constants of the pipeline. The threshold
// values are empirical; they are configuration, not law.
type ReasoningConfig struct {
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
	HighConfidence      float64 `mapstructure:"high_confidence"`
	MediumConfidence    float64 `mapstructure:"medium_confidence"`
	TopK                int     `mapstructure:"top_k"`
	SimilarLimit        int     `mapstructure:"similar_limit"`
}

// TelemetryConfig holds the query-log sink configuration.
type TelemetryConfig struct {
	ParquetPath string `mapstructure:"parquet_path"`
}

// CircuitBreakerConfig holds configuration for the embedder circuit breaker.
type CircuitBreakerConfig struct {
	Enabled          bool    `mapstructure:"enabled"`
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"` // in seconds
	Timeout          int     `mapstructure:"timeout"`  // in seconds
	ReadyToTripRatio float64 `mapstructure:"ready_to_trip_ratio"`
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	setDefaults()

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	overrideWithEnv(config)

	return config, nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	viper.SetDefault("corpus.path", "./data/violations.json")

	viper.SetDefault("neo4j.enabled", false)
	viper.SetDefault("neo4j.uri", "bolt://localhost:7687")
	viper.SetDefault("neo4j.username", "neo4j")
	viper.SetDefault("neo4j.database", "neo4j")

	viper.SetDefault("embedding.provider", "openai")
	viper.SetDefault("embedding.model", "text-embedding-3-small")

	viper.SetDefault("reasoning.similarity_threshold", 0.6)
	viper.SetDefault("reasoning.high_confidence", 0.8)
	viper.SetDefault("reasoning.medium_confidence", 0.6)
	viper.SetDefault("reasoning.top_k", 5)
	viper.SetDefault("reasoning.similar_limit", 5)

	viper.SetDefault("circuit_breaker.enabled", true)
	viper.SetDefault("circuit_breaker.max_requests", 1)
	viper.SetDefault("circuit_breaker.interval", 60)
	viper.SetDefault("circuit_breaker.timeout", 30)
	viper.SetDefault("circuit_breaker.ready_to_trip_ratio", 0.6)

	if home, err := os.UserHomeDir(); err == nil {
		viper.SetDefault("telemetry.parquet_path", home+"/.trafficqa/telemetry")
	}
}

// overrideWithEnv overrides config with environment variables.
func overrideWithEnv(config *Config) {
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.Embedding.APIKey = apiKey
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		config.Embedding.BaseURL = baseURL
	}

	if uri := os.Getenv("NEO4J_URI"); uri != "" {
		config.Neo4j.URI = uri
		config.Neo4j.Enabled = true
	}
	if user := os.Getenv("NEO4J_USER"); user != "" {
		config.Neo4j.Username = user
	}
	if pass := os.Getenv("NEO4J_PASSWORD"); pass != "" {
		config.Neo4j.Password = pass
	}

	if path := os.Getenv("CORPUS_PATH"); path != "" {
		config.Corpus.Path = path
	}

	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if path := os.Getenv("TELEMETRY_PARQUET_PATH"); path != "" {
		config.Telemetry.ParquetPath = path
	}
}
