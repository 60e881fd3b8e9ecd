package mergenx

import (
	"time"

	"go.uber.org/zap"
)

// EmbeddingConfig configures the OpenAI-compatible embedding provider.
type EmbeddingConfig struct {
	APIKey              string
	BaseURL             string
	Model               string
	Dimensions          int
	QueryInstruction    string
	DocumentInstruction string
}

// GenerationConfig configures the OpenAI-compatible summary provider.
type GenerationConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

type clientConfig struct {
	addrs           []string
	username        string
	password        string
	keyPrefix       string
	hnswM           int
	hnswEFConstruct int
	maxBatchSize    int
	embedding       *EmbeddingConfig
	generation      *GenerationConfig
	logger          *zap.Logger
}

// Option configures the Client.
type Option func(*clientConfig)

// WithRedis sets the Redis address and password.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithRedisAuth sets ACL credentials for the Redis connection.
func WithRedisAuth(username, password string) Option {
	return func(c *clientConfig) {
		c.username = username
		c.password = password
	}
}

// WithKeyPrefix overrides the key namespace (default "mergenx:").
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.keyPrefix = prefix
	}
}

// WithHNSW overrides the vector index construction parameters.
func WithHNSW(m, efConstruct int) Option {
	return func(c *clientConfig) {
		c.hnswM = m
		c.hnswEFConstruct = efConstruct
	}
}

// WithMaxBatchSize overrides the ingestion batch limit.
func WithMaxBatchSize(n int) Option {
	return func(c *clientConfig) {
		c.maxBatchSize = n
	}
}

// WithEmbedding configures the embedding provider. Without it, search and
// ingestion return an error.
func WithEmbedding(cfg EmbeddingConfig) Option {
	return func(c *clientConfig) {
		c.embedding = &cfg
	}
}

// WithGeneration configures the summary provider. Without it, searches
// requesting a summary still succeed, just without one.
func WithGeneration(cfg GenerationConfig) Option {
	return func(c *clientConfig) {
		c.generation = &cfg
	}
}

// WithLogger sets the zap logger (default: no-op).
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
