package inventa

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/inventa-app/inventa/internal/classify"
	openaiGen "github.com/inventa-app/inventa/internal/transport/openai"
)

// Generator is a user-supplied classification tier. It receives the
// built prompt and returns the model's raw text response.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

type clientConfig struct {
	addrs            []string
	password         string
	keyPrefix        string
	readinessTimeout time.Duration
	generators       []classify.Generator
	logger           *zap.Logger
}

// Option configures the Client.
type Option func(*clientConfig)

// WithRedis sets the Redis connection address and password.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithKeyPrefix sets the key prefix for all stored data.
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.keyPrefix = prefix
	}
}

// WithReadinessTimeout sets how long New waits for the database.
func WithReadinessTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		if d > 0 {
			c.readinessTimeout = d
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithGenerator appends a custom classification tier. Tiers are tried
// in the order they are added.
func WithGenerator(g Generator) Option {
	return func(c *clientConfig) {
		c.generators = append(c.generators, &generatorAdapter{inner: g})
	}
}

// WithChatTier appends a classification tier backed by an
// OpenAI-compatible chat API. For a local server pass an empty apiKey;
// for a hosted API an empty baseURL uses the OpenAI default.
func WithChatTier(name, baseURL, apiKey, model string) Option {
	return func(c *clientConfig) {
		c.generators = append(c.generators, openaiGen.NewGenerator(&openaiGen.Config{
			APIKey:  apiKey,
			BaseURL: baseURL,
			Model:   model,
			Name:    name,
			Logger:  c.logger,
		}))
	}
}
