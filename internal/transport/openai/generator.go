// Package openai adapts OpenAI-compatible chat APIs to the classification
// pipeline. Both the on-device tier (a local llama.cpp style server) and
// the remote tier are reached through the same client, differing only in
// base URL and credentials.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/inventa-app/inventa/internal/domain"
)

const defaultTimeout = 30 * time.Second

// Generator is a classification tier backed by an OpenAI-compatible chat API.
type Generator struct {
	client      *openai.Client
	model       string
	name        string
	timeout     time.Duration
	unavailable error
	logger      *zap.Logger
}

// Config holds the settings for one classification tier.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Name       string
	TimeoutSec int
	Logger     *zap.Logger
}

// NewGenerator creates a chat-backed generator. A tier with neither a base
// URL nor credentials is kept but reports itself unavailable, so the
// pipeline falls through to the next tier instead of the process failing
// to start.
func NewGenerator(cfg *Config) *Generator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	timeout := defaultTimeout
	if cfg.TimeoutSec > 0 {
		timeout = time.Duration(cfg.TimeoutSec) * time.Second
	}

	g := &Generator{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		name:    cfg.Name,
		timeout: timeout,
		logger:  cfg.Logger,
	}
	if cfg.BaseURL == "" && cfg.APIKey == "" {
		g.unavailable = fmt.Errorf("tier %s has no endpoint or credentials: %w",
			cfg.Name, domain.ErrCapabilityUnavailable)
	}
	return g
}

// Name identifies the tier in logs, metrics and health checks.
func (g *Generator) Name() string { return g.name }

// Generate implements classify.Generator.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.unavailable != nil {
		return "", g.unavailable
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", parseAPIError(g.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("tier %s returned no choices: %w", g.name, domain.ErrGenerationFailed)
	}

	g.logger.Debug("chat completion",
		zap.String("tier", g.name),
		zap.String("model", g.model),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
		zap.Duration("duration", time.Since(start)),
	)

	return resp.Choices[0].Message.Content, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (g *Generator) HealthCheck(ctx context.Context) error {
	if g.unavailable != nil {
		return g.unavailable
	}
	if _, err := g.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrGenerationFailed so the pipeline
// treats them as a tier failure and falls through.
func parseAPIError(tier string, err error) error {
	wrap := domain.ErrGenerationFailed

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail == "" {
			detail = string(reqErr.Body)
		}
		return fmt.Errorf("tier %s API error %d: %s: %w",
			tier, reqErr.HTTPStatusCode, detail, wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("tier %s API error %d: %s: %w",
			tier, apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("tier %s request failed: %v: %w", tier, err, wrap)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
