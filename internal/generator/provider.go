// Package generator produces post content through an ordered chain of
// upstream providers. Each provider sits behind the same interface; the
// chain tries them in order and falls through on failure, so a degraded
// upstream never takes generation down entirely.
package generator

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/postforge/postforge/pkg/config"
	"github.com/postforge/postforge/pkg/logging"
	"github.com/postforge/postforge/pkg/telemetry"
)

// ErrAllProvidersFailed is returned when every provider in the chain
// failed to produce content
var ErrAllProvidersFailed = errors.New("all providers failed")

// Params describes a generation request
type Params struct {
	Topic        string
	Tone         string
	Audience     string
	Length       string
	CallToAction string
}

// Provider generates post content from request parameters
type Provider interface {
	Name() string
	Generate(ctx context.Context, params Params) (string, error)
}

// Chain tries providers in order, logging and skipping per-provider
// failures
type Chain struct {
	providers []Provider
	logger    *zap.Logger
}

// NewChain creates a provider chain in fallback order
func NewChain(providers ...Provider) *Chain {
	return &Chain{
		providers: providers,
		logger:    logging.WithComponent("generator"),
	}
}

// ChainFromConfig builds the standard chain: Groq, then Gemini, then the
// deterministic mock as terminal fallback. Providers without credentials
// are left out.
func ChainFromConfig(cfg *config.ProvidersConfig) *Chain {
	var providers []Provider
	if cfg.GroqAPIKey != "" {
		providers = append(providers, NewGroq(cfg))
	}
	if cfg.GeminiAPIKey != "" {
		providers = append(providers, NewGemini(cfg))
	}
	providers = append(providers, NewMock())
	return NewChain(providers...)
}

// Generate runs the chain and returns the content and the name of the
// provider that produced it
func (c *Chain) Generate(ctx context.Context, params Params) (string, string, error) {
	ctx, span := telemetry.StartSpan(ctx, "generator.generate")
	defer span.End()

	for _, p := range c.providers {
		content, err := p.Generate(ctx, params)
		if err != nil {
			c.logger.Warn("Provider failed, falling through",
				zap.String("provider", p.Name()),
				zap.Error(err))
			continue
		}
		return content, p.Name(), nil
	}
	return "", "", ErrAllProvidersFailed
}
