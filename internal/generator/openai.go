package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/postforge/postforge/pkg/config"
)

const systemPrompt = "You are an expert LinkedIn ghostwriter. Write a single " +
	"LinkedIn post, plain text only, no preamble and no commentary."

// OpenAICompatible calls any provider exposing an OpenAI-compatible chat
// completion endpoint. Both Groq and Gemini do.
type OpenAICompatible struct {
	name    string
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewGroq creates the Groq provider
func NewGroq(cfg *config.ProvidersConfig) *OpenAICompatible {
	return newOpenAICompatible("groq", cfg.GroqAPIKey, cfg.GroqURL, cfg.GroqModel, cfg.Timeout)
}

// NewGemini creates the Gemini provider
func NewGemini(cfg *config.ProvidersConfig) *OpenAICompatible {
	return newOpenAICompatible("gemini", cfg.GeminiAPIKey, cfg.GeminiURL, cfg.GeminiModel, cfg.Timeout)
}

func newOpenAICompatible(name, apiKey, baseURL, model string, timeout time.Duration) *OpenAICompatible {
	clientCfg := openai.DefaultConfig(apiKey)
	clientCfg.BaseURL = baseURL
	return &OpenAICompatible{
		name:    name,
		client:  openai.NewClientWithConfig(clientCfg),
		model:   model,
		timeout: timeout,
	}
}

// Name returns the provider name
func (p *OpenAICompatible) Name() string {
	return p.name
}

// Generate requests a chat completion for the prompt built from params
func (p *OpenAICompatible) Generate(ctx context.Context, params Params) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(params)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s completion failed: %w", p.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", p.name)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%s returned empty content", p.name)
	}
	return content, nil
}

// buildPrompt renders the user prompt from the request parameters
func buildPrompt(params Params) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a %s LinkedIn post about %q in a %s tone.",
		lengthWord(params.Length), params.Topic, params.Tone)
	if params.Audience != "" {
		fmt.Fprintf(&b, " The audience is %s.", params.Audience)
	}
	if params.CallToAction != "" {
		fmt.Fprintf(&b, " End with this call to action: %q.", params.CallToAction)
	}
	b.WriteString(" Use short paragraphs and include a question to the reader.")
	return b.String()
}

func lengthWord(length string) string {
	switch strings.ToLower(strings.TrimSpace(length)) {
	case "short":
		return "short (under 100 words)"
	case "long":
		return "long (400-600 words)"
	default:
		return "medium (150-300 words)"
	}
}
