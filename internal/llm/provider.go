package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when a provider answers without any text
var ErrEmptyResponse = errors.New("empty completion")

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends one prompt and returns the model's text
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Format selects the shape of the completion text
type Format string

const (
	FormatPlain Format = "plain"
	FormatJSON  Format = "json" // Provider must return a single JSON object
)

// CompletionRequest contains the input for one completion
type CompletionRequest struct {
	// Model overrides the provider's configured model
	Model string

	// Prompt is the user message
	Prompt string

	// System is an optional system instruction
	System string

	Format Format

	// Temperature is passed through as-is, 0 included
	Temperature float64

	// MaxTokens limits the response length (0 uses the provider default)
	MaxTokens int
}

// CompletionResponse contains the model output
type CompletionResponse struct {
	Text       string
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "ollama",
		Model:     "gemma3n:e4b",
		Timeout:   120,
		MaxTokens: 2048,
	}
}

func (c Config) model(override string) string {
	if override != "" {
		return override
	}
	return c.Model
}

func (c Config) maxTokens(override int) int {
	if override > 0 {
		return override
	}
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return 1000
}
