// Package llm is the boundary to the ranking/writing model. Providers expose
// one plain completion call; the Editor turns aggregated items into a
// shortlist and then into a written newsletter.
package llm

import (
	"context"

	"github.com/ppiankov/pressbrief/internal/model"
)

// Provider defines the interface for LLM providers.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Complete sends one prompt and returns the model's text response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible.
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest is one prompt for the provider.
type CompletionRequest struct {
	// System is the system instruction (provider-specific delivery).
	System string

	// Prompt is the user prompt.
	Prompt string

	// Model overrides the configured model when non-empty.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int

	// Temperature controls sampling; both stages here want it low.
	Temperature float64
}

// CompletionResponse is the provider's reply.
type CompletionResponse struct {
	Text       string
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration.
type Config struct {
	// Provider name: "openai", "anthropic", "ollama".
	Provider string

	// Model name (provider-specific).
	Model string

	// APIKey for OpenAI/Anthropic.
	APIKey string

	// BaseURL for custom endpoints (e.g. Ollama).
	BaseURL string

	// Timeout for API requests, in seconds.
	Timeout int

	// MaxTokens for response generation.
	MaxTokens int

	// Instructions are optional extra editorial instructions appended to
	// both stage prompts.
	Instructions string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:   120,
		MaxTokens: 6000,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config.
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:     mc.Provider,
		Model:        mc.Model,
		APIKey:       mc.APIKey,
		BaseURL:      mc.BaseURL,
		Timeout:      mc.Timeout,
		MaxTokens:    mc.MaxTokens,
		Instructions: mc.Instructions,
	}
}
