// Package llm sends a PDF to an extraction model and returns the raw text of
// its reply. Two providers are supported: Anthropic (default) and Gemini.
package llm

import "github.com/pkg/errors"

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderAnthropic is the Anthropic Messages API
	ProviderAnthropic Provider = "anthropic"
	// ProviderGemini is the Google Gemini API
	ProviderGemini Provider = "gemini"
)

// Config holds everything needed to issue one extraction call.
type Config struct {
	Provider  Provider
	Model     string
	MaxTokens int
	// BaseURL overrides the provider endpoint. Anthropic only.
	BaseURL string
	// SystemPrompt is the fixed extraction instruction.
	SystemPrompt string
	// UserText accompanies the document in the user turn.
	UserText string
}

// DefaultConfig returns the default configuration (Anthropic).
func DefaultConfig() *Config {
	return DefaultAnthropicConfig()
}

// DefaultAnthropicConfig returns the default Anthropic configuration.
func DefaultAnthropicConfig() *Config {
	return &Config{
		Provider:  ProviderAnthropic,
		Model:     "claude-sonnet-4-5-20250929",
		MaxTokens: 4096,
	}
}

// DefaultGeminiConfig returns the default Gemini configuration.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider:  ProviderGemini,
		Model:     "gemini-2.5-flash",
		MaxTokens: 4096,
	}
}

// WithPrompts returns a copy of c carrying the given instruction texts.
func (c *Config) WithPrompts(system, user string) *Config {
	next := *c
	next.SystemPrompt = system
	next.UserText = user
	return &next
}

// WithModel returns a copy of c using model.
func (c *Config) WithModel(model string) *Config {
	next := *c
	next.Model = model
	return &next
}

// Validate reports missing required settings.
func (c *Config) Validate() error {
	switch {
	case c.Provider != ProviderAnthropic && c.Provider != ProviderGemini:
		return errors.Errorf("unsupported provider %q", c.Provider)
	case c.Model == "":
		return errors.New("model is required")
	case c.MaxTokens <= 0:
		return errors.New("max tokens must be positive")
	case c.SystemPrompt == "":
		return errors.New("system prompt is required")
	case c.UserText == "":
		return errors.New("user text is required")
	}
	return nil
}
