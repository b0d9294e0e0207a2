package llm

import (
	"context"

	"github.com/pkg/errors"
)

// Extractor sends one document to the model and returns the raw reply text.
// Each call issues exactly one upstream request; there is no internal retry.
type Extractor interface {
	// Extract fails with *APICallError or *EmptyResponseError.
	Extract(ctx context.Context, pdf []byte) (string, error)
	// Model returns the model name requests are sent to.
	Model() string
	// Close releases any resources held by the client.
	Close() error
}

// NewExtractor creates an Extractor for the configured provider.
func NewExtractor(ctx context.Context, config *Config, apiKey string) (Extractor, error) {
	if config == nil {
		return nil, errors.New("llm config is required")
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid llm config")
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return NewAnthropicClient(config, apiKey)
	}
}
