package llm

import (
	"context"
	"encoding/base64"
	"strconv"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/pkg/errors"
)

// AnthropicClient implements Extractor over the Anthropic Messages API. The
// PDF travels as a base64 document block next to the fixed user text.
type AnthropicClient struct {
	client anthropic.Client
	config *Config
}

// NewAnthropicClient creates a new Anthropic client. SDK retries are disabled
// so that one Extract is one request.
func NewAnthropicClient(config *Config, apiKey string, opts ...option.RequestOption) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if config.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(config.BaseURL))
	}
	reqOpts = append(reqOpts, opts...)

	return &AnthropicClient{
		client: anthropic.NewClient(reqOpts...),
		config: config,
	}, nil
}

// Extract sends pdf with the system prompt and returns the first text block.
func (c *AnthropicClient) Extract(ctx context.Context, pdf []byte) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		System:    []anthropic.TextBlockParam{{Text: c.config.SystemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{
					Data: base64.StdEncoding.EncodeToString(pdf),
				}),
				anthropic.NewTextBlock(c.config.UserText),
			),
		},
	})
	if err != nil {
		return "", anthropicError(err)
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}

	return "", &EmptyResponseError{
		Provider: ProviderAnthropic,
		Reason:   "no text block among " + strconv.Itoa(len(msg.Content)) + " content blocks",
	}
}

// Model returns the configured model name.
func (c *AnthropicClient) Model() string {
	return c.config.Model
}

// Close is a no-op; the SDK client holds no resources.
func (c *AnthropicClient) Close() error {
	return nil
}

func anthropicError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &APICallError{
			Provider:   ProviderAnthropic,
			StatusCode: apiErr.StatusCode,
			Message:    "messages request failed",
			Cause:      err,
		}
	}
	return &APICallError{
		Provider: ProviderAnthropic,
		Message:  "messages request failed",
		Cause:    err,
	}
}
