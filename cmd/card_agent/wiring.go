package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/profile-card/internal/config"
	"github.com/jonathan/profile-card/internal/llm"
	"github.com/jonathan/profile-card/internal/logging"
	"github.com/jonathan/profile-card/internal/prompts"
	"github.com/jonathan/profile-card/internal/rendering"
)

// Constructors for the external services. Tests replace them with fakes.
var (
	newModelClient = func(ctx context.Context, cfg *config.Config) (llm.Extractor, error) {
		if err := cfg.RequireAPIKey(); err != nil {
			return nil, err
		}
		return llm.NewExtractor(ctx, llmConfig(cfg), cfg.LLM.APIKey())
	}
	newRenderer = func(cfg *config.Config, logger *logrus.Logger) rendering.Renderer {
		return rendering.NewChromedpRenderer(cfg.Rendering, logger)
	}
)

// loadConfig reads and validates the config named by --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger from cfg.
func newLogger(cfg *config.Config) (*logrus.Logger, error) {
	return logging.New(cfg.Log.Level, cfg.Log.Format)
}

// llmConfig assembles the extraction call settings, including the prompt
// rendered for the configured limits.
func llmConfig(cfg *config.Config) *llm.Config {
	base := &llm.Config{
		Provider:  llm.Provider(cfg.LLM.Provider),
		Model:     cfg.LLM.Model,
		MaxTokens: cfg.LLM.MaxTokens,
		BaseURL:   cfg.LLM.BaseURL,
	}
	return base.WithPrompts(prompts.ExtractionPrompt(cfg.Limits), prompts.ExtractionUserText())
}
