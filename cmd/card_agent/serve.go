package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/profile-card/internal/pipeline"
	"github.com/jonathan/profile-card/internal/prompts"
	"github.com/jonathan/profile-card/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing POST /api/parse-pdf, POST /api/generate-card and GET /health.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	client, err := newModelClient(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() { _ = client.Close() }()

	logger.WithFields(logrus.Fields{
		"provider": cfg.LLM.Provider,
		"model":    client.Model(),
		"prompt":   prompts.ExtractionPromptVersion,
		"port":     cfg.Server.Port,
	}).Info("serve.config")

	srv, err := server.New(server.Options{
		Config:    cfg,
		Extractor: pipeline.New(client, pipeline.Options{Limits: cfg.Limits, Logger: logger}),
		Renderer:  newRenderer(cfg, logger),
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
