package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/profile-card/internal/document"
	"github.com/jonathan/profile-card/internal/observability"
	"github.com/jonathan/profile-card/internal/pipeline"
	"github.com/jonathan/profile-card/internal/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a structured profile from a LinkedIn PDF export",
	Long:  "Send a LinkedIn PDF export to the configured model and write the validated profile as JSON.",
	RunE:  runExtract,
}

var (
	extractInputFile  string
	extractOutputFile string
	extractCardFile   string
	extractVerbose    bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractInputFile, "in", "i", "", "Path to the LinkedIn PDF export (required)")
	extractCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	extractCmd.Flags().StringVar(&extractCardFile, "card", "", "Also write the card data to this path, ready for render")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print a readable summary to stderr")

	_ = extractCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	logger.SetOutput(cmd.ErrOrStderr())

	upload, file, err := document.OpenFile(extractInputFile)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	ctx := context.Background()
	client, err := newModelClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() { _ = client.Close() }()

	stderr := cmd.ErrOrStderr()
	opts := pipeline.Options{Limits: cfg.Limits, Logger: logger}
	if extractVerbose {
		opts.OnProgress = func(e pipeline.ProgressEvent) {
			fmt.Fprintf(stderr, "[%s] %s\n", e.Step, e.Message) //nolint:errcheck // progress output
		}
	}

	result, err := pipeline.New(client, opts).Run(ctx, upload)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if extractVerbose {
		printer := observability.NewPrinter(stderr)
		printer.PrintProfile(result.Profile)
		printer.PrintWarnings(result.Warnings)
	} else {
		for _, w := range result.Warnings {
			fmt.Fprintf(stderr, "warning: %s: %s\n", w.Code, w.Message) //nolint:errcheck // best-effort notice
		}
	}

	if extractCardFile != "" {
		if err := writeJSON(extractCardFile, types.CardFromProfile(result.Profile)); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "Wrote card data to %s\n", extractCardFile) //nolint:errcheck // status output
	}

	jsonBytes, err := json.MarshalIndent(result.Profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonBytes = append(jsonBytes, '\n')

	if extractOutputFile == "" {
		_, err = cmd.OutOrStdout().Write(jsonBytes)
		return err
	}
	if err := os.WriteFile(extractOutputFile, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(stderr, "Wrote profile to %s\n", extractOutputFile) //nolint:errcheck // status output
	return nil
}

// writeJSON writes v to path as indented JSON.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
