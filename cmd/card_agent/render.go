package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/jonathan/profile-card/internal/observability"
	"github.com/jonathan/profile-card/internal/rendering"
	"github.com/jonathan/profile-card/internal/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a card PNG from card data JSON",
	Long: "Render a card PNG from a CardData JSON file. The rating and skill scores are clamped " +
		"exactly as the generate-card endpoint does. An extracted profile JSON is accepted too.",
	RunE: runRender,
}

var (
	renderInputFile  string
	renderOutputFile string
	renderVerbose    bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderInputFile, "in", "i", "", "Path to card data JSON (required)")
	renderCmd.Flags().StringVarP(&renderOutputFile, "out", "o", "", "Path to output PNG (default <name>_linkedin_fc.png)")
	renderCmd.Flags().BoolVarP(&renderVerbose, "verbose", "v", false, "Print the rendered values to stderr")

	_ = renderCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	logger.SetOutput(cmd.ErrOrStderr())

	card, err := readCardData(renderInputFile)
	if err != nil {
		return err
	}
	card = rendering.ClampCard(card, cfg.Limits)

	png, err := newRenderer(cfg, logger).Render(context.Background(), card)
	if err != nil {
		return fmt.Errorf("failed to render card: %w", err)
	}

	out := renderOutputFile
	if out == "" {
		out = rendering.SafeFilename(card.Name)
	}
	if err := os.WriteFile(out, png, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if renderVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintCard(card, out, len(png))
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote card to %s\n", out) //nolint:errcheck // status output
	return nil
}

// readCardData loads card data from path. Both a bare CardData object and a
// full extracted profile are accepted.
func readCardData(path string) (types.CardData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.CardData{}, fmt.Errorf("failed to read input file: %w", err)
	}

	var card types.CardData
	if err := json.Unmarshal(data, &card); err != nil {
		return types.CardData{}, fmt.Errorf("invalid card data in %s: %w", path, err)
	}
	if err := validator.New().Struct(card); err != nil {
		return types.CardData{}, fmt.Errorf("invalid card data in %s: %w", path, err)
	}
	return card, nil
}
