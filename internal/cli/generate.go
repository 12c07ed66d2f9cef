//-------------------------------------------------------------------------
//
// pgEdge E-commerce Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pgEdge/pgedge-ecomgen/internal/datagen"
	"github.com/pgEdge/pgedge-ecomgen/internal/ecommerce"
	"github.com/pgEdge/pgedge-ecomgen/internal/export"
	"github.com/pgEdge/pgedge-ecomgen/internal/logging"
	"github.com/pgEdge/pgedge-ecomgen/internal/weighting"
)

var (
	genScale           float64
	genOutputDir       string
	genSeed            uint64
	genStartDate       string
	genEndDate         string
	genBatchSize       int
	genWeighting       string
	genSeasonalProfile string
	genMetricsFile     string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the synthetic e-commerce dataset",
	Long: `Generate customers, products, orders, order items and web events
and write one CSV file per table into the output directory. Existing files
are overwritten.

The scale factor multiplies the base counts (500,000 customers, 50,000
products, 5,000,000 orders, 25,000,000 web events); order items are derived
from orders.

Example:
  pgedge-ecomgen generate --scale 0.1 --output-dir data
  pgedge-ecomgen generate --scale 1 --weighting applied --seasonal-profile retail-holiday`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Float64Var(&genScale, "scale", 0,
		"scale factor applied to the base record counts")
	generateCmd.Flags().StringVar(&genOutputDir, "output-dir", "",
		"output directory for CSV files (default: data)")
	generateCmd.Flags().Uint64Var(&genSeed, "seed", 0,
		"random seed (default: 42)")
	generateCmd.Flags().StringVar(&genStartDate, "start-date", "",
		"first date of generated activity (YYYY-MM-DD)")
	generateCmd.Flags().StringVar(&genEndDate, "end-date", "",
		"last date of generated activity (YYYY-MM-DD)")
	generateCmd.Flags().IntVar(&genBatchSize, "web-event-batch-size", 0,
		"web events generated per batch")
	generateCmd.Flags().StringVar(&genWeighting, "weighting", "",
		"purchase weighting: none (uniform) or applied")
	generateCmd.Flags().StringVar(&genSeasonalProfile, "seasonal-profile", "",
		"seasonal profile used with --weighting applied")
	generateCmd.Flags().StringVar(&genMetricsFile, "metrics-file", "",
		"write a Prometheus textfile with the generation summary")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if cmd.Flags().Changed("scale") {
		cfg.Generate.Scale = genScale
	}
	if genOutputDir != "" {
		cfg.Generate.OutputDir = genOutputDir
	}
	if cmd.Flags().Changed("seed") {
		cfg.Generate.Seed = genSeed
	}
	if genStartDate != "" {
		cfg.Generate.StartDate = genStartDate
	}
	if genEndDate != "" {
		cfg.Generate.EndDate = genEndDate
	}
	if cmd.Flags().Changed("web-event-batch-size") {
		cfg.Generate.WebEventBatchSize = genBatchSize
	}
	if genWeighting != "" {
		cfg.Generate.Weighting = genWeighting
	}
	if genSeasonalProfile != "" {
		cfg.Generate.SeasonalProfile = genSeasonalProfile
	}
	if genMetricsFile != "" {
		cfg.Generate.MetricsFile = genMetricsFile
	}

	// Validate configuration
	if err := cfg.ValidateGenerate(); err != nil {
		return err
	}

	g := cfg.Generate
	start, end, err := g.DateRange()
	if err != nil {
		return err
	}
	mode, err := weighting.ParseMode(g.Weighting)
	if err != nil {
		return err
	}
	season, err := weighting.Get(g.SeasonalProfile)
	if err != nil {
		return err
	}

	dir, err := export.NewDir(g.OutputDir)
	if err != nil {
		return err
	}

	logging.Info().
		Float64("scale", g.Scale).
		Uint64("seed", g.Seed).
		Str("output_dir", g.OutputDir).
		Msg("Generating e-commerce dataset")

	gen := ecommerce.NewGenerator(datagen.NewFakerWithSeed(g.Seed), ecommerce.Config{
		StartDate: start,
		EndDate:   end,
		Batch: datagen.BatchConfig{
			BatchSize:        g.WebEventBatchSize,
			ProgressInterval: g.ProgressInterval,
		},
		Weighting: mode,
		Season:    season,
	})

	ctx, cancel := signalContext()
	defer cancel()

	sum, err := ecommerce.NewPipeline(gen, dir).Run(ctx, ecommerce.CalculateCounts(g.Scale))
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("generation interrupted: %w", err)
		}
		return err
	}

	sum.Log()
	if g.MetricsFile != "" {
		if err := sum.WriteMetrics(g.MetricsFile); err != nil {
			return err
		}
	}

	cmd.Println()
	cmd.Printf("Files saved to %s\n\n", dir.Path())
	return sum.Print(cmd.OutOrStdout())
}

// formatCount formats n with grouped thousands.
func formatCount(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}
