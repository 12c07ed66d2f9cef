//-------------------------------------------------------------------------
//
// pgEdge E-commerce Data Generator
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for pgedge-ecomgen.
package cli

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-ecomgen/internal/config"
	"github.com/pgEdge/pgedge-ecomgen/internal/ecommerce"
	"github.com/pgEdge/pgedge-ecomgen/internal/logging"
	"github.com/pgEdge/pgedge-ecomgen/internal/weighting"
	"github.com/pgEdge/pgedge-ecomgen/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	logLevel   string
	logFormat  string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "pgedge-ecomgen",
		Short: "Synthetic e-commerce dataset generator",
		Long: `pgedge-ecomgen generates a realistic synthetic e-commerce dataset
(customers, products, orders, order items and web events) as CSV files,
loads the files into a raw PostgreSQL schema and runs data quality checks
against them.

Generation is reproducible: the same seed and scale always produce
byte-identical files.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./pgedge-ecomgen.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string (load and check)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"log format (pretty, json)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(profilesCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}

	// Reinitialize logger with config
	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.Format = cfg.LogFormat
	logging.Init(logCfg)

	return nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			logging.Info().
				Str("signal", sig.String()).
				Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List generated tables",
	Long: `List the tables written by 'generate', in generation order, with
their CSV columns and base record counts at scale 1.0.`,
	Run: func(cmd *cobra.Command, args []string) {
		base := ecommerce.CalculateCounts(1.0)
		counts := map[string]string{
			ecommerce.TableCustomers:  formatCount(base.Customers),
			ecommerce.TableProducts:   formatCount(base.Products),
			ecommerce.TableOrders:     formatCount(base.Orders),
			ecommerce.TableOrderItems: "1-5 per order",
			ecommerce.TableWebEvents:  formatCount(base.WebEvents),
		}

		cmd.Println("Generated tables:")
		cmd.Println()
		for _, t := range ecommerce.Tables {
			cmd.Printf("  %-12s - %s (%s)\n", t.Name, t.Description, counts[t.Name])
			cmd.Printf("  %-12s   %s\n", "", strings.Join(t.Columns, ", "))
		}
	},
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List available seasonal profiles",
	Long: `List the seasonal profiles that shape order dates when
'generate --weighting applied' is used.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available seasonal profiles:")
		cmd.Println()
		for _, name := range weighting.List() {
			profile, err := weighting.Get(name)
			if err != nil {
				continue
			}
			cmd.Printf("  %-15s - %s\n", name, profile.Description())
		}
		cmd.Println()
		cmd.Println("Profiles only affect sampling with --weighting applied.")
	},
}
