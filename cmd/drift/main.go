// Package main is the entry point for the drift binary.
// It runs the decimal drift scenarios and prints what every precision did
// to them.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/decimal-drift/decimal"
	"github.com/decimal-drift/decimal/internal/logging"
	"github.com/decimal-drift/decimal/internal/scenario"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd creates the root command for drift.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "drift",
		Short: "Measure rounding drift of step-by-step decimal arithmetic",
		Long: `drift evaluates chains of decimal operations one rounded step at a time
and reports how far the result drifts from the value it should have.

Example:
  drift run thirds batched --precision 20 --precision 64`,
		SilenceUsage: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.AddCommand(newRunCmd(stdout, stderr), newListCmd(stdout))
	return rootCmd
}

func newRunCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [scenario...]",
		Short: "Run scenarios (all of them by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, args)
			if err != nil {
				return err
			}
			return run(cfg, stdout, stderr)
		},
	}

	cmd.Flags().StringP("config", "c", "", "Path to configuration file (YAML)")
	cmd.Flags().IntSliceP("precision", "p", nil, "Significant digits to run with, repeatable (default 5,10,20,64)")
	cmd.Flags().String("threshold", "", "Error threshold as a decimal literal (default 1e-10)")
	cmd.Flags().String("rounding", "", "Rounding mode: half-up, half-even or down (default half-up)")
	cmd.Flags().StringP("format", "f", "", "Output format: text or yaml (default text)")
	cmd.Flags().StringP("log-level", "l", "", "Log level (debug, info, warn, error)")
	cmd.Flags().Bool("pretty", true, "Human readable logs")

	return cmd
}

func newListCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range scenario.All() {
				if _, err := fmt.Fprintf(stdout, "%-12s %s\n", s.Name, s.Label); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// buildConfig loads the configuration file, if any, and applies the flags on top.
func buildConfig(cmd *cobra.Command, args []string) (scenario.Config, error) {
	flags := cmd.Flags()

	cfg := scenario.DefaultConfig()
	path, err := flags.GetString("config")
	if err != nil {
		return cfg, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		cfg, err = scenario.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
	}

	if flags.Changed("precision") {
		cfg.Precisions, err = flags.GetIntSlice("precision")
		if err != nil {
			return cfg, fmt.Errorf("failed to get precision flag: %w", err)
		}
	}
	if v, _ := flags.GetString("threshold"); v != "" {
		cfg.Threshold = v
	}
	if v, _ := flags.GetString("rounding"); v != "" {
		cfg.Rounding, err = decimal.ParseRoundingMode(v)
		if err != nil {
			return cfg, err
		}
	}
	if v, _ := flags.GetString("format"); v != "" {
		cfg.Format = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if flags.Changed("pretty") {
		cfg.Log.Pretty, _ = flags.GetBool("pretty")
	}
	if len(args) > 0 {
		cfg.Scenarios = args
	}

	return cfg, cfg.Validate()
}

// run executes the configured scenarios. Scenario failures are part of the
// report and do not make the command fail.
func run(cfg scenario.Config, stdout, stderr io.Writer) error {
	logger := logging.Setup(cfg.Log, stderr)

	threshold, err := cfg.ThresholdValue()
	if err != nil {
		return err
	}

	runner := scenario.NewRunner(threshold, cfg.Rounding, logger)
	reports, err := runner.RunNamed(cfg.Scenarios, cfg.Precisions)
	if err != nil {
		return err
	}

	failed := 0
	for _, rep := range reports {
		for _, res := range rep.Results {
			if res.Failed() {
				failed++
			}
		}
	}
	logger.Info().Int("scenarios", len(reports)).Int("failed", failed).Msg("run complete")

	switch cfg.Format {
	case scenario.FormatYAML:
		return scenario.WriteYAML(stdout, reports)
	default:
		return scenario.WriteText(stdout, reports)
	}
}
