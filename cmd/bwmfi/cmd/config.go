package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/bwmfi/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate parameter files",
	Long: `Manage parameter files.

Subcommands:
  init     - Write the built-in EURUSD table to a file
  validate - Validate an existing parameter file

Examples:
  bwmfi config init -o eurusd.yaml
  bwmfi config validate -f eurusd.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default parameter file",
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a parameter file",
	RunE:  runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "bwmfi.yaml", "output file path")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to parameter file (required)")
	configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Created default parameter file: %s\n", configInitOutput)
	fmt.Fprintf(out, "  bwmfi show --config %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	reg, err := cfg.Registry()
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Parameter file valid: %s\n", configValidatePath)
	fmt.Fprintf(out, "  Symbol: %s\n", cfg.Symbol)
	fmt.Fprintf(out, "  Timeframes: %v\n", reg.Timeframes(cfg.Symbol))
	return nil
}
