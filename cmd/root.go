// =============================================================================
// Back Order Report Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (backorder-report)
//   ├── generateCmd (backorder-report generate)
//   ├── validateCmd (backorder-report validate)
//   └── versionCmd (backorder-report version)
//
// The root command owns the global flags (--config, --verbose) and the
// configuration loading shared by the subcommands.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/backorder-report-generator/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "backorder-report",
	Short: "Back Order Report Generator - Turn raw order exports into Excel reports",
	Long: `Back Order Report Generator is a CLI tool that turns raw back-order
exports (CSV, TXT or XLSX) into formatted, multi-sheet Excel reports.

It recognizes common column naming variations automatically, validates and
cleans the data, and produces summary, grouping and aging analyses with
optional charts.

Example Usage:
  backorder-report generate -i orders.csv              # Standard report
  backorder-report generate -i orders.csv -t detailed  # Detailed report
  backorder-report validate -i orders.csv              # Check data quality only`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the persistent flags shared by all subcommands.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// loadConfig loads the configuration file and applies the global flags.
// A missing file at the default path falls back to built-in defaults.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if verbose {
		cfg.Logging.Level = "debug"
	}

	return cfg, nil
}
