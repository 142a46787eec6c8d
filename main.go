// =============================================================================
// Back Order Report Generator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Back Order Report Generator CLI.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   backorder-report generate -i orders.csv   - Generate a report
//   backorder-report validate -i orders.csv   - Check data quality only
//   backorder-report version                  - Display the application version
//
// ARCHITECTURE:
//   cmd/        : CLI command definitions (Cobra)
//   internal/   : Core business logic (not for external import)
//   pkg/        : Shared utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/backorder-report-generator/cmd"
)

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
